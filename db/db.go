package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection      *mongo.Collection
	ItineraryCollection *mongo.Collection
	Client              *mongo.Client
)

// The itinerary collection name carries the schema revision. A future shape
// change bumps the suffix so old and new documents never share a collection.
const itineraryCollectionName = "itineraries_v2"

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	ClientOptions := options.Client().ApplyURI(uri)
	Client, err = mongo.Connect(context.TODO(), ClientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	UserCollection = Client.Database("wayfaredb").Collection("users")
	ItineraryCollection = Client.Database("wayfaredb").Collection(itineraryCollectionName)
}
