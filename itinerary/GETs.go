package itinerary

import (
	"context"
	"net/http"
	"time"

	"wayfare/db"
	"wayfare/models"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GET /api/itineraries
func GetItineraries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID, "deleted": bson.M{"$ne": true}}
	cursor, err := db.ItineraryCollection.Find(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching itineraries")
		return
	}
	defer cursor.Close(ctx)

	var itineraries []models.Itinerary
	for cursor.Next(ctx) {
		var it models.Itinerary
		if err := cursor.Decode(&it); err == nil {
			Normalize(&it)
			itineraries = append(itineraries, it)
		}
	}

	if itineraries == nil {
		itineraries = []models.Itinerary{}
	}

	utils.RespondWithJSON(w, http.StatusOK, itineraries)
}

// GET /api/itineraries/:id
func GetItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	it, code, msg := LoadOwned(ctx, ps.ByName("id"), userID)
	if it == nil {
		utils.RespondWithError(w, code, msg)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, it)
}

// GET /api/itineraries/:id/days
func GetDays(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	it, code, msg := LoadOwned(ctx, ps.ByName("id"), userID)
	if it == nil {
		utils.RespondWithError(w, code, msg)
		return
	}

	days := DayRange(it.StartDate, it.EndDate)
	if days == nil {
		days = []string{}
	}
	utils.RespondWithJSON(w, http.StatusOK, bson.M{
		"days":        days,
		"active_date": it.ActiveDate,
	})
}

// GET /api/itineraries/:id/effective?date=
func GetEffective(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	it, code, msg := LoadOwned(ctx, ps.ByName("id"), userID)
	if it == nil {
		utils.RespondWithError(w, code, msg)
		return
	}

	day := r.URL.Query().Get("date")
	if day == "" {
		day = it.ActiveDate
	}
	utils.RespondWithJSON(w, http.StatusOK, bson.M{
		"date":  day,
		"stops": EffectiveStops(it, day),
	})
}
