// itinerary.go
package itinerary

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"wayfare/db"
	"wayfare/models"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// LoadOwned fetches an itinerary and checks the requesting user owns it.
func LoadOwned(ctx context.Context, itineraryID, userID string) (*models.Itinerary, int, string) {
	var it models.Itinerary
	err := db.ItineraryCollection.FindOne(ctx, bson.M{
		"itineraryid": itineraryID,
		"deleted":     bson.M{"$ne": true},
	}).Decode(&it)
	if err != nil {
		return nil, http.StatusNotFound, "Itinerary not found"
	}
	if it.UserID != userID {
		return nil, http.StatusForbidden, "Forbidden"
	}
	Normalize(&it)
	return &it, 0, ""
}

// save persists every user-mutable field of the itinerary.
func save(ctx context.Context, it *models.Itinerary) error {
	update := bson.M{"$set": bson.M{
		"name":        it.Name,
		"start_date":  it.StartDate,
		"end_date":    it.EndDate,
		"active_date": it.ActiveDate,
		"plan":        it.Plan,
		"mode":        it.Mode,
		"hotel":       it.Hotel,
		"hotel_start": it.HotelStart,
		"hotel_end":   it.HotelEnd,
		"cover_image": it.CoverImage,
	}}
	_, err := db.ItineraryCollection.UpdateOne(ctx, bson.M{"itineraryid": it.ItineraryID}, update)
	return err
}

// mutate wraps the shared load-apply-save cycle of the stop/hotel/mode
// handlers. fn returns false when the operation does not apply (bad index,
// boundary move, invalid value).
func mutate(w http.ResponseWriter, r *http.Request, ps httprouter.Params, badReqMsg string, fn func(it *models.Itinerary) bool) {
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

	if !fn(it) {
		utils.RespondWithError(w, http.StatusBadRequest, badReqMsg)
		return
	}

	if err := save(ctx, it); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating itinerary")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, it)
}

// POST /api/itineraries
func CreateItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Name      string `json:"name"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	// body is optional; defaults cover everything
	_ = json.NewDecoder(r.Body).Decode(&body)

	it := NewItinerary(userID)
	if body.Name != "" {
		it.Name = body.Name
	}
	if body.StartDate != "" && body.EndDate != "" {
		if !SetWindow(&it, body.StartDate, body.EndDate) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid trip dates")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.ItineraryCollection.InsertOne(ctx, it); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error inserting itinerary")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, it)
}

// PUT /api/itineraries/:id
func UpdateItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	mutate(w, r, ps, "Invalid request body", func(it *models.Itinerary) bool {
		it.Name = body.Name
		return true
	})
}

// DELETE /api/itineraries/:id
func DeleteItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	update := bson.M{"$set": bson.M{"deleted": true}}
	if _, err := db.ItineraryCollection.UpdateOne(ctx, bson.M{"itineraryid": it.ItineraryID}, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting itinerary")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Itinerary deleted successfully"})
}

// POST /api/itineraries/:id/days/:date/stops
func AddStopHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var place models.Place
	if err := json.NewDecoder(r.Body).Decode(&place); err != nil || place.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid place payload")
		return
	}
	day := ps.ByName("date")
	if utils.ParseDate(day) == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid day key")
		return
	}
	mutate(w, r, ps, "Invalid place payload", func(it *models.Itinerary) bool {
		AddStop(it, day, place)
		return true
	})
}

// DELETE /api/itineraries/:id/days/:date/stops/:index
func RemoveStopHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	index, err := strconv.Atoi(ps.ByName("index"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid stop index")
		return
	}
	day := ps.ByName("date")
	mutate(w, r, ps, "Stop index out of range", func(it *models.Itinerary) bool {
		return RemoveStop(it, day, index)
	})
}

// PATCH /api/itineraries/:id/days/:date/stops/:index
func UpdateStopHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	index, err := strconv.Atoi(ps.ByName("index"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid stop index")
		return
	}
	var patch StopPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	day := ps.ByName("date")
	mutate(w, r, ps, "Stop index out of range", func(it *models.Itinerary) bool {
		return UpdateStop(it, day, index, patch)
	})
}

// POST /api/itineraries/:id/days/:date/stops/:index/move
func MoveStopHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	index, err := strconv.Atoi(ps.ByName("index"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid stop index")
		return
	}
	var body struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	day := ps.ByName("date")
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

	// Boundary moves are a no-op, not an error.
	moved := MoveStop(it, day, index, body.Direction)
	if moved {
		if err := save(ctx, it); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error updating itinerary")
			return
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, bson.M{"moved": moved, "itinerary": it})
}

// PUT /api/itineraries/:id/hotel
func SetHotelHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var hotel models.Place
	if err := json.NewDecoder(r.Body).Decode(&hotel); err != nil || hotel.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid place payload")
		return
	}
	mutate(w, r, ps, "Invalid place payload", func(it *models.Itinerary) bool {
		it.Hotel = &hotel
		return true
	})
}

// DELETE /api/itineraries/:id/hotel
func ClearHotelHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	mutate(w, r, ps, "", func(it *models.Itinerary) bool {
		it.Hotel = nil
		return true
	})
}

// PUT /api/itineraries/:id/anchors
func SetAnchorsHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Start bool `json:"start"`
		End   bool `json:"end"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	mutate(w, r, ps, "", func(it *models.Itinerary) bool {
		it.HotelStart = body.Start
		it.HotelEnd = body.End
		return true
	})
}

// PUT /api/itineraries/:id/mode
func SetModeHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Mode models.TravelMode `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	mutate(w, r, ps, "Unknown travel mode", func(it *models.Itinerary) bool {
		if !body.Mode.Valid() {
			return false
		}
		it.Mode = body.Mode
		return true
	})
}

// PUT /api/itineraries/:id/window
func SetWindowHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	mutate(w, r, ps, "Invalid trip dates", func(it *models.Itinerary) bool {
		return SetWindow(it, body.StartDate, body.EndDate)
	})
}

// PUT /api/itineraries/:id/active-date
func SetActiveDateHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	mutate(w, r, ps, "Date outside trip window", func(it *models.Itinerary) bool {
		return SetActiveDate(it, body.Date)
	})
}
