package export

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"wayfare/db"
	"wayfare/itinerary"
	"wayfare/models"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

func loadForRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) *models.Itinerary {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	it, code, msg := itinerary.LoadOwned(ctx, ps.ByName("id"), userID)
	if it == nil {
		utils.RespondWithError(w, code, msg)
		return nil
	}
	return it
}

// GET /api/itineraries/:id/export/ics
func ICSHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it := loadForRequest(w, r, ps)
	if it == nil {
		return
	}
	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", "attachment; filename="+utils.ExportFilename(it.Name, "ics"))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ICS(it)))
}

// GET /api/itineraries/:id/export/json
func JSONHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it := loadForRequest(w, r, ps)
	if it == nil {
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename="+utils.ExportFilename(it.Name, "json"))
	utils.RespondWithJSON(w, http.StatusOK, it)
}

// GET /api/itineraries/:id/export/pdf
func PDFHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it := loadForRequest(w, r, ps)
	if it == nil {
		return
	}
	data, err := PDF(it)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+utils.ExportFilename(it.Name, "pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// GET /api/itineraries/:id/share
func ShareHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it := loadForRequest(w, r, ps)
	if it == nil {
		return
	}
	token, err := EncodeShare(it)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to encode share link")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": token, "url": ShareURL(token)})
}

// GET /api/itineraries/:id/share/qr
func ShareQRHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it := loadForRequest(w, r, ps)
	if it == nil {
		return
	}
	token, err := EncodeShare(it)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to encode share link")
		return
	}
	png, err := qrcode.Encode(ShareURL(token), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// POST /api/itineraries/import/share
// A failed decode leaves the importer's state untouched.
func ImportShareHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	it, err := DecodeShare(body.Token)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid share link; nothing imported")
		return
	}

	// The imported copy becomes a fresh itinerary owned by the importer.
	it.ItineraryID = utils.GenerateRandomString(13)
	it.UserID = userID
	it.Deleted = false

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.ItineraryCollection.InsertOne(ctx, it); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error importing itinerary")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, it)
}

// POST /api/itineraries/:id/import/json
func ImportJSONHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it := loadForRequest(w, r, ps)
	if it == nil {
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to read import file")
		return
	}
	if err := MergeImport(it, data); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid import file; nothing imported")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

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
	}}
	if _, err := db.ItineraryCollection.UpdateOne(ctx, bson.M{"itineraryid": it.ItineraryID}, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving imported itinerary")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, it)
}
