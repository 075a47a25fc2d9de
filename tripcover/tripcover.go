package tripcover

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"wayfare/db"
	"wayfare/itinerary"
	"wayfare/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const coverUploadDir = "static/coverpic"

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// POST /api/itineraries/:id/cover
// Stores the uploaded trip cover and a 300px-wide thumbnail.
func UploadCover(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	it, code, msg := itinerary.LoadOwned(ctx, ps.ByName("id"), userID)
	if it == nil {
		utils.RespondWithError(w, code, msg)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid upload")
		return
	}
	file, header, err := r.FormFile("cover")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing cover file")
		return
	}
	defer file.Close()

	if !supportedImageTypes[header.Header.Get("Content-Type")] {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid file type. Supported formats: JPEG, PNG, WebP, GIF.")
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to decode image")
		return
	}

	fileName := it.ItineraryID + ".jpg"
	originalPath := filepath.Join(coverUploadDir, fileName)
	thumbDir := filepath.Join(coverUploadDir, "thumb")
	thumbPath := filepath.Join(thumbDir, fileName)

	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create upload directory")
		return
	}
	if err := imaging.Save(img, originalPath); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}
	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save thumbnail")
		return
	}

	coverURL := "/static/coverpic/" + fileName
	update := bson.M{"$set": bson.M{"cover_image": coverURL}}
	if _, err := db.ItineraryCollection.UpdateOne(ctx, bson.M{"itineraryid": it.ItineraryID}, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving cover")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"cover_image": coverURL,
		"thumbnail":   fmt.Sprintf("/static/coverpic/thumb/%s", fileName),
	})
}
