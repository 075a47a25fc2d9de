package routing

import (
	"context"
	"net/http"
	"time"

	"wayfare/itinerary"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
)

// RoutesHandler computes the per-leg segments for an itinerary day.
// GET /api/itineraries/:id/routes?date=
func RoutesHandler(c *Client, rc *Recomputer) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID := utils.GetUserIDFromRequest(r)
		if userID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
		defer cancel()

		it, code, msg := itinerary.LoadOwned(ctx, ps.ByName("id"), userID)
		if it == nil {
			utils.RespondWithError(w, code, msg)
			return
		}

		day := r.URL.Query().Get("date")
		if day == "" {
			day = it.ActiveDate
		}

		gen := rc.Begin(it.ItineraryID)
		segments, totals, degraded := c.Legs(ctx, it.Mode, itinerary.EffectivePath(it, day))

		res := Result{
			ItineraryID: it.ItineraryID,
			Date:        day,
			Mode:        it.Mode,
			Segments:    segments,
			Totals:      totals,
			Degraded:    degraded,
		}
		if !rc.Apply(gen, res) {
			// A newer recompute started while this one was in flight.
			utils.RespondWithJSON(w, http.StatusConflict, utils.M{"stale": true})
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, res)
	}
}
