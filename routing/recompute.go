package routing

import (
	"encoding/json"
	"sync"

	"wayfare/models"
)

// Result is one finished route recomputation for an itinerary day.
type Result struct {
	ItineraryID string                `json:"itineraryid"`
	Date        string                `json:"date"`
	Mode        models.TravelMode     `json:"mode"`
	Segments    []models.RouteSegment `json:"segments"`
	Totals      Totals                `json:"totals"`
	Degraded    bool                  `json:"degraded"`
}

// Recomputer enforces last-request-wins on route recomputations: every
// recompute for an itinerary takes a generation number, and a result whose
// generation is stale by apply time is discarded, so two overlapping
// recomputes never produce torn output.
type Recomputer struct {
	mu   sync.Mutex
	gens map[string]uint64

	// Publish, when set, receives every winning result (e.g. for the
	// websocket hub). Stale results are never published.
	Publish func(itineraryID string, data []byte)
}

func NewRecomputer() *Recomputer {
	return &Recomputer{gens: make(map[string]uint64)}
}

// Begin registers a new recomputation and returns its generation. Any
// recompute started earlier for the same itinerary becomes stale.
func (rc *Recomputer) Begin(itineraryID string) uint64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.gens[itineraryID]++
	return rc.gens[itineraryID]
}

// Apply accepts a finished result if its generation is still current.
// Returns false when the result is stale and was discarded.
func (rc *Recomputer) Apply(gen uint64, res Result) bool {
	rc.mu.Lock()
	current := rc.gens[res.ItineraryID]
	rc.mu.Unlock()

	if gen != current {
		return false
	}

	if rc.Publish != nil {
		if data, err := json.Marshal(res); err == nil {
			rc.Publish(res.ItineraryID, data)
		}
	}
	return true
}
