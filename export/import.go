package export

import (
	"encoding/json"
	"fmt"

	"wayfare/itinerary"
	"wayfare/models"
)

// importDoc mirrors the JSON dump with pointer fields so absent keys can be
// told apart from zero values.
type importDoc struct {
	Name       *string                   `json:"name"`
	StartDate  *string                   `json:"start_date"`
	EndDate    *string                   `json:"end_date"`
	ActiveDate *string                   `json:"active_date"`
	Plan       *map[string][]models.Stop `json:"plan"`
	Mode       *models.TravelMode        `json:"mode"`
	Hotel      *models.Place             `json:"hotel"`
	HotelStart *bool                     `json:"hotel_start"`
	HotelEnd   *bool                     `json:"hotel_end"`
}

// MergeImport applies an exported JSON document onto the current itinerary.
// Absent fields keep their current values, except the plan, which is always
// replaced (empty when absent). The itinerary is untouched on parse failure.
func MergeImport(it *models.Itinerary, data []byte) error {
	var doc importDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid import document: %w", err)
	}

	if doc.Name != nil {
		it.Name = *doc.Name
	}
	if doc.StartDate != nil {
		it.StartDate = *doc.StartDate
	}
	if doc.EndDate != nil {
		it.EndDate = *doc.EndDate
	}
	if doc.ActiveDate != nil {
		it.ActiveDate = *doc.ActiveDate
	}
	if doc.Mode != nil && doc.Mode.Valid() {
		it.Mode = *doc.Mode
	}
	if doc.Hotel != nil {
		it.Hotel = doc.Hotel
	}
	if doc.HotelStart != nil {
		it.HotelStart = *doc.HotelStart
	}
	if doc.HotelEnd != nil {
		it.HotelEnd = *doc.HotelEnd
	}

	// The day-stop mapping is replaced wholesale, never merged.
	if doc.Plan != nil {
		it.Plan = *doc.Plan
	} else {
		it.Plan = map[string][]models.Stop{}
	}

	itinerary.Normalize(it)
	return nil
}
