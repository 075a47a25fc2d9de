package models

// TravelMode selects the routing profile for a trip.
type TravelMode string

const (
	ModeWalking TravelMode = "walking"
	ModeDriving TravelMode = "driving"
	ModeCycling TravelMode = "cycling"
	ModeTransit TravelMode = "transit"
)

func (m TravelMode) Valid() bool {
	switch m {
	case ModeWalking, ModeDriving, ModeCycling, ModeTransit:
		return true
	}
	return false
}

// Place is a geocoded location. Immutable once fetched from the geocoder.
type Place struct {
	PlaceID string  `json:"placeid" bson:"placeid"`
	Name    string  `json:"name" bson:"name"`
	Lat     float64 `json:"lat" bson:"lat"`
	Lon     float64 `json:"lon" bson:"lon"`
	Address string  `json:"address,omitempty" bson:"address,omitempty"`
}

// Stop is a place scheduled within one day. Times are local clock values
// ("15:04"), no timezone.
type Stop struct {
	Place     Place  `json:"place" bson:"place"`
	StartTime string `json:"start_time" bson:"start_time"`
	EndTime   string `json:"end_time" bson:"end_time"`
	Notes     string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Itinerary represents the travel itinerary. Plan keys are ISO dates
// ("2006-01-02"); keys outside the trip window are retained, not pruned.
type Itinerary struct {
	ItineraryID string            `json:"itineraryid" bson:"itineraryid,omitempty"`
	UserID      string            `json:"user_id" bson:"user_id"`
	Name        string            `json:"name" bson:"name"`
	StartDate   string            `json:"start_date" bson:"start_date"`
	EndDate     string            `json:"end_date" bson:"end_date"`
	ActiveDate  string            `json:"active_date" bson:"active_date"`
	Plan        map[string][]Stop `json:"plan" bson:"plan"`
	Mode        TravelMode        `json:"mode" bson:"mode"`
	Hotel       *Place            `json:"hotel,omitempty" bson:"hotel,omitempty"`
	HotelStart  bool              `json:"hotel_start" bson:"hotel_start"`
	HotelEnd    bool              `json:"hotel_end" bson:"hotel_end"`
	CoverImage  string            `json:"cover_image,omitempty" bson:"cover_image,omitempty"`
	Deleted     bool              `json:"-" bson:"deleted,omitempty"` // Internal use only
}

// RouteSegment is the routed path between one consecutive pair of effective
// stops. Derived, never persisted. Path pairs are latitude-first.
type RouteSegment struct {
	Path      [][2]float64 `json:"path"`
	DistanceM float64      `json:"distance_m"`
	DurationS float64      `json:"duration_s"`
	Fallback  bool         `json:"fallback,omitempty"`
	// WalkTime is the display estimate ("12m", "1h 5m"); set on walking and
	// fallback segments only.
	WalkTime string `json:"walk_time,omitempty"`
}
