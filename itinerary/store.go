package itinerary

import (
	"time"

	"wayfare/models"
	"wayfare/utils"
)

const (
	dateLayout       = "2006-01-02"
	defaultStartTime = "09:00"
	defaultEndTime   = "10:00"
)

// NewItinerary builds the default itinerary a user starts with: a three-day
// window beginning today, walking mode, empty plan.
func NewItinerary(userID string) models.Itinerary {
	start := time.Now().Format(dateLayout)
	end := time.Now().AddDate(0, 0, 2).Format(dateLayout)
	return models.Itinerary{
		ItineraryID: utils.GenerateRandomString(13),
		UserID:      userID,
		Name:        "New Trip",
		StartDate:   start,
		EndDate:     end,
		ActiveDate:  start,
		Plan:        map[string][]models.Stop{},
		Mode:        models.ModeWalking,
	}
}

// DayRange returns the inclusive, contiguous, ascending day-key sequence
// between start and end. Invalid dates or end before start yield nil.
func DayRange(start, end string) []string {
	s := utils.ParseDate(start)
	e := utils.ParseDate(end)
	if s == nil || e == nil || e.Before(*s) {
		return nil
	}
	var days []string
	for d := *s; !d.After(*e); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(dateLayout))
	}
	return days
}

// Normalize repairs fields a decoded or imported document may lack.
func Normalize(it *models.Itinerary) {
	if it.Plan == nil {
		it.Plan = map[string][]models.Stop{}
	}
	if !it.Mode.Valid() {
		it.Mode = models.ModeWalking
	}
	days := DayRange(it.StartDate, it.EndDate)
	if len(days) == 0 {
		return
	}
	if !containsDay(days, it.ActiveDate) {
		it.ActiveDate = days[0]
	}
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

// AddStop appends a place to a day with the default time window.
func AddStop(it *models.Itinerary, day string, place models.Place) {
	if it.Plan == nil {
		it.Plan = map[string][]models.Stop{}
	}
	it.Plan[day] = append(it.Plan[day], models.Stop{
		Place:     place,
		StartTime: defaultStartTime,
		EndTime:   defaultEndTime,
	})
}

// RemoveStop deletes the stop at index. Out-of-range indexes are a no-op and
// return false.
func RemoveStop(it *models.Itinerary, day string, index int) bool {
	stops := it.Plan[day]
	if index < 0 || index >= len(stops) {
		return false
	}
	it.Plan[day] = append(stops[:index], stops[index+1:]...)
	return true
}

// MoveStop swaps the stop at index with its neighbor in the given direction
// ("up" or "down"). Swapping past either boundary is a no-op.
func MoveStop(it *models.Itinerary, day string, index int, direction string) bool {
	stops := it.Plan[day]
	j := index
	switch direction {
	case "up":
		j = index - 1
	case "down":
		j = index + 1
	default:
		return false
	}
	if index < 0 || index >= len(stops) || j < 0 || j >= len(stops) {
		return false
	}
	stops[index], stops[j] = stops[j], stops[index]
	return true
}

// StopPatch carries partial stop updates; nil fields are left untouched.
type StopPatch struct {
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Notes     *string `json:"notes"`
}

// validClock reports whether s is a zero-padded "15:04" clock value. The
// calendar export concatenates these unchecked, so malformed values must be
// rejected at the write path.
func validClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}

// UpdateStop applies a partial update to the stop at index.
func UpdateStop(it *models.Itinerary, day string, index int, patch StopPatch) bool {
	stops := it.Plan[day]
	if index < 0 || index >= len(stops) {
		return false
	}
	if patch.StartTime != nil && !validClock(*patch.StartTime) {
		return false
	}
	if patch.EndTime != nil && !validClock(*patch.EndTime) {
		return false
	}
	if patch.StartTime != nil {
		stops[index].StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		stops[index].EndTime = *patch.EndTime
	}
	if patch.Notes != nil {
		stops[index].Notes = *patch.Notes
	}
	return true
}

// SetWindow changes the trip date range. When the previously active day falls
// outside the new window, the active day resets to the window's first day.
func SetWindow(it *models.Itinerary, start, end string) bool {
	days := DayRange(start, end)
	if len(days) == 0 {
		return false
	}
	it.StartDate = start
	it.EndDate = end
	if !containsDay(days, it.ActiveDate) {
		it.ActiveDate = days[0]
	}
	return true
}

// SetActiveDate selects a day; it must be inside the trip window.
func SetActiveDate(it *models.Itinerary, day string) bool {
	if !containsDay(DayRange(it.StartDate, it.EndDate), day) {
		return false
	}
	it.ActiveDate = day
	return true
}

// EffectiveStops is the ordered stop list actually used for routing and
// display: [hotel if start anchor] ++ day's stops ++ [hotel if end anchor].
// Anchors have no effect when no hotel is set.
func EffectiveStops(it *models.Itinerary, day string) []models.Stop {
	stops := make([]models.Stop, 0, len(it.Plan[day])+2)
	if it.Hotel != nil && it.HotelStart {
		stops = append(stops, models.Stop{Place: *it.Hotel})
	}
	stops = append(stops, it.Plan[day]...)
	if it.Hotel != nil && it.HotelEnd {
		stops = append(stops, models.Stop{Place: *it.Hotel})
	}
	return stops
}

// EffectivePath reduces the effective stops to lat-first coordinate pairs.
func EffectivePath(it *models.Itinerary, day string) [][2]float64 {
	stops := EffectiveStops(it, day)
	pts := make([][2]float64, len(stops))
	for i, s := range stops {
		pts[i] = [2]float64{s.Place.Lat, s.Place.Lon}
	}
	return pts
}
