package itinerary

import (
	"reflect"
	"testing"

	"wayfare/models"
)

func testItinerary() models.Itinerary {
	return models.Itinerary{
		ItineraryID: "it_test",
		Name:        "Test Trip",
		StartDate:   "2025-09-01",
		EndDate:     "2025-09-03",
		ActiveDate:  "2025-09-01",
		Plan:        map[string][]models.Stop{},
		Mode:        models.ModeWalking,
	}
}

func place(id string) models.Place {
	return models.Place{PlaceID: id, Name: id, Lat: 48.85, Lon: 2.35}
}

func TestDayRangeInclusiveContiguous(t *testing.T) {
	got := DayRange("2025-09-01", "2025-09-03")
	want := []string{"2025-09-01", "2025-09-02", "2025-09-03"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDayRangeSingleDay(t *testing.T) {
	got := DayRange("2025-09-01", "2025-09-01")
	if len(got) != 1 || got[0] != "2025-09-01" {
		t.Fatalf("expected single day, got %v", got)
	}
}

func TestDayRangeInvalid(t *testing.T) {
	if got := DayRange("2025-09-03", "2025-09-01"); got != nil {
		t.Fatalf("expected nil for reversed range, got %v", got)
	}
	if got := DayRange("not-a-date", "2025-09-01"); got != nil {
		t.Fatalf("expected nil for bad date, got %v", got)
	}
}

func TestAddStopUsesDefaultWindow(t *testing.T) {
	it := testItinerary()
	AddStop(&it, "2025-09-01", place("a"))

	stops := it.Plan["2025-09-01"]
	if len(stops) != 1 {
		t.Fatalf("expected 1 stop, got %d", len(stops))
	}
	if stops[0].StartTime != "09:00" || stops[0].EndTime != "10:00" {
		t.Fatalf("unexpected default window %s-%s", stops[0].StartTime, stops[0].EndTime)
	}
}

func TestMoveStopBoundariesAreNoOps(t *testing.T) {
	it := testItinerary()
	AddStop(&it, "2025-09-01", place("a"))
	AddStop(&it, "2025-09-01", place("b"))

	if MoveStop(&it, "2025-09-01", 0, "up") {
		t.Fatal("move up at index 0 should be a no-op")
	}
	if MoveStop(&it, "2025-09-01", 1, "down") {
		t.Fatal("move down at last index should be a no-op")
	}
	if it.Plan["2025-09-01"][0].Place.PlaceID != "a" {
		t.Fatal("order changed by boundary no-op")
	}
}

func TestMoveStopSwapsAdjacent(t *testing.T) {
	it := testItinerary()
	AddStop(&it, "2025-09-01", place("a"))
	AddStop(&it, "2025-09-01", place("b"))
	AddStop(&it, "2025-09-01", place("c"))

	if !MoveStop(&it, "2025-09-01", 2, "up") {
		t.Fatal("expected move to succeed")
	}
	order := []string{}
	for _, s := range it.Plan["2025-09-01"] {
		order = append(order, s.Place.PlaceID)
	}
	if !reflect.DeepEqual(order, []string{"a", "c", "b"}) {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestRemoveStopOutOfRange(t *testing.T) {
	it := testItinerary()
	AddStop(&it, "2025-09-01", place("a"))
	if RemoveStop(&it, "2025-09-01", 3) {
		t.Fatal("expected out-of-range remove to fail")
	}
	if !RemoveStop(&it, "2025-09-01", 0) {
		t.Fatal("expected remove to succeed")
	}
	if len(it.Plan["2025-09-01"]) != 0 {
		t.Fatal("stop not removed")
	}
}

func TestUpdateStopPartial(t *testing.T) {
	it := testItinerary()
	AddStop(&it, "2025-09-01", place("a"))

	notes := "bring tickets"
	if !UpdateStop(&it, "2025-09-01", 0, StopPatch{Notes: &notes}) {
		t.Fatal("expected update to succeed")
	}
	s := it.Plan["2025-09-01"][0]
	if s.Notes != notes {
		t.Fatalf("notes not updated: %q", s.Notes)
	}
	if s.StartTime != "09:00" {
		t.Fatal("untouched field changed")
	}
}

func TestUpdateStopRejectsMalformedClock(t *testing.T) {
	it := testItinerary()
	AddStop(&it, "2025-09-01", place("a"))

	for _, bad := range []string{"9:00", "24:00", "09:60", "0900", "morning", ""} {
		v := bad
		if UpdateStop(&it, "2025-09-01", 0, StopPatch{StartTime: &v}) {
			t.Fatalf("clock %q accepted", bad)
		}
	}
	if it.Plan["2025-09-01"][0].StartTime != "09:00" {
		t.Fatal("rejected patch changed the stop")
	}

	v := "10:30"
	if !UpdateStop(&it, "2025-09-01", 0, StopPatch{EndTime: &v}) {
		t.Fatal("valid clock rejected")
	}
}

func TestSetWindowResetsActiveDate(t *testing.T) {
	it := testItinerary()
	it.ActiveDate = "2025-09-03"

	if !SetWindow(&it, "2025-10-01", "2025-10-05") {
		t.Fatal("expected window change to succeed")
	}
	if it.ActiveDate != "2025-10-01" {
		t.Fatalf("active date not reset, got %s", it.ActiveDate)
	}

	// Active day inside the new window stays put.
	it.ActiveDate = "2025-10-03"
	SetWindow(&it, "2025-10-02", "2025-10-06")
	if it.ActiveDate != "2025-10-03" {
		t.Fatalf("active date should be unchanged, got %s", it.ActiveDate)
	}
}

func TestEffectiveStopsHotelAnchoring(t *testing.T) {
	it := testItinerary()
	AddStop(&it, "2025-09-01", place("a"))
	AddStop(&it, "2025-09-01", place("b"))

	hotel := place("hotel")
	it.Hotel = &hotel
	it.HotelStart = true
	it.HotelEnd = true

	ids := func(stops []models.Stop) []string {
		out := []string{}
		for _, s := range stops {
			out = append(out, s.Place.PlaceID)
		}
		return out
	}

	got := ids(EffectiveStops(&it, "2025-09-01"))
	if !reflect.DeepEqual(got, []string{"hotel", "a", "b", "hotel"}) {
		t.Fatalf("unexpected effective sequence %v", got)
	}

	it.HotelStart = false
	it.HotelEnd = false
	got = ids(EffectiveStops(&it, "2025-09-01"))
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected effective sequence %v", got)
	}

	// Anchors are inert without a hotel.
	it.Hotel = nil
	it.HotelStart = true
	it.HotelEnd = true
	got = ids(EffectiveStops(&it, "2025-09-01"))
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("anchors applied without hotel: %v", got)
	}
}

func TestNormalizeRepairsPlanAndActiveDate(t *testing.T) {
	it := models.Itinerary{
		StartDate:  "2025-09-01",
		EndDate:    "2025-09-02",
		ActiveDate: "2020-01-01",
	}
	Normalize(&it)
	if it.Plan == nil {
		t.Fatal("plan not initialized")
	}
	if it.ActiveDate != "2025-09-01" {
		t.Fatalf("active date not clamped, got %s", it.ActiveDate)
	}
	if it.Mode != models.ModeWalking {
		t.Fatalf("mode not defaulted, got %s", it.Mode)
	}
}
