package export

import (
	"net/url"
	"reflect"
	"testing"

	"wayfare/models"
)

func sampleItinerary() models.Itinerary {
	hotel := models.Place{PlaceID: "osm-9", Name: "Hotel", Lat: 48.86, Lon: 2.34}
	return models.Itinerary{
		ItineraryID: "it_abc",
		UserID:      "u1",
		Name:        "Paris Weekend",
		StartDate:   "2025-09-01",
		EndDate:     "2025-09-02",
		ActiveDate:  "2025-09-01",
		Plan: map[string][]models.Stop{
			"2025-09-01": {{
				Place:     models.Place{PlaceID: "osm-1", Name: "Louvre", Lat: 48.8606, Lon: 2.3376},
				StartTime: "09:00",
				EndTime:   "11:00",
				Notes:     "morning visit",
			}},
		},
		Mode:       models.ModeTransit,
		Hotel:      &hotel,
		HotelStart: true,
		HotelEnd:   true,
	}
}

func TestShareRoundTrip(t *testing.T) {
	it := sampleItinerary()

	token, err := EncodeShare(&it)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	// The token must survive a URL query parameter untouched.
	if url.QueryEscape(token) != token {
		t.Fatalf("token is not URL-safe: %q", token)
	}

	got, err := DecodeShare(token)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !reflect.DeepEqual(*got, it) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", it, *got)
	}
}

func TestDecodeShareGarbage(t *testing.T) {
	for _, token := range []string{"", "!!!", "bm90IGpzb24"} {
		if _, err := DecodeShare(token); err == nil {
			t.Fatalf("expected error for token %q", token)
		}
	}
}

func TestMergeImportMissingPlanResets(t *testing.T) {
	it := sampleItinerary()

	if err := MergeImport(&it, []byte(`{"name":"Renamed"}`)); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if it.Name != "Renamed" {
		t.Fatalf("name not applied: %q", it.Name)
	}
	if len(it.Plan) != 0 {
		t.Fatalf("plan should reset to empty, got %v", it.Plan)
	}
	// Absent fields fall back to the current values.
	if it.StartDate != "2025-09-01" || it.Mode != models.ModeTransit {
		t.Fatal("absent fields did not keep current values")
	}
}

func TestMergeImportReplacesPlan(t *testing.T) {
	it := sampleItinerary()

	doc := []byte(`{"plan":{"2025-09-02":[{"place":{"placeid":"osm-7","name":"Orsay","lat":48.86,"lon":2.32},"start_time":"14:00","end_time":"16:00"}]}}`)
	if err := MergeImport(&it, doc); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if len(it.Plan["2025-09-01"]) != 0 {
		t.Fatal("old plan entries survived a replace")
	}
	if len(it.Plan["2025-09-02"]) != 1 || it.Plan["2025-09-02"][0].Place.Name != "Orsay" {
		t.Fatalf("new plan not applied: %v", it.Plan)
	}
}

func TestMergeImportInvalidDocumentKeepsState(t *testing.T) {
	it := sampleItinerary()
	before := sampleItinerary()

	if err := MergeImport(&it, []byte(`{not json`)); err == nil {
		t.Fatal("expected parse error")
	}
	if !reflect.DeepEqual(it, before) {
		t.Fatal("state changed on failed import")
	}
}
