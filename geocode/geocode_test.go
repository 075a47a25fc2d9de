package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchShortQuerySkipsUpstream(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	oldBase := baseURL
	baseURL = srv.URL
	defer func() { baseURL = oldBase }()

	for _, q := range []string{"", "ab", "  a b  "} {
		places, err := Search(context.Background(), q)
		if err != nil {
			t.Fatalf("query %q: unexpected error %v", q, err)
		}
		if len(places) != 0 {
			t.Fatalf("query %q: expected empty result, got %v", q, places)
		}
	}
	if called {
		t.Fatal("upstream was called for a short query")
	}
}

func TestSearchMapsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "8" {
			t.Errorf("expected limit=8, got %s", r.URL.Query().Get("limit"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"place_id": 42, "display_name": "Louvre Museum, Paris, France", "lat": "48.8606", "lon": "2.3376"},
			{"place_id": 43, "display_name": "Broken", "lat": "oops", "lon": "2.0"}
		]`))
	}))
	defer srv.Close()

	oldBase := baseURL
	baseURL = srv.URL
	defer func() { baseURL = oldBase }()

	places, err := Search(context.Background(), "louvre test query")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 1 {
		t.Fatalf("expected 1 usable place, got %d", len(places))
	}
	p := places[0]
	if p.PlaceID != "osm-42" || p.Name != "Louvre Museum" || p.Lat != 48.8606 {
		t.Fatalf("unexpected mapping: %+v", p)
	}
	if p.Address != "Louvre Museum, Paris, France" {
		t.Fatalf("address not kept: %q", p.Address)
	}
}

func TestSearchUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	oldBase := baseURL
	baseURL = srv.URL
	defer func() { baseURL = oldBase }()

	if _, err := Search(context.Background(), "some failing query"); err == nil {
		t.Fatal("expected error from failing upstream")
	}
}
