package routesock

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// create fake client
	client := &Client{
		Send:        make(chan []byte, 10),
		ItineraryID: "it1",
	}

	// register client
	hub.register <- client

	// broadcast a route update
	data := []byte(`{"itineraryid":"it1","degraded":false}`)
	hub.Broadcast("it1", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	// unregister client
	hub.unregister <- client
}

func TestHubUnregisterAfterSlowClientDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// An unbuffered Send with no reader: the broadcast drops and closes it.
	slow := &Client{Send: make(chan []byte), ItineraryID: "it1"}
	hub.register <- slow
	hub.Broadcast("it1", []byte("x"))

	// readPump still unregisters on disconnect; must not close Send twice.
	hub.unregister <- slow

	// The hub must keep serving afterwards.
	c := &Client{Send: make(chan []byte, 10), ItineraryID: "it1"}
	hub.register <- c
	hub.Broadcast("it1", []byte("y"))

	select {
	case got := <-c.Send:
		if string(got) != "y" {
			t.Fatalf("expected y, got %s", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("hub stopped delivering after duplicate unregister")
	}
}

func TestHubBroadcastOnlyToMatchingItinerary(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	other := &Client{Send: make(chan []byte, 10), ItineraryID: "other"}
	hub.register <- other

	hub.Broadcast("it1", []byte("x"))

	select {
	case <-other.Send:
		t.Fatal("client received update for a different itinerary")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHandlerRejectsMissingToken(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	router := httprouter.New()
	router.GET("/ws/itineraries/:id", Handler(hub))
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ws/itineraries/it1")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	resp2, err := http.Get(srv.URL + "/ws/itineraries/it1?token=garbage")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", resp2.StatusCode)
	}
}
