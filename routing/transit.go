package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
)

// ErrNoAPIKey marks the configuration error from the transit proxy; it is
// never retried.
var ErrNoAPIKey = errors.New("transit directions API key not configured")

type transitRoute struct {
	Polyline  string  `json:"polyline"`
	DistanceM float64 `json:"distance_m"`
	DurationS float64 `json:"duration_s"`
}

type googleDirectionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance struct {
				Value float64 `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

func (c *Client) transitDirections(ctx context.Context, from, to [2]float64, departure string) (transitRoute, error) {
	var tr transitRoute
	if c.googleKey == "" {
		return tr, ErrNoAPIKey
	}

	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", from[0], from[1]))
	params.Set("destination", fmt.Sprintf("%f,%f", to[0], to[1]))
	params.Set("mode", "transit")
	params.Set("key", c.googleKey)
	if departure != "" {
		params.Set("departure_time", departure)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.googleURL+"/directions/json?"+params.Encode(), nil)
	if err != nil {
		return tr, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return tr, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return tr, err
	}

	var parsed googleDirectionsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return tr, err
	}
	if parsed.Status != "OK" || len(parsed.Routes) == 0 {
		return tr, fmt.Errorf("no transit route (status %s)", parsed.Status)
	}

	route := parsed.Routes[0]
	if route.OverviewPolyline.Points == "" || len(route.Legs) == 0 {
		return tr, errors.New("transit response missing polyline")
	}

	tr = transitRoute{
		Polyline:  route.OverviewPolyline.Points,
		DistanceM: route.Legs[0].Distance.Value,
		DurationS: route.Legs[0].Duration.Value,
	}
	return tr, nil
}

func parseLatLng(s string) ([2]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return [2]float64{}, fmt.Errorf("expected lat,lng, got %q", s)
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return [2]float64{}, fmt.Errorf("expected lat,lng, got %q", s)
	}
	return [2]float64{lat, lng}, nil
}

// TransitDirectionsHandler is the owned proxy in front of the third-party
// transit directions API; it keeps the credential off the client.
// GET /api/directions/transit?origin=lat,lng&destination=lat,lng[&departure=]
func TransitDirectionsHandler(c *Client) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		origin, err := parseLatLng(r.URL.Query().Get("origin"))
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid origin")
			return
		}
		dest, err := parseLatLng(r.URL.Query().Get("destination"))
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid destination")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		tr, err := c.transitDirections(ctx, origin, dest, r.URL.Query().Get("departure"))
		if err != nil {
			if errors.Is(err, ErrNoAPIKey) {
				utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			utils.RespondWithError(w, http.StatusBadGateway, "No transit route found")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, tr)
	}
}
