package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"wayfare/geo"
	"wayfare/models"
	"wayfare/polyline"
	"wayfare/rdx"
)

const legCacheTTL = 10 * time.Minute

// Client talks to the two routing backends: OSRM for walking/driving/cycling
// and the transit directions API.
type Client struct {
	osrmURL   string
	googleURL string
	googleKey string
	hc        *http.Client
}

func NewClient() *Client {
	osrm := os.Getenv("OSRM_URL")
	if osrm == "" {
		osrm = "https://router.project-osrm.org"
	}
	return &Client{
		osrmURL:   osrm,
		googleURL: "https://maps.googleapis.com/maps/api",
		googleKey: os.Getenv("GOOGLE_MAPS_KEY"),
		hc:        &http.Client{Timeout: 15 * time.Second},
	}
}

func profileFor(mode models.TravelMode) string {
	switch mode {
	case models.ModeDriving:
		return "car"
	case models.ModeCycling:
		return "bike"
	default:
		return "foot"
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][2]float64 `json:"coordinates"` // lon-first
		} `json:"geometry"`
	} `json:"routes"`
}

func (c *Client) osrmLeg(ctx context.Context, mode models.TravelMode, from, to [2]float64) (models.RouteSegment, error) {
	var seg models.RouteSegment

	reqURL := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=full&geometries=geojson",
		c.osrmURL, profileFor(mode), from[1], from[0], to[1], to[0])

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return seg, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return seg, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return seg, fmt.Errorf("routing service returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return seg, err
	}

	var parsed osrmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return seg, err
	}
	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return seg, fmt.Errorf("no route (code %s)", parsed.Code)
	}

	route := parsed.Routes[0]
	path := make([][2]float64, len(route.Geometry.Coordinates))
	for i, coord := range route.Geometry.Coordinates {
		// GeoJSON is lon-first; flip to lat-first for internal use
		path[i] = [2]float64{coord[1], coord[0]}
	}

	seg = models.RouteSegment{Path: path, DistanceM: route.Distance, DurationS: route.Duration}
	return seg, nil
}

// Leg fetches the routed segment between two lat-first coordinate pairs.
func (c *Client) Leg(ctx context.Context, mode models.TravelMode, from, to [2]float64) (models.RouteSegment, error) {
	cacheKey := fmt.Sprintf("route:%s:%.5f,%.5f:%.5f,%.5f", mode, from[0], from[1], to[0], to[1])
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		var seg models.RouteSegment
		if err := json.Unmarshal([]byte(cached), &seg); err == nil {
			return seg, nil
		}
	}

	var seg models.RouteSegment
	var err error
	if mode == models.ModeTransit {
		var tr transitRoute
		tr, err = c.transitDirections(ctx, from, to, "")
		if err == nil {
			seg = models.RouteSegment{
				Path:      polyline.Decode(tr.Polyline),
				DistanceM: tr.DistanceM,
				DurationS: tr.DurationS,
			}
		}
	} else {
		seg, err = c.osrmLeg(ctx, mode, from, to)
	}
	if err != nil {
		return seg, err
	}

	if data, merr := json.Marshal(seg); merr == nil {
		_ = rdx.RdxSet(cacheKey, string(data), legCacheTTL)
	}
	return seg, nil
}

func fallbackSegment(from, to [2]float64) models.RouteSegment {
	d := geo.HaversineM(from[0], from[1], to[0], to[1])
	return models.RouteSegment{
		Path:      [][2]float64{from, to},
		DistanceM: d,
		DurationS: geo.WalkSeconds(d),
		Fallback:  true,
	}
}

// Totals aggregates distance and duration across a segment batch.
type Totals struct {
	DistanceM float64 `json:"distance_m"`
	DurationS float64 `json:"duration_s"`
}

// Legs computes one segment per consecutive pair of effective stops,
// sequentially so the output order matches the input order. A failed leg
// degrades to a straight two-point line and never aborts the remaining legs;
// the degraded flag is raised once per batch.
func (c *Client) Legs(ctx context.Context, mode models.TravelMode, pts [][2]float64) ([]models.RouteSegment, Totals, bool) {
	segments := []models.RouteSegment{}
	totals := Totals{}
	degraded := false

	if len(pts) < 2 {
		return segments, totals, false
	}

	for i := 0; i < len(pts)-1; i++ {
		seg, err := c.Leg(ctx, mode, pts[i], pts[i+1])
		if err != nil {
			degraded = true
			seg = fallbackSegment(pts[i], pts[i+1])
		}
		if seg.Fallback || mode == models.ModeWalking {
			seg.WalkTime = geo.FormatWalkTime(seg.DistanceM)
		}
		segments = append(segments, seg)
		totals.DistanceM += seg.DistanceM
		totals.DurationS += seg.DurationS
	}

	return segments, totals, degraded
}
