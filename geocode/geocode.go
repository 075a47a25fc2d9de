package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"wayfare/models"
	"wayfare/rdx"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
)

const (
	maxResults  = 8
	minQueryLen = 3
	cacheTTL    = 1 * time.Hour
)

var (
	httpClient = &http.Client{Timeout: 10 * time.Second}
	baseURL    = envOr("NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	// regional bias, e.g. "fr" or "gb,ie"
	region = os.Getenv("GEOCODE_REGION")
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// nominatimResult represents a result from the Nominatim API
type nominatimResult struct {
	PlaceID     int64  `json:"place_id"`
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search runs a free-text place search. Queries under three non-whitespace
// characters return an empty result without an upstream request.
func Search(ctx context.Context, query string) ([]models.Place, error) {
	query = strings.TrimSpace(query)
	if len(strings.Join(strings.Fields(query), "")) < minQueryLen {
		return []models.Place{}, nil
	}

	cacheKey := "geocode:" + strings.ToLower(query)
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		var places []models.Place
		if err := json.Unmarshal([]byte(cached), &places); err == nil {
			return places, nil
		}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(maxResults))
	if region != "" {
		params.Set("countrycodes", region)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// Nominatim usage policy requires an identifying UA
	req.Header.Set("User-Agent", "wayfare/1.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("geocoder parse error: %w", err)
	}

	places := make([]models.Place, 0, len(results))
	for _, res := range results {
		lat, err1 := strconv.ParseFloat(res.Lat, 64)
		lon, err2 := strconv.ParseFloat(res.Lon, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		name := res.DisplayName
		if i := strings.Index(name, ","); i > 0 {
			name = name[:i]
		}
		places = append(places, models.Place{
			PlaceID: "osm-" + strconv.FormatInt(res.PlaceID, 10),
			Name:    name,
			Lat:     lat,
			Lon:     lon,
			Address: res.DisplayName,
		})
	}

	if data, err := json.Marshal(places); err == nil {
		_ = rdx.RdxSet(cacheKey, string(data), cacheTTL)
	}

	return places, nil
}

// GET /api/geocode?q=
func SearchHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 12*time.Second)
	defer cancel()

	places, err := Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Place search failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"places": places})
}
