package export

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"wayfare/itinerary"
	"wayfare/models"
)

// EncodeShare serializes the itinerary into a compact token safe for a URL
// query parameter.
func EncodeShare(it *models.Itinerary) (string, error) {
	data, err := json.Marshal(it)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeShare reconstructs an itinerary from a share token. Any decode
// failure returns an error; callers keep their current state unchanged.
func DecodeShare(token string) (*models.Itinerary, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid share token: %w", err)
	}
	var it models.Itinerary
	if err := json.Unmarshal(data, &it); err != nil {
		return nil, fmt.Errorf("invalid share payload: %w", err)
	}
	itinerary.Normalize(&it)
	return &it, nil
}

// ShareURL builds the link a recipient opens; the client strips the query
// parameter after a successful import.
func ShareURL(token string) string {
	base := os.Getenv("PUBLIC_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return base + "/?trip=" + token
}
