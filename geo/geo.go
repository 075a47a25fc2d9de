package geo

import (
	"fmt"
	"math"
)

const (
	// Mean Earth radius in meters.
	EarthRadiusM = 6371000.0
	// WalkingSpeedMPS is the pace used for walking-time estimates and for
	// the duration of straight-line fallback legs.
	WalkingSpeedMPS = 1.25
)

// HaversineM returns the great-circle distance in meters between two
// (lat, lon) pairs given in degrees.
func HaversineM(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusM * c
}

// WalkSeconds estimates how long a distance takes on foot.
func WalkSeconds(distM float64) float64 {
	return distM / WalkingSpeedMPS
}

// FormatWalkTime renders a walking-time estimate as "1h 5m" or "12m",
// hours omitted when zero.
func FormatWalkTime(distM float64) string {
	mins := int(math.Round(WalkSeconds(distM) / 60))
	h := mins / 60
	m := mins % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
