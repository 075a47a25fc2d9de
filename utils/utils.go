package utils

import (
	rndm "math/rand"
	"regexp"
	"strings"
	"time"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// --- Date Helpers ---

func ParseDate(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// --- Filename Helpers ---

var filenameRe = regexp.MustCompile(`[^\w.\-]`)

// ExportFilename builds a download filename from a trip name,
// whitespace replaced with underscores.
func ExportFilename(tripName, ext string) string {
	name := strings.TrimSpace(tripName)
	if name == "" {
		name = "itinerary"
	}
	name = strings.Join(strings.Fields(name), "_")
	name = filenameRe.ReplaceAllString(name, "_")
	return name + "." + ext
}
