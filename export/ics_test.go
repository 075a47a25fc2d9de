package export

import (
	"strings"
	"testing"

	"wayfare/models"
)

func TestICSEmptyPlan(t *testing.T) {
	it := models.Itinerary{
		Name:      "Empty Trip",
		StartDate: "2025-09-01",
		EndDate:   "2025-09-03",
		Plan:      map[string][]models.Stop{},
	}

	doc := ICS(&it)
	lines := strings.Split(strings.TrimRight(doc, "\r\n"), "\r\n")

	if lines[0] != "BEGIN:VCALENDAR" {
		t.Fatalf("missing header, got %q", lines[0])
	}
	if lines[len(lines)-1] != "END:VCALENDAR" {
		t.Fatalf("missing footer, got %q", lines[len(lines)-1])
	}
	if strings.Contains(doc, "VEVENT") {
		t.Fatal("empty plan must not produce events")
	}
}

func TestICSEventFields(t *testing.T) {
	it := models.Itinerary{
		Name:      "Paris",
		StartDate: "2025-09-01",
		EndDate:   "2025-09-01",
		Plan: map[string][]models.Stop{
			"2025-09-01": {{
				Place: models.Place{
					Name:    "Louvre",
					Lat:     48.8606,
					Lon:     2.3376,
					Address: "Rue de Rivoli; Paris, France",
				},
				StartTime: "09:30",
				EndTime:   "12:00",
				Notes:     "skip-the-line tickets",
			}},
		},
	}

	doc := ICS(&it)

	if !strings.Contains(doc, "DTSTART:20250901T093000\r\n") {
		t.Fatal("naive local start timestamp missing")
	}
	if !strings.Contains(doc, "DTEND:20250901T120000\r\n") {
		t.Fatal("naive local end timestamp missing")
	}
	if !strings.Contains(doc, "SUMMARY:Paris - Louvre\r\n") {
		t.Fatal("summary should combine trip and place name")
	}
	if !strings.Contains(doc, `Rue de Rivoli\; Paris\, France`) {
		t.Fatal("semicolon and comma in location not escaped")
	}
	if !strings.Contains(doc, "DESCRIPTION:skip-the-line tickets\r\n") {
		t.Fatal("notes missing from description")
	}
	if !strings.Contains(doc, "UID:") {
		t.Fatal("event has no UID")
	}
}

func TestEscapeText(t *testing.T) {
	got := escapeText(`a,b;c\d`)
	want := `a\,b\;c\\d`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestICSSkipsOutOfRangePlanDays(t *testing.T) {
	it := models.Itinerary{
		Name:      "Trip",
		StartDate: "2025-09-01",
		EndDate:   "2025-09-01",
		Plan: map[string][]models.Stop{
			"2020-01-01": {{Place: models.Place{Name: "Stale"}}},
		},
	}
	if strings.Contains(ICS(&it), "Stale") {
		t.Fatal("stale out-of-range day leaked into export")
	}
}
