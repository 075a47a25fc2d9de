package export

import (
	"fmt"
	"strings"

	"wayfare/itinerary"
	"wayfare/models"
	"wayfare/utils"
)

// escapeText escapes the characters the calendar format requires escaping in
// text values: backslash, semicolon, comma.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// icsTimestamp turns a day key ("2006-01-02") and a local clock value
// ("15:04") into a naive calendar timestamp. No timezone conversion.
func icsTimestamp(day, clock string) string {
	day = strings.ReplaceAll(day, "-", "")
	clock = strings.ReplaceAll(clock, ":", "")
	if len(clock) == 4 {
		clock += "00"
	}
	return day + "T" + clock
}

// ICS serializes the itinerary to a calendar document: one VEVENT per stop,
// grouped by day in trip order. An empty plan yields a well-formed calendar
// with header and footer only.
func ICS(it *models.Itinerary) string {
	var b strings.Builder
	writeLine := func(s string) {
		b.WriteString(s)
		b.WriteString("\r\n")
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:-//wayfare//itinerary//EN")
	writeLine("CALSCALE:GREGORIAN")

	for _, day := range itinerary.DayRange(it.StartDate, it.EndDate) {
		for _, stop := range it.Plan[day] {
			writeLine("BEGIN:VEVENT")
			writeLine("UID:" + utils.GetUUID())
			writeLine("DTSTART:" + icsTimestamp(day, stop.StartTime))
			writeLine("DTEND:" + icsTimestamp(day, stop.EndTime))
			writeLine("SUMMARY:" + escapeText(it.Name+" - "+stop.Place.Name))
			loc := fmt.Sprintf("%.5f,%.5f", stop.Place.Lat, stop.Place.Lon)
			if stop.Place.Address != "" {
				loc += " " + stop.Place.Address
			}
			writeLine("LOCATION:" + escapeText(loc))
			if stop.Notes != "" {
				writeLine("DESCRIPTION:" + escapeText(stop.Notes))
			}
			writeLine("END:VEVENT")
		}
	}

	writeLine("END:VCALENDAR")
	return b.String()
}
