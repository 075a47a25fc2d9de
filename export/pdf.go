package export

import (
	"bytes"
	"fmt"

	"wayfare/itinerary"
	"wayfare/models"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// PDF renders a printable trip sheet: trip header, the stops of each day in
// visiting order, and a QR code of the share link.
func PDF(it *models.Itinerary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, it.Name)
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("%s to %s  (%s)", it.StartDate, it.EndDate, it.Mode))
	pdf.Ln(10)

	for _, day := range itinerary.DayRange(it.StartDate, it.EndDate) {
		stops := it.Plan[day]
		if len(stops) == 0 {
			continue
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, day)
		pdf.Ln(7)

		pdf.SetFont("Arial", "", 10)
		for _, stop := range stops {
			line := fmt.Sprintf("%s-%s  %s", stop.StartTime, stop.EndTime, stop.Place.Name)
			if stop.Notes != "" {
				line += "  (" + stop.Notes + ")"
			}
			pdf.Cell(0, 6, line)
			pdf.Ln(5)
		}
		pdf.Ln(4)
	}

	if token, err := EncodeShare(it); err == nil {
		if qrPNG, err := qrcode.Encode(ShareURL(token), qrcode.Medium, 256); err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("share-qr", opts, bytes.NewReader(qrPNG))
			pdf.ImageOptions("share-qr", 160, 10, 35, 35, false, opts, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
