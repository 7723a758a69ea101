// Package export renders a deck into downloadable document formats.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/EthanLe-hub/FounderHubAI/internal/deck"
)

// PDFRenderer renders slides as a simple paged document: bold titles,
// plain content lines, top-down cursor with page breaks near the bottom
// margin.
type PDFRenderer struct{}

// Render returns the deck as PDF bytes.
func (PDFRenderer) Render(slides []deck.Slide) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	_, pageH := pdf.GetPageSize()

	pdf.AddPage()
	y := 50.0
	breakPage := func() {
		if y > pageH-80 {
			pdf.AddPage()
			y = 50.0
		}
	}

	for _, slide := range slides {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.Text(50, y, tr(slide.Title))
		y += 30

		pdf.SetFont("Helvetica", "", 12)
		for _, line := range strings.Split(slide.Content, "\n") {
			pdf.Text(60, y, tr(line))
			y += 20
			breakPage()
		}
		y += 20
		breakPage()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
