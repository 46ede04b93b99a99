package html2pdf

import (
	"bytes"
	"fmt"
	"strings"

	"codeberg.org/go-pdf/fpdf"
)

// fpdfSizeStr maps our page size names to fpdf's.
var fpdfSizeStr = map[string]string{
	PageSizeA4:     "A4",
	PageSizeLetter: "Letter",
	PageSizeLegal:  "Legal",
	PageSizeA3:     "A3",
}

// assemblePDF places each page band onto its own PDF page at the layout's
// margins, scaled to the full content width. Bands and layout slices are
// produced together by computePageLayout/sliceRaster and must match.
func assemblePDF(bands [][]byte, layout *pageLayout, s Settings) ([]byte, error) {
	if len(bands) != len(layout.Slices) {
		return nil, fmt.Errorf("%w: %d bands for %d slices", ErrPDFGeneration, len(bands), len(layout.Slices))
	}

	orientation := "P"
	if s.landscape() {
		orientation = "L"
	}

	pdf := fpdf.New(orientation, "mm", fpdfSizeStr[strings.ToLower(s.PageSize)], "")
	pdf.SetAutoPageBreak(false, 0)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, band := range bands {
		name := fmt.Sprintf("page-%d", i)
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(band))

		pdf.AddPage()
		h := layout.sliceHeightMm(layout.Slices[i])
		pdf.ImageOptions(name, layout.MarginMm, layout.MarginMm, layout.ContentWidthMm, h, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	return buf.Bytes(), nil
}
