package html2pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
)

// Rendering geometry for the raster path.
const (
	// rasterViewportWidth is the CSS pixel width of the off-screen render.
	rasterViewportWidth = 800

	// rasterScale is the device scale factor applied during capture, for
	// print sharpness.
	rasterScale = 2
)

// pageSlice is one horizontal band of the full-page raster. The sequence
// of slices partitions the raster top to bottom with no gaps or overlaps;
// only the final slice may be shorter than a full page.
type pageSlice struct {
	Y      int // top offset in raster pixels
	Height int // band height in raster pixels
}

// pageLayout holds the geometry shared by the slicer and the assembler, so
// the slicing math lives in exactly one place.
type pageLayout struct {
	RasterWidth  int
	RasterHeight int

	PageWidthMm     float64
	PageHeightMm    float64
	MarginMm        float64
	ContentWidthMm  float64
	ContentHeightMm float64

	// PxPerMm maps raster pixels to millimeters of page content.
	PxPerMm float64

	Slices []pageSlice
}

// computePageLayout cuts a raster of the given dimensions into page-sized
// bands for the configured page geometry.
//
// Invariants: slice count equals ceil(rasterH / pageContentPx), slice
// heights sum to exactly rasterH, and an exact multiple produces no blank
// trailing page.
func computePageLayout(rasterW, rasterH int, s Settings) (*pageLayout, error) {
	if rasterW <= 0 || rasterH <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyRaster, rasterW, rasterH)
	}

	pageW, pageH := s.pageDimensions()
	contentW := pageW - 2*s.MarginMm
	contentH := pageH - 2*s.MarginMm
	if contentW <= 0 || contentH <= 0 {
		return nil, fmt.Errorf("%w: %.1f mm leaves no printable area on %s", ErrInvalidMargin, s.MarginMm, s.PageSize)
	}

	pxPerMm := float64(rasterW) / contentW
	pageContentPx := int(contentH * pxPerMm)
	if pageContentPx < 1 {
		pageContentPx = 1
	}

	layout := &pageLayout{
		RasterWidth:     rasterW,
		RasterHeight:    rasterH,
		PageWidthMm:     pageW,
		PageHeightMm:    pageH,
		MarginMm:        s.MarginMm,
		ContentWidthMm:  contentW,
		ContentHeightMm: contentH,
		PxPerMm:         pxPerMm,
	}

	// The loop condition stops at the raster's end, so an exact multiple
	// never yields an extra zero-height page.
	for y := 0; y < rasterH; y += pageContentPx {
		h := pageContentPx
		if y+h > rasterH {
			h = rasterH - y
		}
		layout.Slices = append(layout.Slices, pageSlice{Y: y, Height: h})
	}

	return layout, nil
}

// sliceHeightMm converts a slice's pixel height to millimeters on the page.
func (l *pageLayout) sliceHeightMm(sl pageSlice) float64 {
	return float64(sl.Height) / l.PxPerMm
}

// subImager is implemented by the stdlib image types that support cropping.
type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// sliceRaster cuts the raster into the layout's bands and encodes each as
// PNG, ready for placement by the assembler.
func sliceRaster(img image.Image, layout *pageLayout) ([][]byte, error) {
	si, ok := img.(subImager)
	if !ok {
		// Screenshot decoders return croppable types; redraw if not.
		rgba := image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
		si = rgba
	}

	bounds := img.Bounds()
	bands := make([][]byte, 0, len(layout.Slices))
	for _, sl := range layout.Slices {
		rect := image.Rect(bounds.Min.X, bounds.Min.Y+sl.Y, bounds.Max.X, bounds.Min.Y+sl.Y+sl.Height)
		band := si.SubImage(rect)

		var buf bytes.Buffer
		if err := png.Encode(&buf, band); err != nil {
			return nil, fmt.Errorf("encoding page band at y=%d: %w", sl.Y, err)
		}
		bands = append(bands, buf.Bytes())
	}
	return bands, nil
}
