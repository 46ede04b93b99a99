package html2pdf

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// renderer turns a processed document into final PDF bytes.
type renderer interface {
	renderToPDF(ctx context.Context, htmlContent string, s Settings) ([]byte, error)
}

// Compile-time interface checks.
var (
	_ renderer  = (*printRenderer)(nil)
	_ renderer  = (*rasterRenderer)(nil)
	_ extractor = (*rodExtractor)(nil)
)

// printRenderer delegates pagination to Chrome's native print-to-PDF.
// Layout-aware, produces real searchable text; this is the default path.
type printRenderer struct {
	handle  *browserHandle
	timeout time.Duration
}

func newPrintRenderer(handle *browserHandle, timeout time.Duration) *printRenderer {
	return &printRenderer{handle: handle, timeout: timeout}
}

// renderToPDF loads the document in headless Chrome and prints it with the
// declared page format, orientation, and per-edge margins. Background
// graphics are enabled and a CSS @page size takes precedence when declared.
func (r *printRenderer) renderToPDF(ctx context.Context, htmlContent string, s Settings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.handle.ensure()
	if err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	timeout, err := timeoutFor(ctx, r.timeout)
	if err != nil {
		return nil, err
	}

	page, err := openPage(browser, "file://"+tmpPath, timeout)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPrintToPDF(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPrintToPDF maps Settings onto Chrome's print parameters.
// Chrome expects paper dimensions and margins in inches.
func buildPrintToPDF(s Settings) *proto.PagePrintToPDF {
	widthMm, heightMm := s.pageDimensions()
	margin := mmToInches(s.MarginMm)

	return &proto.PagePrintToPDF{
		PaperWidth:        floatPtr(mmToInches(widthMm)),
		PaperHeight:       floatPtr(mmToInches(heightMm)),
		MarginTop:         floatPtr(margin),
		MarginBottom:      floatPtr(margin),
		MarginLeft:        floatPtr(margin),
		MarginRight:       floatPtr(margin),
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
