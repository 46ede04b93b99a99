package html2pdf

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// rasterRenderer implements the bitmap-slicing realization: the document is
// rendered at a fixed viewport width, captured as one tall screenshot, cut
// into page-sized bands by the shared layout math, and assembled into a
// PDF of embedded images.
type rasterRenderer struct {
	handle  *browserHandle
	timeout time.Duration
}

func newRasterRenderer(handle *browserHandle, timeout time.Duration) *rasterRenderer {
	return &rasterRenderer{handle: handle, timeout: timeout}
}

func (r *rasterRenderer) renderToPDF(ctx context.Context, htmlContent string, s Settings) ([]byte, error) {
	raster, err := r.capture(ctx, htmlContent)
	if err != nil {
		return nil, err
	}

	img, err := png.Decode(bytes.NewReader(raster))
	if err != nil {
		return nil, wrapStage(StagePaginate, fmt.Errorf("%w: decoding screenshot: %v", ErrScreenshot, err))
	}

	bounds := img.Bounds()
	layout, err := computePageLayout(bounds.Dx(), bounds.Dy(), s)
	if err != nil {
		return nil, wrapStage(StagePaginate, err)
	}

	bands, err := sliceRaster(img, layout)
	if err != nil {
		return nil, wrapStage(StagePaginate, err)
	}

	pdfBytes, err := assemblePDF(bands, layout, s)
	if err != nil {
		return nil, wrapStage(StageAssemble, err)
	}
	return pdfBytes, nil
}

// capture renders the document off-screen and returns a full-page PNG at
// rasterViewportWidth CSS pixels and rasterScale device scale.
func (r *rasterRenderer) capture(ctx context.Context, htmlContent string) ([]byte, error) {
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

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             rasterViewportWidth,
		Height:            rasterViewportWidth, // height is irrelevant for a full-page capture
		DeviceScaleFactor: rasterScale,
	}); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrScreenshot, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raster, err := page.Timeout(timeout).Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}

	return raster, nil
}
