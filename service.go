package html2pdf

import (
	"context"
	"strings"
	"sync"
)

// Service orchestrates the HTML-to-PDF pipeline. One Service owns one
// headless browser; conversions on the same Service are serialized, so a
// second Convert call blocks until the first completes instead of racing
// it for the browser.
type Service struct {
	cfg       serviceConfig
	browser   *browserHandle
	extractor extractor
	renderer  renderer

	mu     sync.Mutex
	closed bool
}

// NewService creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithRasterMode).
// The browser is launched lazily on the first conversion.
func NewService(opts ...Option) *Service {
	s := &Service{
		cfg:     serviceConfig{timeout: defaultTimeout},
		browser: &browserHandle{},
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create collaborators if not injected (e.g., by tests)
	if s.extractor == nil {
		s.extractor = &rodExtractor{handle: s.browser, timeout: s.cfg.timeout}
	}
	if s.renderer == nil {
		if s.cfg.raster {
			s.renderer = newRasterRenderer(s.browser, s.cfg.timeout)
		} else {
			s.renderer = newPrintRenderer(s.browser, s.cfg.timeout)
		}
	}

	return s
}

// Convert runs the full pipeline and returns the PDF wrapped in a Result.
// The context is used for cancellation and timeout. Failures are tagged
// with the stage they occurred in and never retried; browser pages and
// temp files are released on every exit path.
func (s *Service) Convert(ctx context.Context, input Input) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	settings := DefaultSettings()
	if input.Settings != nil {
		settings = *input.Settings
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	// Extract
	htmlContent := input.HTML
	baseURL := input.BaseURL
	var err error
	switch {
	case input.URL != "" && input.Selector != "":
		htmlContent, err = s.extractor.extractSelection(ctx, input.URL, input.Selector)
	case input.URL != "":
		htmlContent, err = s.extractor.extractPage(ctx, input.URL)
	}
	if err != nil {
		return nil, wrapStage(StageExtract, err)
	}
	if input.URL != "" && baseURL == "" {
		baseURL = input.URL
	}

	// Resolve relative references, then preprocess into a complete document
	if baseURL != "" {
		htmlContent, err = AbsolutizeURLs(htmlContent, baseURL)
		if err != nil {
			return nil, wrapStage(StagePreprocess, err)
		}
	}
	processed := Preprocess(htmlContent, settings)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Render. The print path folds pagination into the browser; the raster
	// path slices and assembles, reporting those stages itself.
	pdfBytes, err := s.renderer.renderToPDF(ctx, processed, settings)
	if err != nil {
		return nil, wrapStage(StageRender, err)
	}

	return &Result{data: pdfBytes, filename: settings.Filename}, nil
}

// Close releases resources (headless Chrome browser). A closed Service
// rejects further conversions with ErrClosed.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.browser != nil {
		return s.browser.Close()
	}
	return nil
}

// ConvertHTMLToPDF converts raw HTML to a PDF written at outputPath, using
// a temporary Service, and returns the written path. It fails before any
// rendering resource is acquired when htmlContent or outputPath is empty.
//
// For repeated conversions create a Service (or a ServicePool) to reuse
// the browser instance.
func ConvertHTMLToPDF(ctx context.Context, htmlContent, outputPath string, settings *Settings) (string, error) {
	if strings.TrimSpace(htmlContent) == "" {
		return "", ErrEmptyHTML
	}
	if outputPath == "" {
		return "", ErrEmptyOutputPath
	}

	svc := NewService()
	defer svc.Close()

	result, err := svc.Convert(ctx, Input{HTML: htmlContent, Settings: settings})
	if err != nil {
		return "", err
	}

	if err := result.WriteToFile(outputPath, 0o644); err != nil {
		return "", err
	}
	return outputPath, nil
}
