package html2pdf

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// Mock implementations for testing.

type mockExtractor struct {
	pageCalled      bool
	selectionCalled bool
	pageURL         string
	selector        string
	output          string
	err             error
}

func (m *mockExtractor) extractPage(_ context.Context, pageURL string) (string, error) {
	m.pageCalled = true
	m.pageURL = pageURL
	if m.err != nil {
		return "", m.err
	}
	if m.output != "" {
		return m.output, nil
	}
	return "<p>extracted</p>", nil
}

func (m *mockExtractor) extractSelection(_ context.Context, pageURL, selector string) (string, error) {
	m.selectionCalled = true
	m.pageURL = pageURL
	m.selector = selector
	if m.err != nil {
		return "", m.err
	}
	if m.output != "" {
		return m.output, nil
	}
	return "<div>selected</div>", nil
}

type mockRenderer struct {
	called   bool
	input    string
	settings Settings
	output   []byte
	err      error
}

func (m *mockRenderer) renderToPDF(_ context.Context, htmlContent string, s Settings) ([]byte, error) {
	m.called = true
	m.input = htmlContent
	m.settings = s
	if m.err != nil {
		return nil, m.err
	}
	if m.output != nil {
		return m.output, nil
	}
	return []byte("%PDF-1.7 mock"), nil
}

// Test options for dependency injection (not exported).

func withExtractor(e extractor) Option {
	return func(s *Service) {
		s.extractor = e
	}
}

func withRenderer(r renderer) Option {
	return func(s *Service) {
		s.renderer = r
	}
}

func TestConvert_HTMLSource(t *testing.T) {
	rend := &mockRenderer{}
	svc := NewService(withExtractor(&mockExtractor{}), withRenderer(rend))
	defer svc.Close()

	result, err := svc.Convert(context.Background(), Input{HTML: "<p>hello</p>"})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	if !rend.called {
		t.Fatalf("renderer was not invoked")
	}
	if !strings.Contains(rend.input, styleMarker) {
		t.Errorf("renderer received unprocessed content (missing style block)")
	}
	if !strings.Contains(rend.input, "<p>hello</p>") {
		t.Errorf("renderer input lost the source content")
	}
	if result.Filename() != DefaultFilename {
		t.Errorf("Filename() = %q, want %q", result.Filename(), DefaultFilename)
	}
	if string(result.Bytes()) != "%PDF-1.7 mock" {
		t.Errorf("Bytes() = %q", result.Bytes())
	}
}

func TestConvert_URLSource(t *testing.T) {
	ext := &mockExtractor{output: `<p><img src="pic.png"></p>`}
	rend := &mockRenderer{}
	svc := NewService(withExtractor(ext), withRenderer(rend))
	defer svc.Close()

	_, err := svc.Convert(context.Background(), Input{URL: "https://example.com/docs/"})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	if !ext.pageCalled {
		t.Fatalf("extractPage was not invoked")
	}
	if ext.pageURL != "https://example.com/docs/" {
		t.Errorf("extractPage URL = %q", ext.pageURL)
	}
	// The page address doubles as the base URL when none is given.
	if !strings.Contains(rend.input, "https://example.com/docs/pic.png") {
		t.Errorf("relative reference not resolved against page URL: %q", rend.input)
	}
}

func TestConvert_SelectorSource(t *testing.T) {
	ext := &mockExtractor{}
	svc := NewService(withExtractor(ext), withRenderer(&mockRenderer{}))
	defer svc.Close()

	_, err := svc.Convert(context.Background(), Input{URL: "https://example.com", Selector: "#main"})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	if !ext.selectionCalled {
		t.Fatalf("extractSelection was not invoked")
	}
	if ext.selector != "#main" {
		t.Errorf("selector = %q, want %q", ext.selector, "#main")
	}
}

func TestConvert_InputErrors(t *testing.T) {
	svc := NewService(withExtractor(&mockExtractor{}), withRenderer(&mockRenderer{}))
	defer svc.Close()

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{name: "empty input", input: Input{}, wantErr: ErrEmptyHTML},
		{name: "both sources", input: Input{HTML: "x", URL: "https://e.com"}, wantErr: ErrAmbiguousSource},
		{name: "selector without url", input: Input{HTML: "x", Selector: "#a"}, wantErr: ErrSelectorWithoutURL},
		{name: "privileged scheme", input: Input{URL: "chrome://flags"}, wantErr: ErrPageAccess},
		{
			name:    "bad settings",
			input:   Input{HTML: "x", Settings: &Settings{PageSize: "huge", Orientation: "portrait"}},
			wantErr: ErrInvalidPageSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Convert(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConvert_StageTagging(t *testing.T) {
	tests := []struct {
		name      string
		extractor *mockExtractor
		renderer  *mockRenderer
		input     Input
		wantStage Stage
	}{
		{
			name:      "extract failure",
			extractor: &mockExtractor{err: ErrPageLoad},
			renderer:  &mockRenderer{},
			input:     Input{URL: "https://example.com"},
			wantStage: StageExtract,
		},
		{
			name:      "render failure",
			extractor: &mockExtractor{},
			renderer:  &mockRenderer{err: ErrPDFGeneration},
			input:     Input{HTML: "<p>x</p>"},
			wantStage: StageRender,
		},
		{
			name:      "inner stage preserved through render",
			extractor: &mockExtractor{},
			renderer:  &mockRenderer{err: wrapStage(StagePaginate, ErrEmptyRaster)},
			input:     Input{HTML: "<p>x</p>"},
			wantStage: StagePaginate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(withExtractor(tt.extractor), withRenderer(tt.renderer))
			defer svc.Close()

			_, err := svc.Convert(context.Background(), tt.input)
			var se *StageError
			if !errors.As(err, &se) {
				t.Fatalf("Convert() error = %v, want a StageError", err)
			}
			if se.Stage != tt.wantStage {
				t.Errorf("stage = %q, want %q", se.Stage, tt.wantStage)
			}
		})
	}
}

func TestConvert_AfterClose(t *testing.T) {
	svc := NewService(withExtractor(&mockExtractor{}), withRenderer(&mockRenderer{}))

	if err := svc.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("second Close() unexpected error: %v", err)
	}

	_, err := svc.Convert(context.Background(), Input{HTML: "<p>x</p>"})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Convert() after Close error = %v, want ErrClosed", err)
	}
}

func TestConvert_CanceledContext(t *testing.T) {
	svc := NewService(withExtractor(&mockExtractor{}), withRenderer(&mockRenderer{}))
	defer svc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Convert(ctx, Input{HTML: "<p>x</p>"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

func TestConvert_CustomSettingsReachRenderer(t *testing.T) {
	rend := &mockRenderer{}
	svc := NewService(withExtractor(&mockExtractor{}), withRenderer(rend))
	defer svc.Close()

	settings := DefaultSettings()
	settings.PageSize = PageSizeLetter
	settings.MarginMm = 20
	settings.Filename = "report.pdf"

	result, err := svc.Convert(context.Background(), Input{HTML: "<p>x</p>", Settings: &settings})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if rend.settings.PageSize != PageSizeLetter || rend.settings.MarginMm != 20 {
		t.Errorf("renderer settings = %+v, want letter / 20mm", rend.settings)
	}
	if result.Filename() != "report.pdf" {
		t.Errorf("Filename() = %q, want report.pdf", result.Filename())
	}
}

func TestConvertHTMLToPDF_ValidatesBeforeRendering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		html       string
		outputPath string
		wantErr    error
	}{
		{name: "empty html", html: "", outputPath: "out.pdf", wantErr: ErrEmptyHTML},
		{name: "whitespace html", html: "  \n ", outputPath: "out.pdf", wantErr: ErrEmptyHTML},
		{name: "empty output path", html: "<p>x</p>", outputPath: "", wantErr: ErrEmptyOutputPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvertHTMLToPDF(context.Background(), tt.html, tt.outputPath, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ConvertHTMLToPDF() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewService_RendererSelection(t *testing.T) {
	t.Parallel()

	svc := NewService()
	defer svc.Close()
	if _, ok := svc.renderer.(*printRenderer); !ok {
		t.Errorf("default renderer = %T, want *printRenderer", svc.renderer)
	}

	rasterSvc := NewService(WithRasterMode())
	defer rasterSvc.Close()
	if _, ok := rasterSvc.renderer.(*rasterRenderer); !ok {
		t.Errorf("raster renderer = %T, want *rasterRenderer", rasterSvc.renderer)
	}
}
