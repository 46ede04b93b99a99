package html2pdf

import (
	"errors"
	"testing"
)

func TestSettingsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Settings)
		wantErr error
	}{
		{
			name:    "defaults are valid",
			modify:  func(*Settings) {},
			wantErr: nil,
		},
		{
			name:    "uppercase page size accepted",
			modify:  func(s *Settings) { s.PageSize = "Letter" },
			wantErr: nil,
		},
		{
			name:    "landscape accepted",
			modify:  func(s *Settings) { s.Orientation = "Landscape" },
			wantErr: nil,
		},
		{
			name:    "zero margin accepted",
			modify:  func(s *Settings) { s.MarginMm = 0 },
			wantErr: nil,
		},
		{
			name:    "max margin accepted",
			modify:  func(s *Settings) { s.MarginMm = MaxMarginMm },
			wantErr: nil,
		},
		{
			name:    "unknown page size",
			modify:  func(s *Settings) { s.PageSize = "tabloid" },
			wantErr: ErrInvalidPageSize,
		},
		{
			name:    "empty page size",
			modify:  func(s *Settings) { s.PageSize = "" },
			wantErr: ErrInvalidPageSize,
		},
		{
			name:    "unknown orientation",
			modify:  func(s *Settings) { s.Orientation = "sideways" },
			wantErr: ErrInvalidOrientation,
		},
		{
			name:    "negative margin",
			modify:  func(s *Settings) { s.MarginMm = -1 },
			wantErr: ErrInvalidMargin,
		},
		{
			name:    "margin above bound",
			modify:  func(s *Settings) { s.MarginMm = 51 },
			wantErr: ErrInvalidMargin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			err := s.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPageDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		pageSize    string
		orientation string
		wantW       float64
		wantH       float64
	}{
		{name: "a4 portrait", pageSize: PageSizeA4, orientation: OrientationPortrait, wantW: 210, wantH: 297},
		{name: "a4 landscape", pageSize: PageSizeA4, orientation: OrientationLandscape, wantW: 297, wantH: 210},
		{name: "letter portrait", pageSize: PageSizeLetter, orientation: OrientationPortrait, wantW: 215.9, wantH: 279.4},
		{name: "legal portrait", pageSize: PageSizeLegal, orientation: OrientationPortrait, wantW: 215.9, wantH: 355.6},
		{name: "a3 landscape", pageSize: PageSizeA3, orientation: OrientationLandscape, wantW: 420, wantH: 297},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Settings{PageSize: tt.pageSize, Orientation: tt.orientation}
			w, h := s.pageDimensions()
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("pageDimensions() = %.1fx%.1f, want %.1fx%.1f", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestInputValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{
			name:    "html source",
			input:   Input{HTML: "<p>hi</p>"},
			wantErr: nil,
		},
		{
			name:    "url source",
			input:   Input{URL: "https://example.com"},
			wantErr: nil,
		},
		{
			name:    "file url source",
			input:   Input{URL: "file:///tmp/page.html"},
			wantErr: nil,
		},
		{
			name:    "url with selector",
			input:   Input{URL: "https://example.com", Selector: "#main"},
			wantErr: nil,
		},
		{
			name:    "no source",
			input:   Input{},
			wantErr: ErrEmptyHTML,
		},
		{
			name:    "whitespace only html",
			input:   Input{HTML: "   \n\t"},
			wantErr: ErrEmptyHTML,
		},
		{
			name:    "both sources",
			input:   Input{HTML: "<p>x</p>", URL: "https://example.com"},
			wantErr: ErrAmbiguousSource,
		},
		{
			name:    "selector without url",
			input:   Input{HTML: "<p>x</p>", Selector: "#main"},
			wantErr: ErrSelectorWithoutURL,
		},
		{
			name:    "privileged scheme",
			input:   Input{URL: "chrome://settings"},
			wantErr: ErrPageAccess,
		},
		{
			name:    "about scheme",
			input:   Input{URL: "about:blank"},
			wantErr: ErrPageAccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Errorf("WithTimeout(0) did not panic")
		}
	}()
	WithTimeout(0)
}

func TestMmToInches(t *testing.T) {
	t.Parallel()

	if got := mmToInches(25.4); got != 1.0 {
		t.Errorf("mmToInches(25.4) = %v, want 1.0", got)
	}
}
