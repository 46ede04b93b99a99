package html2pdf

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Page size constants.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
	PageSizeA3     = "a3"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in millimeters.
const (
	MinMarginMm     = 0.0
	MaxMarginMm     = 50.0
	DefaultMarginMm = 10.0
)

// DefaultFilename is the suggested download name when none is configured.
const DefaultFilename = "document.pdf"

// pageDims holds the physical dimensions of a page size in millimeters
// (portrait orientation).
type pageDims struct {
	widthMm  float64
	heightMm float64
}

var pageDimsBySize = map[string]pageDims{
	PageSizeA4:     {widthMm: 210, heightMm: 297},
	PageSizeLetter: {widthMm: 215.9, heightMm: 279.4},
	PageSizeLegal:  {widthMm: 215.9, heightMm: 355.6},
	PageSizeA3:     {widthMm: 297, heightMm: 420},
}

// Settings configures one conversion. The zero value is not valid; start
// from DefaultSettings and override fields as needed. Settings are passed
// by value into the pipeline and never mutated by it.
type Settings struct {
	PageSize         string  // "a4", "letter", "legal", "a3"
	Orientation      string  // "portrait", "landscape"
	MarginMm         float64 // applied to all four sides
	Filename         string  // suggested output name
	IncludeFonts     bool    // force the document typography onto the content
	RenderCodeBlocks bool    // append live previews after HTML code blocks
}

// DefaultSettings returns settings with default values: A4 portrait,
// 10 mm margins, fonts and code-block previews enabled.
func DefaultSettings() Settings {
	return Settings{
		PageSize:         PageSizeA4,
		Orientation:      OrientationPortrait,
		MarginMm:         DefaultMarginMm,
		Filename:         DefaultFilename,
		IncludeFonts:     true,
		RenderCodeBlocks: true,
	}
}

// Validate checks that settings are usable. Comparison is case-insensitive;
// Validate does not mutate.
func (s Settings) Validate() error {
	if _, ok := pageDimsBySize[strings.ToLower(s.PageSize)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, s.PageSize)
	}

	switch strings.ToLower(s.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, s.Orientation)
	}

	if s.MarginMm < MinMarginMm || s.MarginMm > MaxMarginMm {
		return fmt.Errorf("%w: %.1f mm (must be between %.0f and %.0f)", ErrInvalidMargin, s.MarginMm, MinMarginMm, MaxMarginMm)
	}

	return nil
}

// landscape reports whether the settings request landscape orientation.
func (s Settings) landscape() bool {
	return strings.EqualFold(s.Orientation, OrientationLandscape)
}

// pageDimensions returns the oriented page width and height in millimeters.
func (s Settings) pageDimensions() (widthMm, heightMm float64) {
	d := pageDimsBySize[strings.ToLower(s.PageSize)]
	if s.landscape() {
		return d.heightMm, d.widthMm
	}
	return d.widthMm, d.heightMm
}

// mmToInches converts millimeters to inches for Chrome's print API.
func mmToInches(mm float64) float64 {
	return mm / 25.4
}

// Input describes the source of one conversion. Exactly one of HTML or URL
// must be set. An Input is consumed once and never mutated.
type Input struct {
	// HTML is raw markup to convert. Partial documents are tolerated; the
	// preprocessor wraps them in a complete shell.
	HTML string

	// URL is the address of a live page to convert.
	URL string

	// Selector restricts a URL conversion to the first matching element.
	// It requires URL to be set.
	Selector string

	// BaseURL resolves relative resource references in HTML. For URL
	// sources it defaults to the page address.
	BaseURL string

	// Settings for this conversion. Nil means DefaultSettings.
	Settings *Settings
}

// validate checks source consistency before any browser resource is acquired.
func (in Input) validate() error {
	if in.URL == "" && strings.TrimSpace(in.HTML) == "" {
		return ErrEmptyHTML
	}
	if in.URL != "" && in.HTML != "" {
		return ErrAmbiguousSource
	}
	if in.Selector != "" && in.URL == "" {
		return ErrSelectorWithoutURL
	}
	if in.URL != "" {
		return checkPageURL(in.URL)
	}
	return nil
}

// checkPageURL rejects addresses the browser cannot convert: privileged
// schemes (chrome://, about:) and unparseable URLs. These are expected,
// user-correctable conditions.
func checkPageURL(pageURL string) error {
	u, err := url.Parse(pageURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageAccess, err)
	}
	switch u.Scheme {
	case "http", "https", "file":
		return nil
	}
	return fmt.Errorf("%w: privileged or unsupported scheme %q", ErrPageAccess, u.Scheme)
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
	raster  bool
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-conversion browser timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("html2pdf: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithRasterMode renders through the bitmap-slicing path: the page is
// captured as one tall screenshot, cut into page-sized bands, and each band
// embedded as an image. Output is not searchable text; the default print
// path has higher fidelity.
func WithRasterMode() Option {
	return func(s *Service) {
		s.cfg.raster = true
	}
}
