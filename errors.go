package html2pdf

import "errors"

// Sentinel errors for library operations.
var (
	// Input errors: user-correctable, reported before any browser resource
	// is acquired.
	ErrEmptyHTML          = errors.New("html content cannot be empty")
	ErrEmptyOutputPath    = errors.New("output path cannot be empty")
	ErrAmbiguousSource    = errors.New("input must carry exactly one of HTML or URL")
	ErrSelectorWithoutURL = errors.New("selector requires a URL source")
	ErrSelectorNotFound   = errors.New("no element matches selector")

	// Settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Access errors: the source page cannot be converted (privileged
	// scheme, unreachable address).
	ErrPageAccess = errors.New("source page is not accessible")

	// Browser and rendering errors. Fatal to the current conversion only;
	// the service survives them.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrScreenshot     = errors.New("page screenshot failed")
	ErrEmptyRaster    = errors.New("raster image has no pixels")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Delivery errors.
	ErrWritePDF = errors.New("failed to write PDF file")

	// ErrClosed is returned when using a Service after Close.
	ErrClosed = errors.New("service is closed")
)

// Stage identifies the pipeline stage a conversion error occurred in.
type Stage string

// Pipeline stages, in execution order. A failed conversion reports the
// stage it failed in; no stage is retried.
const (
	StageExtract    Stage = "extract"
	StagePreprocess Stage = "preprocess"
	StageRender     Stage = "render"
	StagePaginate   Stage = "paginate"
	StageAssemble   Stage = "assemble"
	StageDeliver    Stage = "deliver"
)

// StageError tags an error with the pipeline stage that produced it.
// It unwraps to the underlying error, so errors.Is works against the
// sentinel errors above.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return string(e.Stage) + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// wrapStage tags err with the given stage. Errors already tagged keep
// their original stage: inner stages know best where they failed.
func wrapStage(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	var se *StageError
	if errors.As(err, &se) {
		return err
	}
	return &StageError{Stage: stage, Err: err}
}
