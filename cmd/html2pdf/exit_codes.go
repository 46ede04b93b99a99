package main

import (
	"errors"
	"os"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess = 0 // conversion completed
	ExitGeneral = 1 // unexpected failure
	ExitUsage   = 2 // bad arguments, flags, or settings
	ExitIO      = 3 // input or output file problem
	ExitBrowser = 4 // browser launch or rendering failure
)

// exitCodeFor maps an error to its exit code. Unrecognized errors fall
// through to ExitGeneral.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, html2pdf.ErrBrowserConnect),
		errors.Is(err, html2pdf.ErrPageCreate),
		errors.Is(err, html2pdf.ErrPageLoad),
		errors.Is(err, html2pdf.ErrScreenshot),
		errors.Is(err, html2pdf.ErrPDFGeneration):
		return ExitBrowser

	case errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission),
		errors.Is(err, ErrReadInput),
		errors.Is(err, ErrWritePDF),
		errors.Is(err, html2pdf.ErrWritePDF):
		return ExitIO

	case errors.Is(err, ErrNoInput),
		errors.Is(err, ErrNoOutput),
		errors.Is(err, ErrStdinBatch),
		errors.Is(err, ErrOutputNotDir),
		errors.Is(err, ErrInvalidWorkerCount),
		errors.Is(err, ErrInvalidTimeout),
		errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrEmptyConfigName),
		errors.Is(err, config.ErrConfigParse),
		errors.Is(err, config.ErrConfigTooLarge),
		errors.Is(err, html2pdf.ErrEmptyHTML),
		errors.Is(err, html2pdf.ErrAmbiguousSource),
		errors.Is(err, html2pdf.ErrSelectorWithoutURL),
		errors.Is(err, html2pdf.ErrEmptyOutputPath),
		errors.Is(err, html2pdf.ErrInvalidPageSize),
		errors.Is(err, html2pdf.ErrInvalidOrientation),
		errors.Is(err, html2pdf.ErrInvalidMargin),
		errors.Is(err, html2pdf.ErrPageAccess):
		return ExitUsage

	default:
		return ExitGeneral
	}
}
