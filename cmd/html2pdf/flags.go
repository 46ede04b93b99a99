package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// marginUnset detects whether --margin was explicitly set.
// Since 0 is a valid margin, an out-of-range sentinel is used.
const marginUnset = -1

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	config       string
	pageSize     string
	orientation  string
	margin       int
	noFonts      bool
	noCodeBlocks bool
	raster       bool
	baseURL      string
	timeout      string
	workers      int
	quiet        bool
	verbose      bool
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size: a4, letter, legal, a3")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.IntVar(&f.margin, "margin", marginUnset, "page margin in millimeters (0-50)")
	fs.BoolVar(&f.noFonts, "no-fonts", false, "do not force document typography onto the content")
	fs.BoolVar(&f.noCodeBlocks, "no-code-blocks", false, "do not append previews after HTML code blocks")
	fs.BoolVar(&f.raster, "raster", false, "render through the bitmap-slicing path")
	fs.StringVar(&f.baseURL, "base-url", "", "base URL for resolving relative references")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for batch input (0 = auto)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
