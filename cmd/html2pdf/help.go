package main

import (
	"fmt"
	"io"
)

// printUsage writes command usage to the given writer.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `html2pdf - Convert HTML to PDF via headless Chrome

Usage:
  html2pdf convert <input.html|-> [input2.html ...] <output> [flags]
  html2pdf help
  html2pdf version

With a single input, <output> is the PDF file to write (or a directory).
With multiple inputs, <output> must be a directory; each PDF takes its
input's name. Use "-" to read HTML from standard input.

Flags:
  -c, --config string        config file name or path
  -p, --page-size string     page size: a4, letter, legal, a3
      --orientation string   page orientation: portrait, landscape
      --margin int           page margin in millimeters (0-50)
      --no-fonts             do not force document typography onto the content
      --no-code-blocks       do not append previews after HTML code blocks
      --raster               render through the bitmap-slicing path
      --base-url string      base URL for resolving relative references
  -t, --timeout string       PDF generation timeout (e.g., 30s, 2m)
  -w, --workers int          parallel workers for batch input (0 = auto)
  -q, --quiet                only show errors
  -v, --verbose              show detailed timing

Examples:
  html2pdf convert page.html page.pdf
  html2pdf convert page.html --page-size letter --margin 15 out.pdf
  cat page.html | html2pdf convert - out.pdf
  html2pdf convert a.html b.html c.html ./pdfs --workers 4

Exit codes:
  0  success
  1  unexpected failure
  2  bad arguments or settings
  3  input/output file problem
  4  browser failure

Environment:
  ROD_BROWSER_BIN  path to the Chrome/Chromium binary
  ROD_NO_SANDBOX   set to 1 to disable the Chrome sandbox (containers)
`)
}
