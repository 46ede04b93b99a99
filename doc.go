// Package html2pdf converts HTML content to paginated PDF documents using
// headless Chrome.
//
// # Quick Start
//
// Create a service, convert HTML, and close when done:
//
//	svc := html2pdf.NewService()
//	defer svc.Close()
//
//	result, err := svc.Convert(ctx, html2pdf.Input{
//	    HTML: "<h1>Hello</h1><p>World</p>",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result.WriteToFile("output.pdf", 0o644)
//
// For one-off conversions there is a package-level helper:
//
//	path, err := html2pdf.ConvertHTMLToPDF(ctx, htmlContent, "output.pdf", nil)
//
// # Conversion Pipeline
//
// Every conversion runs the same stages:
//
//  1. Extraction: raw HTML is used as-is; for a URL source the page (or a
//     selected element) is loaded in the browser and its markup extracted.
//  2. URL resolution: relative src/href and CSS url() references are
//     rewritten against the source page's address.
//  3. Preprocessing: the markup is wrapped in a complete document shell and
//     a single generated stylesheet is injected.
//  4. Rendering: the processed document is printed to PDF by headless
//     Chrome, or (in raster mode) captured as one tall bitmap, sliced into
//     page-sized bands, and assembled into a PDF.
//
// # Sources
//
// Input accepts exactly one source:
//
//	html2pdf.Input{HTML: markup}                                // raw markup
//	html2pdf.Input{URL: "https://example.com"}                  // whole page
//	html2pdf.Input{URL: "https://example.com", Selector: "main"} // selection
//
// # Configuration
//
// Page geometry and preprocessing behavior live in Settings:
//
//	s := html2pdf.DefaultSettings() // A4, portrait, 10 mm margins
//	s.PageSize = html2pdf.PageSizeLetter
//	s.Orientation = html2pdf.OrientationLandscape
//	result, err := svc.Convert(ctx, html2pdf.Input{HTML: markup, Settings: &s})
//
// Service behavior uses functional options:
//
//	svc := html2pdf.NewService(
//	    html2pdf.WithTimeout(2 * time.Minute),
//	    html2pdf.WithRasterMode(),
//	)
//
// # Parallel Processing
//
// A Service serializes its conversions; one Service owns one browser. For
// batch work use ServicePool to run several browsers side by side:
//
//	pool := html2pdf.NewServicePool(4)
//	defer pool.Close()
//
//	svc := pool.Acquire()
//	defer pool.Release(svc)
//	result, err := svc.Convert(ctx, input)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package html2pdf
