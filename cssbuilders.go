package html2pdf

import (
	"fmt"
	"strings"
)

// Font stacks for the generated stylesheet.
const (
	serifFontStack   = `Georgia, 'Times New Roman', serif`
	systemSerifStack = `serif`
	monospaceStack   = `'Courier New', Courier, monospace`
	previewFontStack = `-apple-system, 'Segoe UI', sans-serif`
)

// buildBaseCSS generates the base typography rules: body margin from the
// configured page margin, 12pt base size, 1.4 line height.
func buildBaseCSS(marginMm float64) string {
	return fmt.Sprintf(`
body {
  margin: %.1fmm;
  font-size: 12pt;
  line-height: 1.4;
  color: #1a1a1a;
}
`, marginMm)
}

// buildFontCSS generates the typeface rules. When includeFonts is set the
// named serif family is forced onto body text and headings, and a monospace
// family onto code; otherwise the system serif fallback applies.
func buildFontCSS(includeFonts bool) string {
	if !includeFonts {
		return fmt.Sprintf(`
body {
  font-family: %s;
}
`, systemSerifStack)
	}

	return fmt.Sprintf(`
body, p, li, td, th, blockquote {
  font-family: %s !important;
}
h1, h2, h3, h4, h5, h6 {
  font-family: %s !important;
}
pre, code {
  font-family: %s !important;
}
`, serifFontStack, serifFontStack, monospaceStack)
}

// buildHeadingCSS generates the heading hierarchy: fixed sizes with a
// shared color and weight.
func buildHeadingCSS() string {
	return `
h1, h2, h3, h4, h5, h6 {
  color: #222222;
  font-weight: bold;
  line-height: 1.2;
}
h1 { font-size: 24pt; }
h2 { font-size: 20pt; }
h3 { font-size: 16pt; }
`
}

// buildTableCSS generates collapsed-border tables with padded cells and a
// shaded header row.
func buildTableCSS() string {
	return `
table {
  border-collapse: collapse;
  width: 100%;
}
th, td {
  border: 1px solid #999999;
  padding: 6px 8px;
  text-align: left;
}
th {
  background-color: #eeeeee;
  font-weight: bold;
}
`
}

// buildContentCSS generates rules for embedded content: responsive images,
// list indentation, blockquote citation styling.
func buildContentCSS() string {
	return `
img {
  max-width: 100%;
  height: auto;
}
ul, ol {
  padding-left: 2em;
}
blockquote {
  margin: 1em 0;
  padding-left: 1em;
  border-left: 4px solid #cccccc;
  color: #555555;
}
pre {
  background-color: #f5f5f5;
  padding: 0.75em;
  overflow-x: hidden;
  white-space: pre-wrap;
  word-wrap: break-word;
}
`
}

// buildPageBreakCSS generates the two page-break utility classes.
func buildPageBreakCSS() string {
	return `
.force-break-before {
  break-before: page;
  page-break-before: always;
}
.avoid-break-inside {
  break-inside: avoid;
  page-break-inside: avoid;
}
`
}

// buildPrintCSS generates the print-media block forcing exact color
// reproduction, so table shading and code backgrounds survive printing.
func buildPrintCSS() string {
	return `
@media print {
  * {
    -webkit-print-color-adjust: exact;
    print-color-adjust: exact;
  }
}
`
}

// buildDocumentCSS assembles the complete generated stylesheet for the
// given settings. The output lands in the single injected style block.
func buildDocumentCSS(s Settings) string {
	var b strings.Builder
	b.WriteString(buildBaseCSS(s.MarginMm))
	b.WriteString(buildFontCSS(s.IncludeFonts))
	b.WriteString(buildHeadingCSS())
	b.WriteString(buildTableCSS())
	b.WriteString(buildContentCSS())
	b.WriteString(buildPageBreakCSS())
	b.WriteString(buildPrintCSS())
	return b.String()
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
