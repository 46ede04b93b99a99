package html2pdf

import (
	"html"
	"regexp"
	"strings"
)

// styleMarker identifies the generated style block. Reprocessing already
// processed output finds the marker and skips injection, keeping exactly
// one generated block per document.
const styleMarker = `id="html2pdf-style"`

// previewMarker identifies an appended code preview so reprocessing does
// not stack a second preview behind the same code block.
const previewMarker = `class="html2pdf-code-preview"`

// Preprocess turns arbitrary HTML into a complete, self-contained document
// ready for rendering. It is a total function: malformed or partial input
// is wrapped, never rejected.
//
// Steps, in order: wrapper-div centering fix, document shell detection and
// style injection, code-block preview rendering (when enabled).
func Preprocess(htmlContent string, s Settings) string {
	out := fixWrapperDiv(htmlContent)
	out = ensureDocumentShell(out, s)
	if s.RenderCodeBlocks {
		out = renderCodeBlocks(out)
	}
	return out
}

// wrapperPattern matches a styleless container div whose only meaningful
// child is a div carrying a horizontal-auto-margin centering style: any of
// "margin: auto", "margin: 0 auto", or "margin-left/right: auto".
// Group 1 captures the container's attributes, group 2 the child element.
var wrapperPattern = regexp.MustCompile(`(?is)<div((?:\s+[a-z][a-z0-9-]*="[^"]*")*)\s*>\s*(<div\b[^>]*\bstyle="[^"]*margin(?:-left|-right)?:\s*[^";]*\bauto\b[^"]*"[^>]*>.*?</div>)\s*</div>`)

// fixWrapperDiv unwraps the double-div pattern that breaks auto-margin
// centering: a container with no style of its own holding a single
// auto-margin child is replaced by the child, styling preserved verbatim.
// Containers carrying their own style attribute are left alone.
//
// This is a deliberate heuristic. Legitimate nested auto-margin layouts can
// over-match; see the package tests for the documented limitation.
func fixWrapperDiv(content string) string {
	return wrapperPattern.ReplaceAllStringFunc(content, func(m string) string {
		sub := wrapperPattern.FindStringSubmatch(m)
		if strings.Contains(strings.ToLower(sub[1]), "style=") {
			return m
		}
		return sub[2]
	})
}

// Shell detection patterns: opening tags, case-insensitive, attribute-tolerant.
var (
	htmlOpenPattern = regexp.MustCompile(`(?i)<html[\s>]`)
	headOpenPattern = regexp.MustCompile(`(?i)<head[\s>]`)
	bodyOpenPattern = regexp.MustCompile(`(?i)<body[\s>]`)
)

// hasDocumentShell reports whether content already carries <html>, <head>,
// and <body> tags.
func hasDocumentShell(content string) bool {
	return htmlOpenPattern.MatchString(content) &&
		headOpenPattern.MatchString(content) &&
		bodyOpenPattern.MatchString(content)
}

// ensureDocumentShell guarantees a complete document around the content
// with the generated stylesheet spliced into <head>. Complete documents
// get the style block inserted before </head>; fragments are wrapped in a
// fixed shell with the input verbatim as body content.
func ensureDocumentShell(content string, s Settings) string {
	if strings.Contains(content, styleMarker) {
		// Already processed; the single generated block stays as-is.
		return content
	}

	styleBlock := `<style id="html2pdf-style">` + sanitizeCSS(buildDocumentCSS(s)) + `</style>`

	if hasDocumentShell(content) {
		return spliceIntoHead(content, styleBlock)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	b.WriteString("<title>Document</title>\n")
	b.WriteString(styleBlock)
	b.WriteString("\n</head>\n<body>\n")
	b.WriteString(content)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

// spliceIntoHead inserts the style block into an existing document.
// Tries </head> first, then after <body>, then prepends.
func spliceIntoHead(content, styleBlock string) string {
	lower := strings.ToLower(content)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return content[:idx] + styleBlock + content[idx:]
	}

	if idx := strings.Index(lower, "<body"); idx != -1 {
		closeIdx := strings.Index(content[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return content[:insertPos] + styleBlock + content[insertPos:]
		}
	}

	return styleBlock + content
}

// codeBlockPattern matches <pre><code>...</code></pre> spans.
// Group 1 captures the escaped code text.
var codeBlockPattern = regexp.MustCompile(`(?is)<pre[^>]*>\s*<code[^>]*>(.*?)</code>\s*</pre>`)

// renderCodeBlocks appends a live preview after each code block whose text
// contains embedded markup. The original block is left untouched; the
// preview is strictly additive. Blocks without markup are not modified.
func renderCodeBlocks(content string) string {
	matches := codeBlockPattern.FindAllStringSubmatchIndex(content, -1)
	if matches == nil {
		return content
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(content[last:m[1]])
		last = m[1]

		// Skip blocks that already have a preview right behind them.
		rest := strings.TrimLeft(content[m[1]:], " \t\r\n")
		if strings.HasPrefix(rest, "<div "+previewMarker) {
			continue
		}

		code := html.UnescapeString(content[m[2]:m[3]])
		if !looksLikeMarkup(code) {
			continue
		}
		b.WriteString(buildCodePreview(code))
	}
	b.WriteString(content[last:])
	return b.String()
}

// looksLikeMarkup reports whether text appears to contain embedded HTML
// markup: an opening angle bracket with a closing one somewhere after it.
// A sniff, not a parse; false positives render harmlessly as a preview of
// plain text.
func looksLikeMarkup(text string) bool {
	lt := strings.IndexByte(text, '<')
	return lt != -1 && strings.IndexByte(text[lt:], '>') != -1
}

// buildCodePreview wraps the re-interpreted markup in a visually distinct
// labeled box.
func buildCodePreview(code string) string {
	var b strings.Builder
	b.WriteString(`<div ` + previewMarker + ` style="border: 1px solid #cccccc; border-radius: 4px; margin: 0.5em 0 1em; overflow: hidden;">`)
	b.WriteString(`<div style="background-color: #f0f0f0; padding: 4px 10px; font-size: 9pt; font-family: ` + previewFontStack + `; color: #666666; border-bottom: 1px solid #cccccc;">Rendered HTML Preview</div>`)
	b.WriteString(`<div style="padding: 10px;">`)
	b.WriteString(code)
	b.WriteString(`</div></div>`)
	return b.String()
}
