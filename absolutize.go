package html2pdf

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AbsolutizeURLs rewrites relative resource references in htmlContent to
// absolute form against baseURL. If baseURL is empty, the content is
// returned unchanged.
//
// Rewrites:
//   - src and href attributes on any element that carries them
//   - background-image: url(...) in inline style attributes
//
// Does NOT rewrite: absolute URLs, data URIs, fragment anchors, and
// protocol-relative references (already resolvable by the browser).
func AbsolutizeURLs(htmlContent, baseURL string) (string, error) {
	if baseURL == "" {
		return htmlContent, nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL %q: %w", baseURL, err)
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	absolutizeNode(doc, base)

	return renderParsedHTML(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	// Full document: starts with <!DOCTYPE or <html
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	// Wrap nodes in a container for uniform traversal
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, true, nil
}

// renderParsedHTML renders the document back to string. For fragments only
// the children are rendered, avoiding an added <html><body> wrapper.
func renderParsedHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// absolutizeNode traverses the DOM and resolves relative references
// in-place. Elements without such attributes are untouched.
func absolutizeNode(n *html.Node, base *url.URL) {
	if n.Type == html.ElementNode {
		for i, attr := range n.Attr {
			switch attr.Key {
			case "src", "href":
				n.Attr[i].Val = resolveRef(attr.Val, base)
			case "style":
				n.Attr[i].Val = resolveStyleURLs(attr.Val, base)
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		absolutizeNode(c, base)
	}
}

// needsResolution reports whether ref is a relative reference worth
// resolving.
func needsResolution(ref string) bool {
	if ref == "" ||
		strings.HasPrefix(ref, "#") ||
		strings.HasPrefix(ref, "data:") ||
		strings.HasPrefix(ref, "//") {
		return false
	}

	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return !u.IsAbs()
}

// resolveRef resolves a single reference against the base URL using
// standard base + relative combination rules. Unresolvable references are
// returned unchanged rather than failing the conversion.
func resolveRef(ref string, base *url.URL) string {
	if !needsResolution(ref) {
		return ref
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(rel).String()
}

// cssURLPattern matches url(...) values in inline CSS.
var cssURLPattern = regexp.MustCompile(`url\(\s*['"]?([^'")]+?)['"]?\s*\)`)

// resolveStyleURLs rewrites url(...) references inside an inline style
// attribute.
func resolveStyleURLs(style string, base *url.URL) string {
	return cssURLPattern.ReplaceAllStringFunc(style, func(m string) string {
		sub := cssURLPattern.FindStringSubmatch(m)
		ref := strings.TrimSpace(sub[1])
		resolved := resolveRef(ref, base)
		if resolved == ref {
			return m
		}
		return "url('" + resolved + "')"
	})
}
