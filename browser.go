package html2pdf

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// browserHandle owns the headless Chrome instance shared by the extractor
// and the renderers of one Service. The browser is launched lazily on
// first use so that input validation never pays the startup cost.
type browserHandle struct {
	mu      sync.Mutex
	browser *rod.Browser
}

// ensure lazily launches and connects to the browser.
// Rod automatically downloads Chromium on first run if not found.
func (h *browserHandle) ensure() (*rod.Browser, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.browser != nil {
		return h.browser, nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	if noSandbox() {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	h.browser = browser
	return browser, nil
}

// noSandbox reports whether the Chrome sandbox should be disabled:
// explicitly via ROD_NO_SANDBOX=1, or implicitly for CI and containerized
// environments where the sandbox cannot run.
func noSandbox() bool {
	return os.Getenv("ROD_NO_SANDBOX") == "1" ||
		os.Getenv("CI") == "true" ||
		os.Getenv("ROD_BROWSER_BIN") != ""
}

// Close tears the browser process down. Safe to call twice.
func (h *browserHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.browser == nil {
		return nil
	}
	err := h.browser.Close()
	h.browser = nil
	return err
}

// openPage navigates a new page and waits for it to load. The caller owns
// the page and must Close it on every exit path.
func openPage(browser *rod.Browser, targetURL string, timeout time.Duration) (*rod.Page, error) {
	page, err := browser.Page(proto.TargetCreateTarget{URL: targetURL})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	return page, nil
}

// timeoutFor clamps the configured timeout to the context deadline.
func timeoutFor(ctx context.Context, configured time.Duration) (time.Duration, error) {
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, context.DeadlineExceeded
		}
		if remaining < configured {
			return remaining, nil
		}
	}
	return configured, nil
}

// extractor pulls HTML out of a live page.
type extractor interface {
	extractPage(ctx context.Context, pageURL string) (string, error)
	extractSelection(ctx context.Context, pageURL, selector string) (string, error)
}

// rodExtractor implements extractor on the shared browser.
type rodExtractor struct {
	handle  *browserHandle
	timeout time.Duration
}

// extractPage loads pageURL and returns the document's full markup.
func (e *rodExtractor) extractPage(ctx context.Context, pageURL string) (string, error) {
	page, err := e.open(ctx, pageURL)
	if err != nil {
		return "", err
	}
	defer page.Close()

	htmlContent, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageAccess, err)
	}
	return htmlContent, nil
}

// extractSelection loads pageURL and returns the outer HTML of the first
// element matching selector.
func (e *rodExtractor) extractSelection(ctx context.Context, pageURL, selector string) (string, error) {
	page, err := e.open(ctx, pageURL)
	if err != nil {
		return "", err
	}
	defer page.Close()

	el, err := page.Timeout(e.timeout).Element(selector)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrSelectorNotFound, selector)
	}

	htmlContent, err := el.HTML()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageAccess, err)
	}
	return htmlContent, nil
}

func (e *rodExtractor) open(ctx context.Context, pageURL string) (*rod.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := e.handle.ensure()
	if err != nil {
		return nil, err
	}

	timeout, err := timeoutFor(ctx, e.timeout)
	if err != nil {
		return nil, err
	}

	return openPage(browser, pageURL, timeout)
}
