// Package render implements the optional headless-Chromium scrape
// fallback (SCRAPE_JS_RENDER=true) via go-rod.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
)

const navigateTimeout = 15 * time.Second

// RodRenderer renders a URL through a headless Chromium instance and
// returns the post-JavaScript DOM as HTML.
type RodRenderer struct {
	browser *rod.Browser
}

// NewRodRenderer launches (and connects) a browser instance. Callers own
// its lifetime and should call Close when the process shuts down.
func NewRodRenderer() *RodRenderer {
	browser := rod.New().MustConnect()
	return &RodRenderer{browser: browser}
}

// Close releases the underlying browser process.
func (r *RodRenderer) Close() error {
	return r.browser.Close()
}

// Render navigates to url, waits for the page to settle, and returns the
// rendered document's outer HTML.
func (r *RodRenderer) Render(ctx context.Context, url string) (string, error) {
	page, err := r.browser.Context(ctx).Page(rod.PageInfo{})
	if err != nil {
		return "", fmt.Errorf("rod: open page: %w", err)
	}
	defer page.Close()

	waitCtx, cancel := context.WithTimeout(ctx, navigateTimeout)
	defer cancel()
	page = page.Context(waitCtx)

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("rod: navigate: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("rod: wait load: %w", err)
	}
	if err := page.WaitStable(500 * time.Millisecond); err != nil {
		return "", fmt.Errorf("rod: wait stable: %w", err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("rod: read html: %w", err)
	}
	return html, nil
}
