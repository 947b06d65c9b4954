// Package fetch - browser.go provides the opt-in headless-browser strategy
// for sites whose protection defeats the plain HTTP chain.
package fetch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// browserAttempt renders the URL in headless Chrome and classifies the result
// the same way as an HTTP attempt. A real browser passes JavaScript-based
// challenges the header profiles cannot. Requires Chrome/Chromium on the host.
func (c *Client) browserAttempt(ctx context.Context, rawURL string) attempt {
	start := time.Now()
	html, err := renderWithBrowser(ctx, rawURL, c.opts.Timeout, c.opts.Verbose)
	if err != nil {
		return attempt{outcome: outcomeTransport, detail: fmt.Sprintf("browser render failed: %v", err)}
	}
	elapsed := time.Since(start)

	if c.isChallenge(html, nil) {
		return attempt{outcome: outcomeChallenge, detail: "bot challenge (browser)"}
	}
	if len(html) > minUsableLength {
		return attempt{outcome: outcomeUsable, content: html, elapsed: elapsed}
	}
	return attempt{outcome: outcomeThin, detail: "body too short (browser)"}
}

// renderWithBrowser navigates to the URL in headless Chrome, waits for the
// page to settle, and returns the rendered HTML.
func renderWithBrowser(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error) {
	if verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", url)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Challenge pages and SPAs need a moment to settle after load
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	if verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
	}
	return html, nil
}
