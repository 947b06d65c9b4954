// Package audit runs the GEO/SEO readiness pipeline for a single site:
// fetch the page, extract on-page facts, check robots.txt and sitemap
// accessibility, and compute a deterministic 0-100 score.
package audit

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/d3ccy/seo-geo/internal/fetch"
)

// Length thresholds for the advisory title/description checks.
const (
	maxTitleLength       = 60
	maxDescriptionLength = 155
)

// Fetcher resolves a URL to content. Satisfied by *fetch.Client.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) *fetch.Result
}

// PageFacts is the structured fact set extracted from one fetched page.
// Built once per audit and never mutated.
type PageFacts struct {
	Title                string
	Description          string
	H1                   string
	HasOpenGraph         bool
	StructuredDataBlocks int
}

// RobotsFacts describes what the site's robots.txt reveals about AI crawlers.
type RobotsFacts struct {
	Exists        bool
	AllowedAIBots []string
}

// Result is the full audit outcome, flattened for report rendering and the
// JSON API. Score is always recomputable from the other fields.
type Result struct {
	URL         string `json:"url"`
	Stealth     bool   `json:"use_stealth"`
	PageBlocked bool   `json:"page_blocked"`
	BlockReason string `json:"block_reason,omitempty"`

	Title             string `json:"title"`
	TitleLength       int    `json:"title_length"`
	TitleOK           bool   `json:"title_ok"`
	Description       string `json:"description"`
	DescriptionLength int    `json:"description_length"`
	DescriptionOK     bool   `json:"description_ok"`
	HasOpenGraph      bool   `json:"og_tags"`
	H1                string `json:"h1"`
	JSONLDBlocks      int    `json:"jsonld_count"`

	LoadTimeSeconds *float64 `json:"load_time"`
	LoadTimeOK      bool     `json:"load_time_ok"`

	RobotsExists  bool     `json:"robots_exists"`
	AllowedAIBots []string `json:"ai_bots"`
	HasSitemap    bool     `json:"has_sitemap"`
	SitemapURL    string   `json:"sitemap_url,omitempty"`

	Score int `json:"score"`
}

// RunRequest is one audit invocation.
type RunRequest struct {
	URL string
	// Stealth routes the fetches through the browser-backed client, for
	// sites whose TLS fingerprinting defeats the plain HTTP chain.
	Stealth bool
}

// InvalidURLError reports an input the audit refuses to attempt. It is the
// only error Run returns; every network failure becomes a degraded Result.
type InvalidURLError struct {
	URL    string
	Reason string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid audit URL %q: %s", e.URL, e.Reason)
}

// Service orchestrates the audit pipeline.
type Service struct {
	fetcher Fetcher
	stealth Fetcher
}

// NewService builds a Service. stealth may be nil, in which case stealth
// requests fall back to the standard fetcher.
func NewService(fetcher, stealth Fetcher) *Service {
	if stealth == nil {
		stealth = fetcher
	}
	return &Service{fetcher: fetcher, stealth: stealth}
}

// NormalizeURL validates the scheme and defaults a schemeless input to
// https. http, https and no scheme are accepted; anything else is rejected
// before any network attempt.
func NormalizeURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", &InvalidURLError{URL: raw, Reason: "empty URL"}
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", &InvalidURLError{URL: raw, Reason: err.Error()}
	}
	if parsed.Scheme != "" && parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", &InvalidURLError{URL: raw, Reason: fmt.Sprintf("unsupported scheme %q, only http and https are allowed", parsed.Scheme)}
	}
	if !strings.HasPrefix(trimmed, "http") {
		trimmed = "https://" + trimmed
	}
	return trimmed, nil
}

// Run executes the full pipeline. A blocked or unreachable page yields a
// partial Result with PageBlocked set, never an error: robots.txt and
// sitemap checks run regardless because they often remain reachable when
// the HTML page is challenged, and they are independently valuable signals.
func (s *Service) Run(ctx context.Context, req RunRequest) (*Result, error) {
	normalized, err := NormalizeURL(req.URL)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(normalized)
	if err != nil || base.Host == "" {
		return nil, &InvalidURLError{URL: req.URL, Reason: "missing host"}
	}

	f := s.fetcher
	if req.Stealth {
		f = s.stealth
	}

	var (
		pageRes    *fetch.Result
		robots     RobotsFacts
		hasSitemap bool
		sitemapURL string
	)

	// The main-page fetch and the robots/sitemap pair share no state, so
	// they run concurrently. The sitemap check follows robots because a
	// Sitemap: directive names the authoritative location.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pageRes = f.Fetch(gctx, normalized)
		return nil
	})
	g.Go(func() error {
		var robotsBody string
		robotsURL := fmt.Sprintf("%s://%s/robots.txt", base.Scheme, base.Host)
		if res := f.Fetch(gctx, robotsURL); res.OK() {
			robotsBody = res.Content
			robots.Exists = true
			robots.AllowedAIBots = AllowedAIBots(robotsBody)
		}
		hasSitemap, sitemapURL = checkSitemap(gctx, f, base, robotsBody)
		return nil
	})
	_ = g.Wait()

	result := &Result{URL: normalized, Stealth: req.Stealth}

	var facts PageFacts
	if pageRes.OK() {
		facts = ExtractPageFacts(pageRes.Content)
		seconds := math.Round(pageRes.Elapsed.Seconds()*100) / 100
		result.LoadTimeSeconds = &seconds
	} else {
		result.PageBlocked = true
		result.BlockReason = pageRes.FailureReason
	}

	result.Title = facts.Title
	result.TitleLength = utf8.RuneCountInString(facts.Title)
	result.TitleOK = result.TitleLength > 0 && result.TitleLength <= maxTitleLength
	result.Description = facts.Description
	result.DescriptionLength = utf8.RuneCountInString(facts.Description)
	result.DescriptionOK = result.DescriptionLength > 0 && result.DescriptionLength <= maxDescriptionLength
	result.HasOpenGraph = facts.HasOpenGraph
	result.H1 = facts.H1
	result.JSONLDBlocks = facts.StructuredDataBlocks
	result.LoadTimeOK = result.LoadTimeSeconds != nil && *result.LoadTimeSeconds < 3.0

	result.RobotsExists = robots.Exists
	result.AllowedAIBots = robots.AllowedAIBots
	if result.AllowedAIBots == nil {
		result.AllowedAIBots = []string{}
	}
	result.HasSitemap = hasSitemap
	result.SitemapURL = sitemapURL

	result.Score = Score(facts, robots, hasSitemap, result.LoadTimeSeconds)
	return result, nil
}

// checkSitemap tries the robots-declared sitemap locations first, then the
// conventional /sitemap.xml, and returns the first URL whose body looks
// like a sitemap.
func checkSitemap(ctx context.Context, f Fetcher, base *url.URL, robotsBody string) (bool, string) {
	candidates := SitemapsFromRobots(robotsBody)
	candidates = append(candidates, fmt.Sprintf("%s://%s/sitemap.xml", base.Scheme, base.Host))
	for _, candidate := range candidates {
		if res := f.Fetch(ctx, candidate); res.OK() && LooksLikeSitemap(res.Content) {
			return true, candidate
		}
	}
	return false, ""
}
