package audit

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d3ccy/seo-geo/internal/fetch"
)

// stubFetcher serves canned results keyed by URL and records every call.
type stubFetcher struct {
	mu        sync.Mutex
	responses map[string]*fetch.Result
	calls     []string
}

func (s *stubFetcher) Fetch(_ context.Context, rawURL string) *fetch.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, rawURL)
	if res, ok := s.responses[rawURL]; ok {
		return res
	}
	return &fetch.Result{FailureReason: "stub: no response configured"}
}

func (s *stubFetcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

const samplePage = `<html><head>
	<title>Acme Widgets</title>
	<meta name="description" content="Widgets for every occasion">
	<meta property="og:title" content="Acme Widgets">
	<script type="application/ld+json">{}</script>
</head><body><h1>Widgets</h1></body></html>`

func TestRunFullAudit(t *testing.T) {
	stub := &stubFetcher{responses: map[string]*fetch.Result{
		"https://example.com": {Content: samplePage, Elapsed: 1200 * time.Millisecond},
		"https://example.com/robots.txt": {
			Content: "User-agent: GPTBot\nAllow: /\nSitemap: https://example.com/sitemap_index.xml\n",
		},
		"https://example.com/sitemap_index.xml": {Content: `<?xml version="1.0"?><sitemapindex/>`},
	}}
	svc := NewService(stub, nil)

	result, err := svc.Run(context.Background(), RunRequest{URL: "https://example.com"})

	require.NoError(t, err)
	assert.False(t, result.PageBlocked)
	assert.Equal(t, "Acme Widgets", result.Title)
	assert.True(t, result.TitleOK)
	assert.Equal(t, "Widgets for every occasion", result.Description)
	assert.True(t, result.DescriptionOK)
	assert.True(t, result.HasOpenGraph)
	assert.Equal(t, "Widgets", result.H1)
	assert.Equal(t, 1, result.JSONLDBlocks)
	require.NotNil(t, result.LoadTimeSeconds)
	assert.InDelta(t, 1.2, *result.LoadTimeSeconds, 0.001)
	assert.True(t, result.LoadTimeOK)
	assert.True(t, result.RobotsExists)
	assert.Equal(t, []string{"GPTBot"}, result.AllowedAIBots)
	assert.True(t, result.HasSitemap)
	assert.Equal(t, "https://example.com/sitemap_index.xml", result.SitemapURL)
	assert.Equal(t, 100, result.Score)
}

func TestRunBlockedPagePartialResult(t *testing.T) {
	stub := &stubFetcher{responses: map[string]*fetch.Result{
		"https://example.com/robots.txt":  {Content: "User-agent: ClaudeBot\nAllow: /\n"},
		"https://example.com/sitemap.xml": {Content: `<?xml version="1.0"?><urlset/>`},
	}}
	svc := NewService(stub, nil)

	result, err := svc.Run(context.Background(), RunRequest{URL: "https://example.com"})

	require.NoError(t, err)
	assert.True(t, result.PageBlocked)
	assert.NotEmpty(t, result.BlockReason)
	assert.Empty(t, result.Title)
	assert.Empty(t, result.Description)
	assert.Empty(t, result.H1)
	assert.False(t, result.HasOpenGraph)
	assert.Zero(t, result.JSONLDBlocks)
	assert.Nil(t, result.LoadTimeSeconds)
	assert.False(t, result.LoadTimeOK)
	assert.True(t, result.RobotsExists)
	assert.Equal(t, []string{"ClaudeBot"}, result.AllowedAIBots)
	assert.True(t, result.HasSitemap)
	// bots (15) + sitemap (10) are the only surviving signals
	assert.Equal(t, 25, result.Score)
}

func TestRunRejectsBadSchemeWithoutFetching(t *testing.T) {
	stub := &stubFetcher{}
	svc := NewService(stub, nil)

	for _, raw := range []string{"ftp://example.com", "file:///etc/passwd"} {
		result, err := svc.Run(context.Background(), RunRequest{URL: raw})

		require.Error(t, err)
		var invalid *InvalidURLError
		require.ErrorAs(t, err, &invalid)
		assert.Nil(t, result)
	}
	assert.Zero(t, stub.callCount())
}

func TestRunSchemelessDefaultsToHTTPS(t *testing.T) {
	stub := &stubFetcher{responses: map[string]*fetch.Result{
		"https://example.com": {Content: samplePage, Elapsed: time.Second},
	}}
	svc := NewService(stub, nil)

	result, err := svc.Run(context.Background(), RunRequest{URL: "example.com"})

	require.NoError(t, err)
	assert.Equal(t, "https://example.com", result.URL)
}

func TestRunStealthUsesStealthFetcher(t *testing.T) {
	standard := &stubFetcher{}
	stealth := &stubFetcher{responses: map[string]*fetch.Result{
		"https://example.com": {Content: samplePage, Elapsed: time.Second},
	}}
	svc := NewService(standard, stealth)

	result, err := svc.Run(context.Background(), RunRequest{URL: "https://example.com", Stealth: true})

	require.NoError(t, err)
	assert.True(t, result.Stealth)
	assert.Equal(t, "Acme Widgets", result.Title)
	assert.Zero(t, standard.callCount())
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"https kept", "https://example.com", "https://example.com", false},
		{"http kept", "http://example.com", "http://example.com", false},
		{"schemeless defaulted", "example.com/page", "https://example.com/page", false},
		{"ftp rejected", "ftp://example.com", "", true},
		{"file rejected", "file:///tmp/x", "", true},
		{"empty rejected", "   ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteReport(t *testing.T) {
	loadTime := 1.23
	result := &Result{
		URL:             "https://example.com",
		Title:           "Acme Widgets",
		TitleLength:     12,
		Description:     "Widgets for every occasion",
		HasOpenGraph:    true,
		H1:              "Widgets",
		JSONLDBlocks:    1,
		LoadTimeSeconds: &loadTime,
		LoadTimeOK:      true,
		RobotsExists:    true,
		AllowedAIBots:   []string{"GPTBot", "ClaudeBot"},
		HasSitemap:      true,
		SitemapURL:      "https://example.com/sitemap.xml",
		Score:           100,
	}

	var buf strings.Builder
	WriteReport(&buf, result)
	report := buf.String()

	assert.Contains(t, report, "=== SEO Audit: https://example.com ===")
	assert.Contains(t, report, "title: Acme Widgets")
	assert.Contains(t, report, "load_time: 1.23s")
	assert.Contains(t, report, "ai_bots_mentioned: GPTBot, ClaudeBot")
	assert.Contains(t, report, "geo_readiness: 100/100")
}
