package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	return New(nil)
}

func bigPage(marker string) string {
	return fmt.Sprintf("<html><head><title>%s</title></head><body>%s</body></html>",
		marker, strings.Repeat("content ", 100))
}

func TestFetchUsableContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, bigPage("hello"))
	}))
	defer server.Close()

	res := testClient(t).Fetch(context.Background(), server.URL)

	require.True(t, res.OK())
	assert.Contains(t, res.Content, "<title>hello</title>")
	assert.Greater(t, res.Elapsed.Nanoseconds(), int64(0))
	assert.Empty(t, res.FailureReason)
}

func TestFetchFallbackOrdering(t *testing.T) {
	// Primary profile and the first two fallback identities get a soft 403;
	// the third fallback identity gets real content. Later identities must
	// never be attempted.
	var agents []string
	profiles := FallbackProfiles()
	winner := profiles[2].Headers["User-Agent"]

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := r.Header.Get("User-Agent")
		agents = append(agents, ua)
		if ua == winner {
			fmt.Fprint(w, bigPage("third-profile"))
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	res := testClient(t).Fetch(context.Background(), server.URL)

	require.True(t, res.OK())
	assert.Contains(t, res.Content, "third-profile")
	// primary + fallback 1 + fallback 2 + winning fallback 3
	require.Len(t, agents, 4)
	assert.Equal(t, winner, agents[3])
	for _, later := range profiles[3:] {
		assert.NotContains(t, agents, later.Headers["User-Agent"])
	}
}

func TestFetchChallengeNeverUsable(t *testing.T) {
	// Well above the usability length threshold, but carries a challenge
	// signature so it must be rejected everywhere.
	challenge := "<html><body>Just a moment..." + strings.Repeat(" checking your browser", 50) + "</body></html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, challenge)
	}))
	defer server.Close()

	res := testClient(t).Fetch(context.Background(), server.URL)

	require.False(t, res.OK())
	assert.Empty(t, res.Content)
	assert.Contains(t, strings.ToLower(res.FailureReason), "bot protection")
	assert.Contains(t, res.FailureReason, AuditBotUserAgent)
}

func TestFetchChallengeHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("cf-mitigated", "challenge")
		fmt.Fprint(w, bigPage("looks-normal"))
	}))
	defer server.Close()

	res := testClient(t).Fetch(context.Background(), server.URL)

	require.False(t, res.OK())
	assert.Contains(t, strings.ToLower(res.FailureReason), "bot protection")
}

func TestFetchHardStatusStopsProfileRotation(t *testing.T) {
	// 500 is not in the soft-retry set, so after the primary attempt only
	// one fallback identity should hit the server per URL candidate.
	var count int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	res := testClient(t).Fetch(context.Background(), server.URL)

	require.False(t, res.OK())
	// per reachable URL variant: primary attempt plus a single fallback
	assert.LessOrEqual(t, count, 4)
	assert.NotEmpty(t, res.FailureReason)
}

func TestFetchLargeErrorBodyAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, bigPage("served-with-403"))
	}))
	defer server.Close()

	res := testClient(t).Fetch(context.Background(), server.URL)

	require.True(t, res.OK())
	assert.Contains(t, res.Content, "served-with-403")
}

func TestFetchSmallErrorBodyRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "<html><body>not found</body></html>")
	}))
	defer server.Close()

	res := testClient(t).Fetch(context.Background(), server.URL)

	require.False(t, res.OK())
	assert.Contains(t, res.FailureReason, "Could not reach")
}

func TestFetchUnreachable(t *testing.T) {
	res := testClient(t).Fetch(context.Background(), "http://127.0.0.1:1")

	require.False(t, res.OK())
	assert.Contains(t, strings.ToLower(res.FailureReason), "could not reach")
	assert.Contains(t, res.FailureReason, AuditBotUserAgent)
}

func TestURLVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "bare host gains www variant",
			input: "https://example.com/page",
			want:  []string{"https://example.com/page", "https://www.example.com/page"},
		},
		{
			name:  "www host loses www variant",
			input: "https://www.example.com",
			want:  []string{"https://www.example.com", "https://example.com"},
		},
		{
			name:  "unparseable input stays alone",
			input: "://",
			want:  []string{"://"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, URLVariants(tt.input))
		})
	}
}

func TestIsChallengeSignatures(t *testing.T) {
	c := testClient(t)

	assert.True(t, c.isChallenge("checking... JUST A MOMENT please", nil))
	assert.True(t, c.isChallenge(`<script src="https://challenges.cloudflare.com/x.js">`, nil))
	assert.True(t, c.isChallenge("window._cf_chl_opt = {}", nil))
	assert.False(t, c.isChallenge("<html><body>a perfectly normal page</body></html>", nil))

	headers := http.Header{}
	headers.Set("Cf-Mitigated", "challenge")
	assert.True(t, c.isChallenge("normal body", headers))
}
