// Package fetch resolves a site URL to raw page content, working around
// bot-protection interstitials with a layered retry strategy: a full
// browser-like header profile first, then an ordered list of alternate
// identities, tried against both the www and non-www form of the host.
package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is the per-attempt HTTP timeout.
const DefaultTimeout = 30 * time.Second

const (
	// minUsableLength is the smallest body accepted as real page content.
	minUsableLength = 200
	// minErrorBodyLength is the threshold above which a body served with an
	// error status is still accepted (some sites return real content with 403).
	minErrorBodyLength = 500
)

// softRetryStatuses are HTTP statuses worth retrying with a different
// identity; anything else in the error range is terminal for that URL.
var softRetryStatuses = map[int]bool{
	http.StatusForbidden:          true,
	http.StatusNotAcceptable:      true,
	http.StatusTooManyRequests:    true,
	http.StatusServiceUnavailable: true,
}

// Result is the outcome of a fetch. Exactly one of Content or FailureReason
// is set: Content when some strategy produced usable page content,
// FailureReason when every strategy was exhausted.
type Result struct {
	Content       string
	Headers       http.Header
	Elapsed       time.Duration
	FailureReason string
}

// OK reports whether the fetch produced usable content.
func (r *Result) OK() bool {
	return r.FailureReason == ""
}

// Options configures a Client.
type Options struct {
	Timeout    time.Duration
	Profiles   []Profile
	Signatures []string
	// UseBrowser renders each candidate URL in headless Chrome before the
	// plain HTTP chain. Off by default; the HTTP chain alone handles the
	// common cases without a browser dependency.
	UseBrowser bool
	Verbose    bool
}

// DefaultOptions returns the standard fallback configuration.
func DefaultOptions() *Options {
	return &Options{
		Timeout:    DefaultTimeout,
		Profiles:   FallbackProfiles(),
		Signatures: ChallengeSignatures(),
	}
}

// Client fetches pages with the layered fallback strategy. Safe for
// concurrent use.
type Client struct {
	http    *http.Client
	primary Profile
	opts    Options
}

// New builds a Client. TLS verification is disabled deliberately: audited
// sites are third parties and often have broken certificate chains, and the
// audit reads public pages only.
func New(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Profiles == nil {
		opts.Profiles = FallbackProfiles()
	}
	if opts.Signatures == nil {
		opts.Signatures = ChallengeSignatures()
	}

	transport := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		TLSClientConfig:   &tls.Config{InsecureSkipVerify: true},
		ForceAttemptHTTP2: true,
	}

	return &Client{
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		primary: PrimaryProfile(),
		opts:    *opts,
	}
}

// Each network attempt resolves to exactly one outcome instead of an error,
// so the fallback loop inspects a variant rather than catching and retrying.
type outcome int

const (
	outcomeUsable outcome = iota
	outcomeChallenge
	outcomeThin       // fetched fine but body too short to be a real page
	outcomeSoftStatus // retryable HTTP error, rotate to the next profile
	outcomeHardStatus // terminal HTTP error for this URL candidate
	outcomeTransport  // DNS, connection, TLS or timeout failure
)

type attempt struct {
	outcome outcome
	content string
	headers http.Header
	elapsed time.Duration
	detail  string
}

// Fetch tries every strategy in order and returns the first usable content.
// It never returns an error for network or HTTP failures; those are folded
// into the Result's FailureReason.
func (c *Client) Fetch(ctx context.Context, rawURL string) *Result {
	var (
		challenged bool
		lastErr    = "no response"
	)

	for _, candidate := range URLVariants(rawURL) {
		if c.opts.UseBrowser {
			att := c.browserAttempt(ctx, candidate)
			switch att.outcome {
			case outcomeUsable:
				return att.result()
			case outcomeChallenge:
				challenged = true
			default:
				lastErr = att.detail
			}
		}

		att := c.do(ctx, candidate, c.primary)
		switch att.outcome {
		case outcomeUsable:
			return att.result()
		case outcomeChallenge:
			challenged = true
		case outcomeThin:
		default:
			lastErr = att.detail
		}

	profiles:
		for _, p := range c.opts.Profiles {
			att := c.do(ctx, candidate, p)
			switch att.outcome {
			case outcomeUsable:
				return att.result()
			case outcomeChallenge:
				challenged = true
			case outcomeSoftStatus:
				lastErr = att.detail
			case outcomeThin:
				// keep rotating, another identity may get the full page
			case outcomeHardStatus, outcomeTransport:
				// no point hammering this URL with more identities
				lastErr = att.detail
				break profiles
			}
		}
	}

	return failureResult(challenged, lastErr)
}

func (a attempt) result() *Result {
	return &Result{
		Content: a.content,
		Headers: a.headers,
		Elapsed: a.elapsed,
	}
}

// do performs one HTTP attempt with the given profile and classifies the
// response.
func (c *Client) do(ctx context.Context, rawURL string, p Profile) attempt {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return attempt{outcome: outcomeTransport, detail: fmt.Sprintf("invalid request: %v", err)}
	}
	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return attempt{outcome: outcomeTransport, detail: fmt.Sprintf("connection failed (%s): %v", p.Name, err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return attempt{outcome: outcomeTransport, detail: fmt.Sprintf("read failed (%s): %v", p.Name, err)}
	}
	elapsed := time.Since(start)
	content := string(body)

	if c.isChallenge(content, resp.Header) {
		return attempt{outcome: outcomeChallenge, detail: fmt.Sprintf("bot challenge (%s)", p.Name)}
	}

	if resp.StatusCode >= 400 {
		if len(content) > minErrorBodyLength {
			// real content served alongside an error status
			return attempt{outcome: outcomeUsable, content: content, headers: resp.Header, elapsed: elapsed}
		}
		detail := fmt.Sprintf("HTTP %d (%s)", resp.StatusCode, p.Name)
		if softRetryStatuses[resp.StatusCode] {
			return attempt{outcome: outcomeSoftStatus, detail: detail}
		}
		return attempt{outcome: outcomeHardStatus, detail: detail}
	}

	if len(content) > minUsableLength {
		return attempt{outcome: outcomeUsable, content: content, headers: resp.Header, elapsed: elapsed}
	}
	return attempt{outcome: outcomeThin, detail: fmt.Sprintf("body too short (%s)", p.Name)}
}

// isChallenge classifies content as a bot-challenge interstitial.
func (c *Client) isChallenge(content string, headers http.Header) bool {
	lower := strings.ToLower(content)
	for _, sig := range c.opts.Signatures {
		if strings.Contains(lower, sig) {
			return true
		}
	}
	if headers != nil && strings.EqualFold(headers.Get("cf-mitigated"), "challenge") {
		return true
	}
	return false
}

func failureResult(challenged bool, lastErr string) *Result {
	if challenged {
		return &Result{
			FailureReason: fmt.Sprintf(
				"Bot protection is blocking access to this site. Ask the site owner to allowlist the %q user agent in their firewall, or temporarily lower bot protection while the audit runs.",
				AuditBotUserAgent),
		}
	}
	return &Result{
		FailureReason: fmt.Sprintf(
			"Could not reach this site (last error: %s). The site's firewall is likely blocking the audit server; allowlisting the %q user agent usually resolves this.",
			lastErr, AuditBotUserAgent),
	}
}

// URLVariants returns the candidate URLs to try in order: the input itself,
// then its www/non-www counterpart. Both forms usually serve the same site;
// trying the pair covers hosts that only respond on one of them.
func URLVariants(rawURL string) []string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return []string{rawURL}
	}
	alt := *parsed
	if strings.HasPrefix(parsed.Host, "www.") {
		alt.Host = strings.TrimPrefix(parsed.Host, "www.")
	} else {
		alt.Host = "www." + parsed.Host
	}
	return []string{rawURL, alt.String()}
}
