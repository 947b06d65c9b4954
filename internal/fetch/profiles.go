// Package fetch - profiles.go holds the fixed header profiles and challenge
// signatures used by the fallback fetch chain.
package fetch

// AuditBotUserAgent is the identity clients can allowlist in their WAF so the
// audit server can read their site without tripping bot protection.
const AuditBotUserAgent = "SEOGEOAuditBot/1.0 (+https://seo-geo.tools/audit-bot)"

// Profile is one browser-like request header set.
type Profile struct {
	Name    string
	Headers map[string]string
}

// PrimaryProfile returns the richest browser impersonation available without a
// real browser: current desktop Chrome with full client-hint headers.
func PrimaryProfile() Profile {
	return Profile{
		Name: "chrome-macos-primary",
		Headers: map[string]string{
			"User-Agent":                "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
			"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7",
			"Accept-Language":           "en-GB,en;q=0.9",
			"Cache-Control":             "max-age=0",
			"Upgrade-Insecure-Requests": "1",
			"Sec-Fetch-Dest":            "document",
			"Sec-Fetch-Mode":            "navigate",
			"Sec-Fetch-Site":            "none",
			"Sec-Fetch-User":            "?1",
			"Sec-Ch-Ua":                 `"Chromium";v="122", "Not(A:Brand";v="24", "Google Chrome";v="122"`,
			"Sec-Ch-Ua-Mobile":          "?0",
			"Sec-Ch-Ua-Platform":        `"macOS"`,
		},
	}
}

// FallbackProfiles returns the ordered header sets tried after the primary
// strategy fails. The first profile that yields usable content wins.
func FallbackProfiles() []Profile {
	return []Profile{
		{
			Name: "chrome-macos",
			Headers: map[string]string{
				"User-Agent":                "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
				"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
				"Accept-Language":           "en-GB,en;q=0.9",
				"Cache-Control":             "max-age=0",
				"Connection":                "keep-alive",
				"Upgrade-Insecure-Requests": "1",
				"Sec-Fetch-Dest":            "document",
				"Sec-Fetch-Mode":            "navigate",
				"Sec-Fetch-Site":            "none",
				"Sec-Fetch-User":            "?1",
			},
		},
		{
			Name: "firefox-windows",
			Headers: map[string]string{
				"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:124.0) Gecko/20100101 Firefox/124.0",
				"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
				"Accept-Language":           "en-GB,en;q=0.5",
				"Connection":                "keep-alive",
				"Upgrade-Insecure-Requests": "1",
				"Sec-Fetch-Dest":            "document",
				"Sec-Fetch-Mode":            "navigate",
				"Sec-Fetch-Site":            "none",
				"Sec-Fetch-User":            "?1",
			},
		},
		{
			Name: "chrome-windows",
			Headers: map[string]string{
				"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
				"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
				"Accept-Language":           "en-US,en;q=0.9",
				"Cache-Control":             "no-cache",
				"Pragma":                    "no-cache",
				"Connection":                "keep-alive",
				"Upgrade-Insecure-Requests": "1",
			},
		},
		{
			Name: "safari-macos",
			Headers: map[string]string{
				"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_4) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
				"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
				"Accept-Language": "en-GB,en;q=0.9",
				"Connection":      "keep-alive",
			},
		},
		{
			// Many sites explicitly allow Googlebot.
			Name: "googlebot",
			Headers: map[string]string{
				"User-Agent":      "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
				"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
				"Accept-Language": "en",
			},
		},
		{
			// Our own UA, for clients that have allowlisted the audit server.
			Name: "audit-bot",
			Headers: map[string]string{
				"User-Agent":      AuditBotUserAgent,
				"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
				"Accept-Language": "en-GB,en;q=0.9",
			},
		},
	}
}

// ChallengeSignatures returns the lowercase substrings that mark a fetched body
// as a bot-challenge interstitial rather than real page content.
func ChallengeSignatures() []string {
	return []string{
		"just a moment",
		"challenges.cloudflare.com",
		"cf_chl_opt",
	}
}
