package audit

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxH1Length caps the extracted first-heading text.
const maxH1Length = 100

// aiBotVocabulary is the fixed set of AI crawler names recognized in
// robots.txt bodies.
var aiBotVocabulary = []string{
	"GPTBot",
	"PerplexityBot",
	"ClaudeBot",
	"anthropic-ai",
	"ChatGPT-User",
}

// sitemapMarkers identify a body as sitemap XML.
var sitemapMarkers = []string{"<urlset", "<sitemapindex", "<?xml"}

// ExtractPageFacts parses HTML into the audit's fact set. Extraction is
// tolerant: malformed or empty input yields zero-value fields, never an
// error.
func ExtractPageFacts(html string) PageFacts {
	var facts PageFacts

	// Counted on the raw document rather than parsed script elements, as a
	// coarse proxy for JSON-LD block count.
	facts.StructuredDataBlocks = strings.Count(strings.ToLower(html), "application/ld+json")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return facts
	}

	facts.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		if name, ok := s.Attr("name"); ok && strings.EqualFold(name, "description") && facts.Description == "" {
			if content, ok := s.Attr("content"); ok {
				facts.Description = strings.TrimSpace(content)
			}
		}
		if prop, ok := s.Attr("property"); ok && strings.EqualFold(prop, "og:title") {
			facts.HasOpenGraph = true
		}
	})

	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		facts.H1 = truncateRunes(collapseWhitespace(h1.Text()), maxH1Length)
	}

	return facts
}

// AllowedAIBots returns the recognized AI crawler names mentioned anywhere
// in the robots.txt body. This is a deliberate substring check, not
// directive parsing: a bot named in a comment or a Disallow rule matches
// too. The imprecision is a known, accepted limitation.
func AllowedAIBots(robotsBody string) []string {
	lower := strings.ToLower(robotsBody)
	var bots []string
	for _, bot := range aiBotVocabulary {
		if strings.Contains(lower, strings.ToLower(bot)) {
			bots = append(bots, bot)
		}
	}
	return bots
}

// SitemapsFromRobots returns the sitemap URLs declared by Sitemap:
// directives, in order of appearance.
func SitemapsFromRobots(robotsBody string) []string {
	var urls []string
	for _, line := range strings.Split(robotsBody, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < len("sitemap:") || !strings.EqualFold(line[:len("sitemap:")], "sitemap:") {
			continue
		}
		if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// LooksLikeSitemap reports whether a body is sitemap XML.
func LooksLikeSitemap(body string) bool {
	lower := strings.ToLower(body)
	for _, marker := range sitemapMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
