package audit

import (
	"fmt"
	"io"
	"strings"
)

// WriteReport renders the sectioned plain-text audit report.
func WriteReport(w io.Writer, r *Result) {
	fmt.Fprintf(w, "=== SEO Audit: %s ===\n\n", r.URL)

	if r.PageBlocked {
		fmt.Fprintf(w, "warning: %s\n\n", r.BlockReason)
	}

	fmt.Fprintln(w, "## Meta Tags")
	fmt.Fprintf(w, "title: %s\n", preview(r.Title, 60))
	fmt.Fprintf(w, "title_length: %d chars\n", r.TitleLength)
	fmt.Fprintf(w, "description: %s\n", preview(r.Description, 80))
	fmt.Fprintf(w, "description_length: %d chars\n", r.DescriptionLength)
	fmt.Fprintf(w, "og_tags: %s\n", yesNo(r.HasOpenGraph))
	fmt.Fprintf(w, "h1: %s\n\n", preview(r.H1, 100))

	fmt.Fprintln(w, "## Schema Markup")
	fmt.Fprintf(w, "json_ld_blocks: %d\n\n", r.JSONLDBlocks)

	fmt.Fprintln(w, "## Performance")
	if r.LoadTimeSeconds != nil {
		fmt.Fprintf(w, "load_time: %.2fs\n", *r.LoadTimeSeconds)
		status := "good"
		if !r.LoadTimeOK {
			status = "slow"
		}
		fmt.Fprintf(w, "status: %s\n\n", status)
	} else {
		fmt.Fprintf(w, "load_time: unknown\n\n")
	}

	fmt.Fprintln(w, "## robots.txt")
	fmt.Fprintf(w, "exists: %s\n", yesNo(r.RobotsExists))
	if len(r.AllowedAIBots) > 0 {
		fmt.Fprintf(w, "ai_bots_mentioned: %s\n\n", strings.Join(r.AllowedAIBots, ", "))
	} else {
		fmt.Fprintf(w, "ai_bots_mentioned: none\n\n")
	}

	fmt.Fprintln(w, "## Sitemap")
	fmt.Fprintf(w, "sitemap_xml: %s\n", yesNo(r.HasSitemap))
	if r.SitemapURL != "" {
		fmt.Fprintf(w, "sitemap_url: %s\n", r.SitemapURL)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Score")
	fmt.Fprintf(w, "geo_readiness: %d/100\n\n", r.Score)

	fmt.Fprintln(w, "=== Audit Complete ===")
}

func preview(s string, max int) string {
	if s == "" {
		return "MISSING"
	}
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
