package audit

// Point weights for the readiness score. Summed independently, no
// normalization; all signals present total exactly 100.
const (
	pointsTitle          = 15
	pointsDescription    = 10
	pointsOpenGraph      = 5
	pointsH1             = 10
	pointsStructuredData = 20
	pointsAIBots         = 15
	pointsSitemap        = 10
	pointsLoadTime       = 15

	// fastLoadThreshold is the strict upper bound, in seconds, for load-time
	// points. Exactly 3.0 earns nothing.
	fastLoadThreshold = 3.0
)

// Score computes the 0-100 GEO readiness score. It is a pure function of
// its arguments: a blocked page contributes nothing only because its facts
// are empty by construction, never via a special case here. A nil loadTime
// (unknown or failed fetch) earns no load-time points, same as a slow one.
func Score(page PageFacts, robots RobotsFacts, hasSitemap bool, loadTime *float64) int {
	score := 0
	if page.Title != "" {
		score += pointsTitle
	}
	if page.Description != "" {
		score += pointsDescription
	}
	if page.HasOpenGraph {
		score += pointsOpenGraph
	}
	if page.H1 != "" {
		score += pointsH1
	}
	if page.StructuredDataBlocks > 0 {
		score += pointsStructuredData
	}
	if len(robots.AllowedAIBots) > 0 {
		score += pointsAIBots
	}
	if hasSitemap {
		score += pointsSitemap
	}
	if loadTime != nil && *loadTime < fastLoadThreshold {
		score += pointsLoadTime
	}
	return score
}
