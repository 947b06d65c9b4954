package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func allPresentFacts() PageFacts {
	return PageFacts{
		Title:                "Acme Widgets",
		Description:          "The finest widgets",
		H1:                   "Widgets",
		HasOpenGraph:         true,
		StructuredDataBlocks: 2,
	}
}

func TestScoreAllPresent(t *testing.T) {
	robots := RobotsFacts{Exists: true, AllowedAIBots: []string{"GPTBot"}}
	assert.Equal(t, 100, Score(allPresentFacts(), robots, true, floatPtr(1.2)))
}

func TestScoreAllAbsent(t *testing.T) {
	assert.Equal(t, 0, Score(PageFacts{}, RobotsFacts{}, false, nil))
}

func TestScorePartialCombination(t *testing.T) {
	facts := PageFacts{Title: "t", Description: "d"}
	assert.Equal(t, 35, Score(facts, RobotsFacts{}, true, nil))
}

func TestScoreLoadTimeBoundary(t *testing.T) {
	tests := []struct {
		name     string
		loadTime *float64
		want     int
	}{
		{"just under threshold", floatPtr(2.99), 15},
		{"exactly at threshold", floatPtr(3.0), 0},
		{"just over threshold", floatPtr(3.01), 0},
		{"unknown", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(PageFacts{}, RobotsFacts{}, false, tt.loadTime))
		})
	}
}

func TestScoreEmptyBotListContributesNothing(t *testing.T) {
	empty := RobotsFacts{Exists: true, AllowedAIBots: []string{}}
	populated := RobotsFacts{Exists: true, AllowedAIBots: []string{"ClaudeBot"}}

	assert.Equal(t, 0, Score(PageFacts{}, empty, false, nil))
	assert.Equal(t, 15, Score(PageFacts{}, populated, false, nil))
}

func TestScoreDeterministic(t *testing.T) {
	facts := allPresentFacts()
	robots := RobotsFacts{AllowedAIBots: []string{"GPTBot", "ClaudeBot"}}
	first := Score(facts, robots, true, floatPtr(2.5))
	second := Score(facts, robots, true, floatPtr(2.5))

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first, 0)
	assert.LessOrEqual(t, first, 100)
}
