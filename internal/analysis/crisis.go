package analysis

import (
	"math"
	"strings"

	"github.com/brandpulse/monitor/internal/models"
)

// Assessment is the output of a crisis check on a single text
type Assessment struct {
	Probability float64  `json:"crisis_probability"` // 0 to 1
	Level       string   `json:"crisis_level"`       // none, minor, major, critical
	Indicators  []string `json:"indicators"`         // matched terms, each at most once
}

// indicator is a crisis term with its severity weight
type indicator struct {
	term   string
	weight float64
}

// crisisNormalization is the accumulated weight at which probability
// saturates to 1.0; three top-weight hits reach it.
const crisisNormalization = 6.0

// CrisisScorer detects crisis signals through weighted keyword evidence.
// Sentiment never drives the level; keywords are the only input.
type CrisisScorer struct {
	indicators []indicator
}

// NewCrisisScorer creates a scorer with the built-in indicator table
func NewCrisisScorer() *CrisisScorer {
	return &CrisisScorer{
		indicators: []indicator{
			// High-severity terms
			{"recall", 2.0},
			{"lawsuit", 2.0},
			{"fraud", 2.0},
			{"scam", 2.0},
			{"breach", 2.0},
			{"dangerous", 2.0},
			{"toxic", 2.0},
			{"contaminated", 2.0},
			{"defective", 2.0},
			// Standard terms
			{"urgent", 1.0},
			{"emergency", 1.0},
			{"safety", 1.0},
			{"boycott", 1.0},
			{"protest", 1.0},
			{"scandal", 1.0},
			{"investigation", 1.0},
			{"outage", 1.0},
			{"banned", 1.0},
			{"illegal", 1.0},
			{"warning", 1.0},
		},
	}
}

// LevelForProbability derives the crisis level from the probability.
// Single source of truth; levels are never set independently.
func LevelForProbability(probability float64) string {
	switch {
	case probability < 0.2:
		return models.CrisisNone
	case probability < 0.5:
		return models.CrisisMinor
	case probability < 0.8:
		return models.CrisisMajor
	default:
		return models.CrisisCritical
	}
}

// Assess scans the text for crisis indicators and maps the accumulated
// weight into a probability and level. Each matched term contributes its
// weight once regardless of how often it occurs.
func (s *CrisisScorer) Assess(text string) Assessment {
	lowered := strings.ToLower(text)

	var accumulated float64
	indicators := []string{}

	for _, ind := range s.indicators {
		if strings.Contains(lowered, ind.term) {
			accumulated += ind.weight
			indicators = append(indicators, ind.term)
		}
	}

	probability := math.Min(1.0, accumulated/crisisNormalization)

	return Assessment{
		Probability: probability,
		Level:       LevelForProbability(probability),
		Indicators:  indicators,
	}
}
