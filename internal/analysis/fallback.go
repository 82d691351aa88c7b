package analysis

import (
	"github.com/sirupsen/logrus"
)

// FallbackScorer composes a primary strategy with a fallback. Scoring
// always produces a result: when the primary is unavailable or its
// inference fails, the fallback's result is substituted, never an error.
type FallbackScorer struct {
	primary  SentimentScorer
	fallback *LexiconScorer
}

// NewFallbackScorer wraps primary with the lexicon fallback. A nil
// primary means the lexicon strategy runs alone.
func NewFallbackScorer(primary SentimentScorer) *FallbackScorer {
	return &FallbackScorer{
		primary:  primary,
		fallback: NewLexiconScorer(),
	}
}

// Score returns the primary strategy's result when possible and the
// lexicon result otherwise. Downstream consumers assume all fields are
// always present, so this path never fails.
func (s *FallbackScorer) Score(text string) Result {
	if s.primary != nil && s.primary.Available() {
		result, err := s.primary.Score(text)
		if err == nil {
			return result
		}
		logrus.Warnf("Sentiment model scoring failed, falling back to lexicon: %v", err)
	}

	result, _ := s.fallback.Score(text)
	return result
}

// ActiveStrategy names the strategy that will serve the next call
func (s *FallbackScorer) ActiveStrategy() string {
	if s.primary != nil && s.primary.Available() {
		return s.primary.Name()
	}
	return s.fallback.Name()
}

// ModelAvailable reports whether the primary model strategy is usable
func (s *FallbackScorer) ModelAvailable() bool {
	return s.primary != nil && s.primary.Available()
}
