package analysis

import (
	"math"
	"strings"
	"unicode"

	"github.com/brandpulse/monitor/internal/models"
)

// Result is the output shape shared by every sentiment strategy, so
// callers stay strategy-agnostic.
type Result struct {
	Score      float64 `json:"sentiment_score"` // 0 to 1, 1 most positive
	Label      string  `json:"sentiment_label"` // positive, neutral, negative
	Confidence float64 `json:"confidence"`      // 0 to 1
	Model      string  `json:"model"`           // strategy that produced the result
}

// SentimentScorer scores free text. Implementations must be safe for
// concurrent use and deterministic given their fixed lexicons or model.
type SentimentScorer interface {
	Score(text string) (Result, error)
	Name() string
	Available() bool
}

// LabelForScore derives the sentiment label from the score. This is the
// single source of truth for labeling; labels are never set independently.
func LabelForScore(score float64) string {
	switch {
	case score > 0.6:
		return models.SentimentPositive
	case score < 0.4:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// confidenceSaturation is the match count at which lexicon confidence
// reaches 1.0.
const confidenceSaturation = 3.0

// LexiconScorer scores text by counting matches against fixed positive
// and negative word sets.
type LexiconScorer struct {
	positiveWords map[string]struct{}
	negativeWords map[string]struct{}
}

var _ SentimentScorer = (*LexiconScorer)(nil)

// NewLexiconScorer creates a lexicon scorer with the built-in word sets
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{
		positiveWords: wordSet(
			"amazing", "awesome", "excellent", "fantastic", "great", "love", "perfect",
			"wonderful", "outstanding", "brilliant", "superb", "incredible", "marvelous",
			"exceptional", "remarkable", "impressive", "delighted", "satisfied", "happy",
			"pleased", "recommend", "best", "good", "nice", "beautiful", "gorgeous",
		),
		negativeWords: wordSet(
			"terrible", "awful", "horrible", "hate", "worst", "disgusting", "pathetic",
			"useless", "disappointing", "annoying", "frustrating", "bad", "poor", "sad",
			"angry", "furious", "outraged", "disgusted", "appalled", "devastated",
			"broken", "failed", "garbage", "trash", "nightmare", "disaster",
		),
	}
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Name returns the strategy identifier
func (s *LexiconScorer) Name() string { return "lexicon" }

// Available always reports true; the lexicon is compiled in
func (s *LexiconScorer) Available() bool { return true }

// Score counts positive and negative keyword occurrences, normalizes the
// balance into [0,1], and saturates confidence with evidence volume.
// It never returns an error.
func (s *LexiconScorer) Score(text string) (Result, error) {
	positive := 0
	negative := 0

	for _, word := range tokenize(text) {
		if _, ok := s.positiveWords[word]; ok {
			positive++
		}
		if _, ok := s.negativeWords[word]; ok {
			negative++
		}
	}

	matched := positive + negative
	score := 0.5
	if matched > 0 {
		polarity := float64(positive-negative) / float64(matched) // -1 to 1
		score = (polarity + 1) / 2
	}

	return Result{
		Score:      score,
		Label:      LabelForScore(score),
		Confidence: math.Min(1.0, float64(matched)/confidenceSaturation),
		Model:      s.Name(),
	}, nil
}

// tokenize splits text into lowercase words, dropping punctuation
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
