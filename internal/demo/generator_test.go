package demo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMentionsShape(t *testing.T) {
	gen := NewSeededGenerator(42)

	mentions := gen.GenerateMentions("brand-1", "TechCorp", 7, 20)
	require.Len(t, mentions, 20)

	cutoff := time.Now().UTC().Add(-8 * 24 * time.Hour)
	for _, mention := range mentions {
		assert.Equal(t, "brand-1", mention.BrandID)
		assert.NotEmpty(t, mention.ID)
		assert.NotEmpty(t, mention.Platform)
		assert.NotEmpty(t, mention.Author)
		assert.Contains(t, mention.Content, "TechCorp")
		assert.True(t, mention.PublishedAt.After(cutoff))

		// Mentions come out unscored; the pipeline fills these in
		assert.Empty(t, mention.SentimentLabel)
		assert.Nil(t, mention.AnalyzedAt)
	}
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	first := NewSeededGenerator(7).GenerateMentions("b", "Acme", 7, 15)
	second := NewSeededGenerator(7).GenerateMentions("b", "Acme", 7, 15)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Content, second[i].Content)
		assert.Equal(t, first[i].Platform, second[i].Platform)
		assert.Equal(t, first[i].Author, second[i].Author)
	}
}

func TestSentimentMixLeansPositive(t *testing.T) {
	gen := NewSeededGenerator(1)
	mentions := gen.GenerateMentions("b", "Acme", 7, 500)

	var positive, crisis int
	for _, mention := range mentions {
		content := strings.ToLower(mention.Content)
		switch {
		case strings.Contains(content, "urgent") || strings.Contains(content, "breach") ||
			strings.Contains(content, "recall") || strings.Contains(content, "lawsuit") ||
			strings.Contains(content, "scandal") || strings.Contains(content, "outage"):
			crisis++
		case strings.Contains(content, "amazing") || strings.Contains(content, "outstanding") ||
			strings.Contains(content, "impressed") || strings.Contains(content, "exceeded") ||
			strings.Contains(content, "real deal"):
			positive++
		}
	}

	assert.Greater(t, positive, 200, "positive templates should dominate")
	assert.Less(t, crisis, 50, "crisis content should be a small tail")
}

func TestSampleBrand(t *testing.T) {
	brand := NewSeededGenerator(3).SampleBrand()

	assert.NotEmpty(t, brand.ID)
	assert.Equal(t, "Demo Brand", brand.Name)
	assert.True(t, brand.Active)
}
