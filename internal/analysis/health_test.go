package analysis

import (
	"testing"

	"github.com/brandpulse/monitor/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSummarize_EmptySet(t *testing.T) {
	summary := Summarize(nil, DefaultCrisisThreshold)

	assert.Equal(t, 0, summary.TotalMentions)
	assert.Equal(t, 0.0, summary.PositivePercentage)
	assert.Equal(t, 0.0, summary.NeutralPercentage)
	assert.Equal(t, 0.0, summary.NegativePercentage)
	assert.Equal(t, 0.0, summary.AverageSentiment)
	assert.Equal(t, 0, summary.HighCrisisAlerts)
}

func TestSummarize_Percentages(t *testing.T) {
	var mentions []models.Mention
	addWithLabel := func(label string, count int) {
		for i := 0; i < count; i++ {
			mentions = append(mentions, models.Mention{SentimentLabel: label, SentimentScore: 0.5})
		}
	}
	addWithLabel(models.SentimentPositive, 7)
	addWithLabel(models.SentimentNeutral, 2)
	addWithLabel(models.SentimentNegative, 1)

	summary := Summarize(mentions, DefaultCrisisThreshold)

	assert.Equal(t, 10, summary.TotalMentions)
	assert.Equal(t, 70.0, summary.PositivePercentage)
	assert.Equal(t, 20.0, summary.NeutralPercentage)
	assert.Equal(t, 10.0, summary.NegativePercentage)
	assert.Equal(t, 100.0, summary.PositivePercentage+summary.NeutralPercentage+summary.NegativePercentage)
}

func TestSummarize_AverageSentimentAndAlerts(t *testing.T) {
	mentions := []models.Mention{
		{SentimentLabel: models.SentimentPositive, SentimentScore: 0.9, CrisisProbability: 0.1},
		{SentimentLabel: models.SentimentNegative, SentimentScore: 0.1, CrisisProbability: 0.75},
		{SentimentLabel: models.SentimentNeutral, SentimentScore: 0.5, CrisisProbability: 0.7},
	}

	summary := Summarize(mentions, 0.7)

	assert.InDelta(t, 0.5, summary.AverageSentiment, 1e-9)
	assert.Equal(t, 2, summary.HighCrisisAlerts)
	assert.Equal(t, 0.7, summary.CrisisThreshold)
}

func TestSummarize_DoesNotMutateInput(t *testing.T) {
	mentions := []models.Mention{
		{SentimentLabel: models.SentimentPositive, SentimentScore: 0.8},
	}
	original := mentions[0]

	Summarize(mentions, DefaultCrisisThreshold)

	assert.Equal(t, original, mentions[0])
}
