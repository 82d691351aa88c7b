package analysis

import (
	"math"

	"github.com/brandpulse/monitor/internal/models"
)

// DefaultCrisisThreshold is the crisis probability above which a mention
// counts as a high-crisis alert.
const DefaultCrisisThreshold = 0.7

// Summarize reduces a set of scored mentions to brand health statistics.
// A zero mention count yields a zero-valued summary; no division by zero.
// The input is never mutated.
func Summarize(mentions []models.Mention, threshold float64) models.BrandHealthSummary {
	summary := models.BrandHealthSummary{
		TotalMentions:   len(mentions),
		CrisisThreshold: threshold,
	}

	if len(mentions) == 0 {
		return summary
	}

	var sentimentSum float64
	for _, mention := range mentions {
		sentimentSum += mention.SentimentScore

		switch mention.SentimentLabel {
		case models.SentimentPositive:
			summary.PositiveCount++
		case models.SentimentNegative:
			summary.NegativeCount++
		default:
			summary.NeutralCount++
		}

		if mention.CrisisProbability >= threshold {
			summary.HighCrisisAlerts++
		}
	}

	total := float64(summary.TotalMentions)
	summary.PositivePercentage = percentage(summary.PositiveCount, total)
	summary.NeutralPercentage = percentage(summary.NeutralCount, total)
	summary.NegativePercentage = percentage(summary.NegativeCount, total)
	summary.AverageSentiment = sentimentSum / total

	return summary
}

// percentage computes count/total*100 rounded to one decimal place
func percentage(count int, total float64) float64 {
	return math.Round(float64(count)/total*1000) / 10
}
