package main

import (
	"fmt"
	"strings"

	"github.com/brandpulse/monitor/internal/analysis"
)

// Runs the scoring pipeline over sample mentions and prints the results,
// useful for eyeballing scorer behavior without starting the server.
func main() {
	sentiment := analysis.NewFallbackScorer(nil)
	crisis := analysis.NewCrisisScorer()

	samples := []string{
		"I absolutely love this brand! Best customer service ever!",
		"SCAM ALERT! This company is fraudulent! Do NOT buy from them!",
		"The product is okay. Nothing special, but does the job.",
		"URGENT: safety recall issued for all units sold this year",
		"Great quality, fast shipping, reasonable price. Recommend.",
		"Lawsuit filed against company for fraud and data breach!",
		"",
	}

	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("BRAND MONITOR - SCORING DEMO")
	fmt.Println(strings.Repeat("=", 70))

	for i, text := range samples {
		result := sentiment.Score(text)
		assessment := crisis.Assess(text)

		display := text
		if display == "" {
			display = "(empty)"
		}

		fmt.Printf("\n%d. %s\n", i+1, display)
		fmt.Printf("   Sentiment: %s (score %.3f, confidence %.3f, %s)\n",
			result.Label, result.Score, result.Confidence, result.Model)
		fmt.Printf("   Crisis:    %s (probability %.3f)\n", assessment.Level, assessment.Probability)

		if len(assessment.Indicators) > 0 {
			fmt.Printf("   Indicators: %s\n", strings.Join(assessment.Indicators, ", "))
		}
		if assessment.Probability >= analysis.DefaultCrisisThreshold {
			fmt.Println("   *** HIGH CRISIS RISK ***")
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
}
