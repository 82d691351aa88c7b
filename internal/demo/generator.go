package demo

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/brandpulse/monitor/internal/models"
)

var platforms = []string{"twitter", "facebook", "reddit", "instagram", "news"}

var authors = []string{
	"@tech_enthusiast", "@consumer_watch", "@jane_doe", "@industry_insider",
	"@daily_news", "@product_reviewer", "@social_butterfly", "@critical_thinker",
}

var positiveTemplates = []string{
	"Just tried %s - absolutely amazing! Highly recommend",
	"Best decision ever choosing %s. Outstanding service!",
	"%s exceeded my expectations. Will definitely use again!",
	"Wow! %s really knows how to treat customers. Impressed!",
	"Finally found a company that cares - %s is the real deal!",
}

var negativeTemplates = []string{
	"Disappointed with %s service. Expected much better...",
	"%s needs to step up their game. Not happy with recent experience",
	"Having issues with %s - customer service is terrible",
	"Used to love %s but quality has become awful recently",
	"%s charged me twice! This is a frustrating nightmare",
}

var neutralTemplates = []string{
	"Anyone else using %s? Looking for reviews before I try",
	"Saw an ad for %s - has anyone tried their new service?",
	"%s seems interesting but need more info before deciding",
	"Comparing %s with competitors. What's your experience?",
	"Thinking about switching to %s - pros and cons?",
}

var crisisTemplates = []string{
	"URGENT: %s data breach affects millions of users!",
	"BREAKING: %s scandal under federal investigation",
	"Major outage at %s - services down for 12+ hours",
	"ALERT: %s product recall due to safety concerns",
	"Lawsuit filed against %s for fraud and misleading advertising",
}

// Generator produces realistic sample mentions without external APIs
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator seeded from the current time
func NewGenerator() *Generator {
	return NewSeededGenerator(time.Now().UnixNano())
}

// NewSeededGenerator creates a deterministic generator for tests
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// SampleBrand returns a demo brand record
func (g *Generator) SampleBrand() models.Brand {
	now := time.Now().UTC()
	return models.Brand{
		ID:        uuid.NewString(),
		Name:      "Demo Brand",
		Industry:  "Technology",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GenerateMentions produces count unscored mentions for the brand spread
// over the last days. The sentiment mix is weighted toward positive
// content with a small crisis tail, mirroring real brand chatter.
func (g *Generator) GenerateMentions(brandID, brandName string, days, count int) []models.Mention {
	mentions := make([]models.Mention, 0, count)
	for i := 0; i < count; i++ {
		mentions = append(mentions, g.generateMention(brandID, brandName, days))
	}
	return mentions
}

func (g *Generator) generateMention(brandID, brandName string, days int) models.Mention {
	templates := g.pickTemplates()
	content := fmt.Sprintf(templates[g.rng.Intn(len(templates))], brandName)

	publishedAt := time.Now().UTC().
		Add(-time.Duration(g.rng.Intn(days*24)) * time.Hour).
		Add(-time.Duration(g.rng.Intn(60)) * time.Minute)

	return models.Mention{
		ID:            uuid.NewString(),
		BrandID:       brandID,
		Platform:      platforms[g.rng.Intn(len(platforms))],
		Content:       content,
		Author:        authors[g.rng.Intn(len(authors))],
		LikesCount:    g.rng.Intn(100),
		SharesCount:   g.rng.Intn(50),
		CommentsCount: g.rng.Intn(25),
		PublishedAt:   publishedAt,
		CreatedAt:     time.Now().UTC(),
	}
}

// pickTemplates selects a template group with weights 60/28/10/2 for
// positive/neutral/negative/crisis.
func (g *Generator) pickTemplates() []string {
	roll := g.rng.Float64()
	switch {
	case roll < 0.60:
		return positiveTemplates
	case roll < 0.88:
		return neutralTemplates
	case roll < 0.98:
		return negativeTemplates
	default:
		return crisisTemplates
	}
}
