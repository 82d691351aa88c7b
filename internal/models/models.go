package models

import "time"

// Sentiment labels derived from the sentiment score.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Crisis levels derived from the crisis probability.
const (
	CrisisNone     = "none"
	CrisisMinor    = "minor"
	CrisisMajor    = "major"
	CrisisCritical = "critical"
)

// Brand represents a monitored brand
type Brand struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Industry  string    `json:"industry" db:"industry"`
	Website   string    `json:"website,omitempty" db:"website"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Mention represents a single piece of brand-related content found on a platform.
// The scored fields (SentimentScore through AnalyzedAt) are written wholesale by
// each analysis pass; labels are always re-derivable from their scores.
type Mention struct {
	ID       string `json:"id" db:"id"`
	BrandID  string `json:"brand_id" db:"brand_id"`
	Platform string `json:"platform" db:"platform"` // "twitter", "reddit", "news", etc.
	Content  string `json:"content" db:"content"`
	Author   string `json:"author,omitempty" db:"author"`
	URL      string `json:"url,omitempty" db:"url"`

	LikesCount    int `json:"likes_count" db:"likes_count"`
	SharesCount   int `json:"shares_count" db:"shares_count"`
	CommentsCount int `json:"comments_count" db:"comments_count"`

	SentimentScore    float64 `json:"sentiment_score" db:"sentiment_score"`       // 0 to 1, 1 most positive
	SentimentLabel    string  `json:"sentiment_label" db:"sentiment_label"`       // positive, neutral, negative
	Confidence        float64 `json:"confidence" db:"confidence"`                 // 0 to 1
	CrisisProbability float64 `json:"crisis_probability" db:"crisis_probability"` // 0 to 1
	CrisisLevel       string  `json:"crisis_level" db:"crisis_level"`             // none, minor, major, critical

	PublishedAt time.Time  `json:"published_at" db:"published_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	AnalyzedAt  *time.Time `json:"analyzed_at,omitempty" db:"analyzed_at"`
}

// Engagement returns the combined engagement counters for a mention
func (m *Mention) Engagement() int {
	return m.LikesCount + m.SharesCount + m.CommentsCount
}

// BrandHealthSummary aggregates scored mentions for dashboard consumption.
// Computed on demand, never persisted.
type BrandHealthSummary struct {
	BrandID            string  `json:"brand_id,omitempty"`
	TotalMentions      int     `json:"total_mentions"`
	PositiveCount      int     `json:"positive_count"`
	NeutralCount       int     `json:"neutral_count"`
	NegativeCount      int     `json:"negative_count"`
	PositivePercentage float64 `json:"positive_percentage"`
	NeutralPercentage  float64 `json:"neutral_percentage"`
	NegativePercentage float64 `json:"negative_percentage"`
	AverageSentiment   float64 `json:"average_sentiment"`
	HighCrisisAlerts   int     `json:"high_crisis_alerts"`
	CrisisThreshold    float64 `json:"crisis_threshold"`
}

// Alert represents an urgent notification about a high-risk mention
type Alert struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // "critical", "urgent", "info"
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Mention   *Mention  `json:"mention,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HealthReport is a periodic digest of brand health sent to notification channels
type HealthReport struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Period      string               `json:"period"` // "daily" or "weekly"
	Brands      []BrandHealthSummary `json:"brands"`
	TopAlerts   []Mention            `json:"top_alerts,omitempty"`
}
