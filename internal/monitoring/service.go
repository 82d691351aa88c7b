package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/brandpulse/monitor/internal/analysis"
	"github.com/brandpulse/monitor/internal/config"
	"github.com/brandpulse/monitor/internal/models"
	"github.com/brandpulse/monitor/internal/notifications"
	"github.com/brandpulse/monitor/internal/repository"
	"github.com/brandpulse/monitor/internal/storage"
)

// Service orchestrates mention analysis, persistence, alerting and digests
type Service struct {
	config    *config.Config
	repo      repository.Repository
	notifier  notifications.NotificationInterface
	archive   storage.Interface // nil disables snapshot archiving
	sentiment *analysis.FallbackScorer
	crisis    *analysis.CrisisScorer
	metrics   *Metrics
	mu        sync.RWMutex
}

// Metrics holds analysis metrics
type Metrics struct {
	TotalAnalyzed      int            `json:"total_analyzed"`
	AlertsRaised       int            `json:"alerts_raised"`
	LastDigest         time.Time      `json:"last_digest"`
	LastSweep          time.Time      `json:"last_sweep"`
	SentimentBreakdown map[string]int `json:"sentiment_breakdown"`
	CrisisBreakdown    map[string]int `json:"crisis_breakdown"`
	ActiveStrategy     string         `json:"active_strategy"`
}

// NewService creates a new monitoring service
func NewService(cfg *config.Config, repo repository.Repository, notifier notifications.NotificationInterface, archive storage.Interface, sentiment *analysis.FallbackScorer) *Service {
	return &Service{
		config:    cfg,
		repo:      repo,
		notifier:  notifier,
		archive:   archive,
		sentiment: sentiment,
		crisis:    analysis.NewCrisisScorer(),
		metrics: &Metrics{
			SentimentBreakdown: make(map[string]int),
			CrisisBreakdown:    make(map[string]int),
		},
	}
}

// Sentiment returns the composed sentiment scorer
func (s *Service) Sentiment() *analysis.FallbackScorer {
	return s.sentiment
}

// Crisis returns the crisis scorer
func (s *Service) Crisis() *analysis.CrisisScorer {
	return s.crisis
}

// Analyze scores a single text without touching any mention record.
// It always produces a complete result pair, never an error.
func (s *Service) Analyze(text string) (analysis.Result, analysis.Assessment) {
	return s.sentiment.Score(text), s.crisis.Assess(text)
}

// AnalyzeMention scores a mention, writes the scored fields wholesale,
// persists the record and raises an alert when the crisis probability
// crosses the configured threshold.
func (s *Service) AnalyzeMention(ctx context.Context, mention *models.Mention) error {
	sentiment, assessment := s.Analyze(mention.Content)

	now := time.Now().UTC()
	mention.SentimentScore = sentiment.Score
	mention.SentimentLabel = sentiment.Label
	mention.Confidence = sentiment.Confidence
	mention.CrisisProbability = assessment.Probability
	mention.CrisisLevel = assessment.Level
	mention.AnalyzedAt = &now

	if err := s.repo.UpdateMention(ctx, mention); err != nil {
		return fmt.Errorf("failed to persist analyzed mention: %w", err)
	}

	s.recordAnalysis(mention)

	if mention.CrisisProbability >= s.config.CrisisAlertThreshold {
		s.raiseAlert(mention, assessment.Indicators)
	}

	return nil
}

func (s *Service) raiseAlert(mention *models.Mention, indicators []string) {
	alert := &models.Alert{
		ID:        uuid.NewString(),
		Type:      alertType(mention.CrisisLevel),
		Title:     fmt.Sprintf("Crisis mention detected on %s", mention.Platform),
		Message:   fmt.Sprintf("Crisis probability %.2f (%s), indicators: %v", mention.CrisisProbability, mention.CrisisLevel, indicators),
		Mention:   mention,
		CreatedAt: time.Now().UTC(),
	}

	// Alert delivery failures never fail the analysis request
	if err := s.notifier.SendAlert(alert); err != nil {
		logrus.Errorf("Failed to send crisis alert: %v", err)
		return
	}

	s.mu.Lock()
	s.metrics.AlertsRaised++
	s.mu.Unlock()
}

func alertType(crisisLevel string) string {
	if crisisLevel == models.CrisisCritical {
		return "critical"
	}
	return "urgent"
}

// RunDigest builds a brand health digest over the configured period and
// sends it via the notification channels.
func (s *Service) RunDigest(ctx context.Context) error {
	start := time.Now()
	logrus.Info("Starting brand health digest run")

	window := 24 * time.Hour
	if s.config.DigestSchedule == "weekly" {
		window = 7 * 24 * time.Hour
	}
	since := time.Now().UTC().Add(-window)

	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return fmt.Errorf("failed to list brands: %w", err)
	}

	report := &models.HealthReport{
		GeneratedAt: time.Now().UTC(),
		Period:      s.config.DigestSchedule,
	}

	for _, brand := range brands {
		mentions, err := s.repo.ListMentions(ctx, repository.MentionFilter{BrandID: brand.ID, Since: since})
		if err != nil {
			logrus.Errorf("Failed to list mentions for brand %s: %v", brand.ID, err)
			continue
		}

		summary := analysis.Summarize(mentions, s.config.CrisisAlertThreshold)
		summary.BrandID = brand.ID
		report.Brands = append(report.Brands, summary)
	}

	topAlerts, err := s.repo.ListMentions(ctx, repository.MentionFilter{
		MinCrisisProbability: s.config.CrisisAlertThreshold,
		Since:                since,
		Limit:                5,
	})
	if err == nil {
		report.TopAlerts = topAlerts
	}

	if err := s.notifier.SendHealthReport(report); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}

	s.archiveSnapshot(ctx, "digest", report)

	s.mu.Lock()
	s.metrics.LastDigest = time.Now()
	s.mu.Unlock()

	logrus.Infof("Digest run completed in %v for %d brands", time.Since(start), len(report.Brands))
	return nil
}

// RunCrisisSweep re-checks recent mentions against the alert threshold
// and sends a consolidated alert for anything above it.
func (s *Service) RunCrisisSweep(ctx context.Context) error {
	start := time.Now()
	logrus.Info("Starting crisis sweep")

	since := time.Now().UTC().Add(-4 * time.Hour)
	mentions, err := s.repo.ListMentions(ctx, repository.MentionFilter{
		MinCrisisProbability: s.config.CrisisAlertThreshold,
		Since:                since,
	})
	if err != nil {
		return fmt.Errorf("failed to list high-crisis mentions: %w", err)
	}

	s.mu.Lock()
	s.metrics.LastSweep = time.Now()
	s.mu.Unlock()

	if len(mentions) == 0 {
		logrus.Info("Crisis sweep found no mentions above threshold")
		return nil
	}

	logrus.Infof("Crisis sweep found %d mentions above threshold %.2f", len(mentions), s.config.CrisisAlertThreshold)

	alert := &models.Alert{
		ID:        uuid.NewString(),
		Type:      "urgent",
		Title:     fmt.Sprintf("%d high-crisis mentions in the last 4 hours", len(mentions)),
		Message:   fmt.Sprintf("Mentions with crisis probability >= %.2f require attention", s.config.CrisisAlertThreshold),
		Mention:   &mentions[0],
		CreatedAt: time.Now().UTC(),
	}

	if err := s.notifier.SendAlert(alert); err != nil {
		return fmt.Errorf("failed to send sweep alert: %w", err)
	}

	s.archiveSnapshot(ctx, "crisis-sweep", mentions)

	logrus.Infof("Crisis sweep completed in %v", time.Since(start))
	return nil
}

// archiveSnapshot stores a JSON snapshot when an archive is configured.
// Archive failures are logged, never surfaced.
func (s *Service) archiveSnapshot(ctx context.Context, kind string, payload interface{}) {
	if s.archive == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logrus.Errorf("Failed to marshal %s snapshot: %v", kind, err)
		return
	}

	name := fmt.Sprintf("%s-%s.json", kind, time.Now().UTC().Format("2006-01-02-15-04-05"))
	if err := s.archive.Store(ctx, name, data); err != nil {
		logrus.Errorf("Failed to archive %s snapshot: %v", kind, err)
	}
}

func (s *Service) recordAnalysis(mention *models.Mention) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.TotalAnalyzed++
	s.metrics.SentimentBreakdown[mention.SentimentLabel]++
	s.metrics.CrisisBreakdown[mention.CrisisLevel]++
	s.metrics.ActiveStrategy = s.sentiment.ActiveStrategy()
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
