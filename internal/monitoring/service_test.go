package monitoring

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/brandpulse/monitor/internal/analysis"
	"github.com/brandpulse/monitor/internal/config"
	"github.com/brandpulse/monitor/internal/models"
	"github.com/brandpulse/monitor/internal/repository"
)

// MockNotificationService is a mock implementation of the notification service
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendAlert(alert *models.Alert) error {
	args := m.Called(alert)
	return args.Error(0)
}

func (m *MockNotificationService) SendHealthReport(report *models.HealthReport) error {
	args := m.Called(report)
	return args.Error(0)
}

func newTestService(notifier *MockNotificationService) (*Service, *repository.MemoryRepository) {
	cfg := &config.Config{
		CrisisAlertThreshold: 0.7,
		DigestSchedule:       "daily",
	}
	repo := repository.NewMemoryRepository()
	sentiment := analysis.NewFallbackScorer(nil)
	return NewService(cfg, repo, notifier, nil, sentiment), repo
}

func TestService_AnalyzeMention(t *testing.T) {
	notifier := &MockNotificationService{}
	service, repo := newTestService(notifier)
	ctx := context.Background()

	mention := &models.Mention{
		ID:          "m1",
		BrandID:     "brand-1",
		Platform:    "twitter",
		Content:     "I absolutely love this amazing product!",
		PublishedAt: time.Now(),
	}
	require.NoError(t, repo.CreateMention(ctx, mention))

	require.NoError(t, service.AnalyzeMention(ctx, mention))

	assert.Equal(t, models.SentimentPositive, mention.SentimentLabel)
	assert.Greater(t, mention.SentimentScore, 0.6)
	assert.Equal(t, models.CrisisNone, mention.CrisisLevel)
	assert.Equal(t, 0.0, mention.CrisisProbability)
	assert.NotNil(t, mention.AnalyzedAt)

	// Scored fields must be persisted
	stored, err := repo.GetMention(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, mention.SentimentScore, stored.SentimentScore)
	assert.Equal(t, mention.CrisisLevel, stored.CrisisLevel)

	// No alert for a benign mention
	notifier.AssertNotCalled(t, "SendAlert", mock.Anything)
}

func TestService_AnalyzeMentionRaisesAlert(t *testing.T) {
	notifier := &MockNotificationService{}
	notifier.On("SendAlert", mock.Anything).Return(nil)

	service, repo := newTestService(notifier)
	ctx := context.Background()

	mention := &models.Mention{
		ID:          "m1",
		BrandID:     "brand-1",
		Platform:    "news",
		Content:     "Lawsuit filed over fraud and a massive data breach",
		PublishedAt: time.Now(),
	}
	require.NoError(t, repo.CreateMention(ctx, mention))

	require.NoError(t, service.AnalyzeMention(ctx, mention))

	assert.Equal(t, models.CrisisCritical, mention.CrisisLevel)
	assert.GreaterOrEqual(t, mention.CrisisProbability, 0.7)
	notifier.AssertCalled(t, "SendAlert", mock.Anything)
}

func TestService_AnalyzeMentionAlertFailureDoesNotFail(t *testing.T) {
	notifier := &MockNotificationService{}
	notifier.On("SendAlert", mock.Anything).Return(assert.AnError)

	service, repo := newTestService(notifier)
	ctx := context.Background()

	mention := &models.Mention{
		ID:          "m1",
		BrandID:     "brand-1",
		Platform:    "news",
		Content:     "URGENT: safety recall issued over dangerous defective units",
		PublishedAt: time.Now(),
	}
	require.NoError(t, repo.CreateMention(ctx, mention))

	// Alert delivery failure is absorbed, analysis still succeeds
	assert.NoError(t, service.AnalyzeMention(ctx, mention))
}

func TestService_AnalyzeAlwaysProducesResult(t *testing.T) {
	service, _ := newTestService(&MockNotificationService{})

	for _, text := range []string{"", "   ", "plain text with no keywords"} {
		result, assessment := service.Analyze(text)
		assert.Equal(t, models.SentimentNeutral, result.Label)
		assert.Equal(t, 0.5, result.Score)
		assert.Equal(t, models.CrisisNone, assessment.Level)
	}
}

func TestService_RunDigest(t *testing.T) {
	notifier := &MockNotificationService{}
	notifier.On("SendHealthReport", mock.MatchedBy(func(report *models.HealthReport) bool {
		return len(report.Brands) == 1 && report.Brands[0].TotalMentions == 2
	})).Return(nil)

	service, repo := newTestService(notifier)
	ctx := context.Background()

	require.NoError(t, repo.CreateBrand(ctx, &models.Brand{ID: "brand-1", Name: "TechCorp", Active: true}))

	mentions := []models.Mention{
		{ID: "m1", BrandID: "brand-1", Content: "love it", SentimentLabel: models.SentimentPositive, SentimentScore: 1.0, PublishedAt: time.Now()},
		{ID: "m2", BrandID: "brand-1", Content: "meh", SentimentLabel: models.SentimentNeutral, SentimentScore: 0.5, PublishedAt: time.Now()},
	}
	for i := range mentions {
		require.NoError(t, repo.CreateMention(ctx, &mentions[i]))
	}

	require.NoError(t, service.RunDigest(ctx))
	notifier.AssertExpectations(t)
}

func TestService_RunCrisisSweep(t *testing.T) {
	t.Run("quiet period sends nothing", func(t *testing.T) {
		notifier := &MockNotificationService{}
		service, repo := newTestService(notifier)
		ctx := context.Background()

		require.NoError(t, repo.CreateMention(ctx, &models.Mention{
			ID: "m1", BrandID: "brand-1", CrisisProbability: 0.2, PublishedAt: time.Now(),
		}))

		require.NoError(t, service.RunCrisisSweep(ctx))
		notifier.AssertNotCalled(t, "SendAlert", mock.Anything)
	})

	t.Run("high-crisis mentions trigger an alert", func(t *testing.T) {
		notifier := &MockNotificationService{}
		notifier.On("SendAlert", mock.Anything).Return(nil)

		service, repo := newTestService(notifier)
		ctx := context.Background()

		require.NoError(t, repo.CreateMention(ctx, &models.Mention{
			ID: "m1", BrandID: "brand-1", CrisisProbability: 0.9,
			CrisisLevel: models.CrisisCritical, PublishedAt: time.Now(),
		}))

		require.NoError(t, service.RunCrisisSweep(ctx))
		notifier.AssertCalled(t, "SendAlert", mock.Anything)
	})
}

func TestService_GetMetrics(t *testing.T) {
	notifier := &MockNotificationService{}
	service, repo := newTestService(notifier)
	ctx := context.Background()

	mention := &models.Mention{ID: "m1", BrandID: "brand-1", Content: "great product", PublishedAt: time.Now()}
	require.NoError(t, repo.CreateMention(ctx, mention))
	require.NoError(t, service.AnalyzeMention(ctx, mention))

	metrics := service.GetMetrics()
	assert.Contains(t, metrics, `"total_analyzed": 1`)
	assert.Contains(t, metrics, `"positive": 1`)
	assert.Contains(t, metrics, `"lexicon"`)
}
