package repository

import (
	"context"
	"testing"
	"time"

	"github.com/brandpulse/monitor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_BrandLifecycle(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	brand := &models.Brand{
		ID:        "brand-1",
		Name:      "TechCorp",
		Industry:  "Technology",
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	require.NoError(t, repo.CreateBrand(ctx, brand))

	got, err := repo.GetBrand(ctx, "brand-1")
	require.NoError(t, err)
	assert.Equal(t, "TechCorp", got.Name)

	brands, err := repo.ListBrands(ctx)
	require.NoError(t, err)
	assert.Len(t, brands, 1)

	require.NoError(t, repo.DeleteBrand(ctx, "brand-1"))

	_, err = repo.GetBrand(ctx, "brand-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepository_ListBrandsExcludesInactive(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.CreateBrand(ctx, &models.Brand{ID: "a", Name: "Active", Active: true}))
	require.NoError(t, repo.CreateBrand(ctx, &models.Brand{ID: "b", Name: "Retired", Active: false}))

	brands, err := repo.ListBrands(ctx)
	require.NoError(t, err)
	assert.Len(t, brands, 1)
	assert.Equal(t, "Active", brands[0].Name)
}

func TestMemoryRepository_MentionFilters(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	now := time.Now()

	mentions := []models.Mention{
		{ID: "m1", BrandID: "brand-1", Platform: "twitter", CrisisProbability: 0.9, PublishedAt: now},
		{ID: "m2", BrandID: "brand-1", Platform: "reddit", CrisisProbability: 0.1, PublishedAt: now.Add(-time.Hour)},
		{ID: "m3", BrandID: "brand-2", Platform: "twitter", CrisisProbability: 0.8, PublishedAt: now.Add(-2 * time.Hour)},
		{ID: "m4", BrandID: "brand-1", Platform: "twitter", CrisisProbability: 0.3, PublishedAt: now.Add(-30 * 24 * time.Hour)},
	}
	for i := range mentions {
		require.NoError(t, repo.CreateMention(ctx, &mentions[i]))
	}

	t.Run("by brand", func(t *testing.T) {
		got, err := repo.ListMentions(ctx, MentionFilter{BrandID: "brand-1"})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("by platform", func(t *testing.T) {
		got, err := repo.ListMentions(ctx, MentionFilter{BrandID: "brand-1", Platform: "twitter"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("by crisis probability", func(t *testing.T) {
		got, err := repo.ListMentions(ctx, MentionFilter{MinCrisisProbability: 0.7})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("by recency", func(t *testing.T) {
		got, err := repo.ListMentions(ctx, MentionFilter{BrandID: "brand-1", Since: now.Add(-7 * 24 * time.Hour)})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("newest first with limit", func(t *testing.T) {
		got, err := repo.ListMentions(ctx, MentionFilter{BrandID: "brand-1", Limit: 2})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "m1", got[0].ID)
		assert.Equal(t, "m2", got[1].ID)
	})
}

func TestMemoryRepository_UpdateMention(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	mention := &models.Mention{ID: "m1", BrandID: "brand-1", Content: "before"}
	require.NoError(t, repo.CreateMention(ctx, mention))

	mention.SentimentLabel = models.SentimentPositive
	mention.SentimentScore = 0.9
	require.NoError(t, repo.UpdateMention(ctx, mention))

	got, err := repo.GetMention(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, models.SentimentPositive, got.SentimentLabel)

	assert.ErrorIs(t, repo.UpdateMention(ctx, &models.Mention{ID: "missing"}), ErrNotFound)
}

func TestMemoryRepository_DeleteBrandCascades(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.CreateBrand(ctx, &models.Brand{ID: "brand-1", Active: true}))
	require.NoError(t, repo.CreateMention(ctx, &models.Mention{ID: "m1", BrandID: "brand-1"}))

	require.NoError(t, repo.DeleteBrand(ctx, "brand-1"))

	_, err := repo.GetMention(ctx, "m1")
	assert.ErrorIs(t, err, ErrNotFound)
}
