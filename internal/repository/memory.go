package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/brandpulse/monitor/internal/models"
)

// MemoryRepository is an in-memory repository used for demo mode and tests
type MemoryRepository struct {
	mu       sync.RWMutex
	brands   map[string]models.Brand
	mentions map[string]models.Mention
}

// Ensure MemoryRepository implements Repository
var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		brands:   make(map[string]models.Brand),
		mentions: make(map[string]models.Mention),
	}
}

// CreateBrand stores a new brand
func (r *MemoryRepository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.brands[brand.ID] = *brand
	return nil
}

// GetBrand returns the brand with the given id
func (r *MemoryRepository) GetBrand(ctx context.Context, id string) (*models.Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	brand, ok := r.brands[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &brand, nil
}

// ListBrands returns all active brands sorted by name
func (r *MemoryRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	brands := make([]models.Brand, 0, len(r.brands))
	for _, brand := range r.brands {
		if brand.Active {
			brands = append(brands, brand)
		}
	}

	sort.Slice(brands, func(i, j int) bool {
		return brands[i].Name < brands[j].Name
	})

	return brands, nil
}

// DeleteBrand removes the brand and its mentions
func (r *MemoryRepository) DeleteBrand(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.brands[id]; !ok {
		return ErrNotFound
	}
	delete(r.brands, id)

	for mentionID, mention := range r.mentions {
		if mention.BrandID == id {
			delete(r.mentions, mentionID)
		}
	}

	return nil
}

// CreateMention stores a new mention
func (r *MemoryRepository) CreateMention(ctx context.Context, mention *models.Mention) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mentions[mention.ID] = *mention
	return nil
}

// UpdateMention overwrites an existing mention wholesale
func (r *MemoryRepository) UpdateMention(ctx context.Context, mention *models.Mention) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.mentions[mention.ID]; !ok {
		return ErrNotFound
	}
	r.mentions[mention.ID] = *mention
	return nil
}

// GetMention returns the mention with the given id
func (r *MemoryRepository) GetMention(ctx context.Context, id string) (*models.Mention, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mention, ok := r.mentions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &mention, nil
}

// ListMentions returns mentions matching the filter, newest first
func (r *MemoryRepository) ListMentions(ctx context.Context, filter MentionFilter) ([]models.Mention, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var mentions []models.Mention
	for _, mention := range r.mentions {
		if filter.BrandID != "" && mention.BrandID != filter.BrandID {
			continue
		}
		if filter.Platform != "" && mention.Platform != filter.Platform {
			continue
		}
		if filter.MinCrisisProbability > 0 && mention.CrisisProbability < filter.MinCrisisProbability {
			continue
		}
		if !filter.Since.IsZero() && mention.PublishedAt.Before(filter.Since) {
			continue
		}
		mentions = append(mentions, mention)
	}

	sort.Slice(mentions, func(i, j int) bool {
		return mentions[i].PublishedAt.After(mentions[j].PublishedAt)
	})

	if filter.Limit > 0 && len(mentions) > filter.Limit {
		mentions = mentions[:filter.Limit]
	}

	return mentions, nil
}
