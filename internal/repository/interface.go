package repository

import (
	"context"
	"errors"
	"time"

	"github.com/brandpulse/monitor/internal/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// MentionFilter narrows mention listings
type MentionFilter struct {
	BrandID              string
	Platform             string
	MinCrisisProbability float64
	Since                time.Time
	Limit                int
}

// Repository defines the contract for brand and mention persistence
type Repository interface {
	CreateBrand(ctx context.Context, brand *models.Brand) error
	GetBrand(ctx context.Context, id string) (*models.Brand, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
	DeleteBrand(ctx context.Context, id string) error

	CreateMention(ctx context.Context, mention *models.Mention) error
	UpdateMention(ctx context.Context, mention *models.Mention) error
	GetMention(ctx context.Context, id string) (*models.Mention, error)
	ListMentions(ctx context.Context, filter MentionFilter) ([]models.Mention, error)
}
