package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/brandpulse/monitor/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS brands (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	industry   TEXT NOT NULL DEFAULT '',
	website    TEXT NOT NULL DEFAULT '',
	active     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS mentions (
	id                 TEXT PRIMARY KEY,
	brand_id           TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	platform           TEXT NOT NULL,
	content            TEXT NOT NULL,
	author             TEXT NOT NULL DEFAULT '',
	url                TEXT NOT NULL DEFAULT '',
	likes_count        INTEGER NOT NULL DEFAULT 0,
	shares_count       INTEGER NOT NULL DEFAULT 0,
	comments_count     INTEGER NOT NULL DEFAULT 0,
	sentiment_score    DOUBLE PRECISION NOT NULL DEFAULT 0,
	sentiment_label    TEXT NOT NULL DEFAULT '',
	confidence         DOUBLE PRECISION NOT NULL DEFAULT 0,
	crisis_probability DOUBLE PRECISION NOT NULL DEFAULT 0,
	crisis_level       TEXT NOT NULL DEFAULT '',
	published_at       TIMESTAMPTZ NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL,
	analyzed_at        TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_mentions_brand_id ON mentions (brand_id);
CREATE INDEX IF NOT EXISTS idx_mentions_crisis ON mentions (crisis_probability);
`

// PostgresRepository persists brands and mentions in PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// Ensure PostgresRepository implements Repository
var _ Repository = (*PostgresRepository)(nil)

// NewPostgresRepository connects to PostgreSQL and bootstraps the schema
func NewPostgresRepository(databaseURL string) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	logrus.Info("Connected to PostgreSQL")
	return &PostgresRepository{db: db}, nil
}

// Close releases the database connection pool
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// CreateBrand stores a new brand
func (r *PostgresRepository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO brands (id, name, industry, website, active, created_at, updated_at)
		VALUES (:id, :name, :industry, :website, :active, :created_at, :updated_at)`, brand)
	if err != nil {
		return fmt.Errorf("failed to insert brand: %w", err)
	}
	return nil
}

// GetBrand returns the brand with the given id
func (r *PostgresRepository) GetBrand(ctx context.Context, id string) (*models.Brand, error) {
	var brand models.Brand
	err := r.db.GetContext(ctx, &brand, `SELECT * FROM brands WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query brand: %w", err)
	}
	return &brand, nil
}

// ListBrands returns all active brands sorted by name
func (r *PostgresRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	brands := []models.Brand{}
	err := r.db.SelectContext(ctx, &brands, `SELECT * FROM brands WHERE active ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}

// DeleteBrand removes the brand; its mentions cascade
func (r *PostgresRepository) DeleteBrand(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateMention stores a new mention
func (r *PostgresRepository) CreateMention(ctx context.Context, mention *models.Mention) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO mentions (
			id, brand_id, platform, content, author, url,
			likes_count, shares_count, comments_count,
			sentiment_score, sentiment_label, confidence,
			crisis_probability, crisis_level,
			published_at, created_at, analyzed_at
		) VALUES (
			:id, :brand_id, :platform, :content, :author, :url,
			:likes_count, :shares_count, :comments_count,
			:sentiment_score, :sentiment_label, :confidence,
			:crisis_probability, :crisis_level,
			:published_at, :created_at, :analyzed_at
		)`, mention)
	if err != nil {
		return fmt.Errorf("failed to insert mention: %w", err)
	}
	return nil
}

// UpdateMention overwrites an existing mention wholesale
func (r *PostgresRepository) UpdateMention(ctx context.Context, mention *models.Mention) error {
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE mentions SET
			platform = :platform, content = :content, author = :author, url = :url,
			likes_count = :likes_count, shares_count = :shares_count, comments_count = :comments_count,
			sentiment_score = :sentiment_score, sentiment_label = :sentiment_label, confidence = :confidence,
			crisis_probability = :crisis_probability, crisis_level = :crisis_level,
			published_at = :published_at, analyzed_at = :analyzed_at
		WHERE id = :id`, mention)
	if err != nil {
		return fmt.Errorf("failed to update mention: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetMention returns the mention with the given id
func (r *PostgresRepository) GetMention(ctx context.Context, id string) (*models.Mention, error) {
	var mention models.Mention
	err := r.db.GetContext(ctx, &mention, `SELECT * FROM mentions WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query mention: %w", err)
	}
	return &mention, nil
}

// ListMentions returns mentions matching the filter, newest first
func (r *PostgresRepository) ListMentions(ctx context.Context, filter MentionFilter) ([]models.Mention, error) {
	query := `SELECT * FROM mentions WHERE 1=1`
	args := map[string]interface{}{}

	if filter.BrandID != "" {
		query += ` AND brand_id = :brand_id`
		args["brand_id"] = filter.BrandID
	}
	if filter.Platform != "" {
		query += ` AND platform = :platform`
		args["platform"] = filter.Platform
	}
	if filter.MinCrisisProbability > 0 {
		query += ` AND crisis_probability >= :min_crisis`
		args["min_crisis"] = filter.MinCrisisProbability
	}
	if !filter.Since.IsZero() {
		query += ` AND published_at >= :since`
		args["since"] = filter.Since
	}

	query += ` ORDER BY published_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT :limit`
		args["limit"] = filter.Limit
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentions: %w", err)
	}
	defer rows.Close()

	mentions := []models.Mention{}
	for rows.Next() {
		var mention models.Mention
		if err := rows.StructScan(&mention); err != nil {
			return nil, fmt.Errorf("failed to scan mention: %w", err)
		}
		mentions = append(mentions, mention)
	}

	return mentions, rows.Err()
}
