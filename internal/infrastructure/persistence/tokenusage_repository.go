package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"duochat-server/internal/domain/tokenusage"
)

// TokenUsageRepository implements tokenusage.Repository using GORM.
type TokenUsageRepository struct {
	db *gorm.DB
}

// NewTokenUsageRepository creates a new TokenUsageRepository.
func NewTokenUsageRepository(db *gorm.DB) tokenusage.Repository {
	return &TokenUsageRepository{db: db}
}

// Create appends a new ledger row.
func (r *TokenUsageRepository) Create(ctx context.Context, usage *tokenusage.TokenUsage) error {
	return r.db.WithContext(ctx).Create(usage).Error
}

// ListByUser returns all rows for a user, newest first.
func (r *TokenUsageRepository) ListByUser(ctx context.Context, userID string) ([]tokenusage.TokenUsage, error) {
	var rows []tokenusage.TokenUsage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Find(&rows).Error
	return rows, err
}

// TotalByUser sums prompt+completion tokens across a user's rows. No rows
// sums to zero.
func (r *TokenUsageRepository) TotalByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&tokenusage.TokenUsage{}).
		Select("COALESCE(SUM(prompt_token_count + candidates_token_count), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	return total, err
}

// TotalByUserAndModel sums prompt+completion tokens for one model.
func (r *TokenUsageRepository) TotalByUserAndModel(ctx context.Context, userID, model string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&tokenusage.TokenUsage{}).
		Select("COALESCE(SUM(prompt_token_count + candidates_token_count), 0)").
		Where("user_id = ? AND model = ?", userID, model).
		Scan(&total).Error
	return total, err
}

// DailyTotals returns per-day, per-model token totals within [start, end],
// ordered by day ascending.
func (r *TokenUsageRepository) DailyTotals(ctx context.Context, userID string, models []string, start, end time.Time) ([]tokenusage.DailyModelTotal, error) {
	var rows []tokenusage.DailyModelTotal
	err := r.db.WithContext(ctx).
		Model(&tokenusage.TokenUsage{}).
		Select(`
			DATE_TRUNC('day', timestamp) as date,
			model,
			SUM(prompt_token_count + candidates_token_count) as total_tokens
		`).
		Where("user_id = ? AND model IN ? AND timestamp >= ? AND timestamp <= ?", userID, models, start, end).
		Group("DATE_TRUNC('day', timestamp), model").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}
