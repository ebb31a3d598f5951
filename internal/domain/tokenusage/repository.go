package tokenusage

import (
	"context"
	"time"
)

// Repository defines the interface for usage ledger data access.
type Repository interface {
	// Create appends a new ledger row. Concurrent appends from parallel
	// adapter calls are independent rows and need no mutual exclusion.
	Create(ctx context.Context, usage *TokenUsage) error

	// ListByUser returns all rows for a user, newest first.
	ListByUser(ctx context.Context, userID string) ([]TokenUsage, error)

	// TotalByUser sums prompt+completion tokens across all of a user's rows.
	TotalByUser(ctx context.Context, userID string) (int64, error)

	// TotalByUserAndModel sums prompt+completion tokens for one model.
	TotalByUserAndModel(ctx context.Context, userID, model string) (int64, error)

	// DailyTotals returns per-day, per-model token totals for the given
	// models within [start, end], ordered by day ascending.
	DailyTotals(ctx context.Context, userID string, models []string, start, end time.Time) ([]DailyModelTotal, error)
}
