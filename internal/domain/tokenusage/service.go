package tokenusage

import (
	"context"
	"time"
)

// Service provides usage ledger business logic.
type Service struct {
	repo Repository
}

// NewService creates a new token usage service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends one ledger row for a model invocation. Zero counts are
// legal; a failed backend call still gets a row.
func (s *Service) Record(ctx context.Context, userID, model string, promptTokens, completionTokens int) error {
	usage := &TokenUsage{
		UserID:           userID,
		Model:            model,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
		EstimatedCostUSD: CalculateCost(model, promptTokens, completionTokens),
	}
	return s.repo.Create(ctx, usage)
}

// ListByUser returns the raw ledger rows for a user, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]TokenUsage, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Total returns the user's all-time token total. A user with no recorded
// calls totals zero; this is a summary, not a lookup.
func (s *Service) Total(ctx context.Context, userID string) (int64, error) {
	return s.repo.TotalByUser(ctx, userID)
}

// TotalByModel returns the user's all-time token total for one model.
func (s *Service) TotalByModel(ctx context.Context, userID, model string) (int64, error) {
	return s.repo.TotalByUserAndModel(ctx, userID, model)
}

// LastDaysSummary aggregates per-day totals for the given models over the
// trailing window, one entry per day that has data, ascending by day.
// Every entry carries a slot for each requested model so the chart always
// has both series.
func (s *Service) LastDaysSummary(ctx context.Context, userID string, days int, models []string) ([]DaySummary, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	rows, err := s.repo.DailyTotals(ctx, userID, models, start, end)
	if err != nil {
		return nil, err
	}

	var summaries []DaySummary
	index := make(map[string]int)
	for _, row := range rows {
		date := row.Date.Format("02-01-2006")
		i, ok := index[date]
		if !ok {
			totals := make(map[string]int64, len(models))
			for _, m := range models {
				totals[m] = 0
			}
			summaries = append(summaries, DaySummary{Date: date, Totals: totals})
			i = len(summaries) - 1
			index[date] = i
		}
		summaries[i].Totals[row.Model] = row.TotalTokens
	}

	return summaries, nil
}
