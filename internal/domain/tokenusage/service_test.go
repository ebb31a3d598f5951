package tokenusage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockUsageRepo captures writes and serves canned aggregates.
type mockUsageRepo struct {
	created     []*TokenUsage
	dailyTotals []DailyModelTotal
}

func (m *mockUsageRepo) Create(_ context.Context, usage *TokenUsage) error {
	m.created = append(m.created, usage)
	return nil
}

func (m *mockUsageRepo) ListByUser(_ context.Context, _ string) ([]TokenUsage, error) {
	return nil, nil
}

func (m *mockUsageRepo) TotalByUser(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

func (m *mockUsageRepo) TotalByUserAndModel(_ context.Context, _, _ string) (int64, error) {
	return 0, nil
}

func (m *mockUsageRepo) DailyTotals(_ context.Context, _ string, _ []string, _, _ time.Time) ([]DailyModelTotal, error) {
	return m.dailyTotals, nil
}

func TestRecordComputesDerivedFields(t *testing.T) {
	repo := &mockUsageRepo{}
	svc := NewService(repo)

	err := svc.Record(context.Background(), "user-1", "gemini-2.0-flash", 100, 50)

	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	row := repo.created[0]
	assert.Equal(t, 150, row.TotalTokens)
	assert.True(t, row.EstimatedCostUSD.GreaterThan(decimal.Zero))
}

func TestRecordZeroCountsForFailedCall(t *testing.T) {
	repo := &mockUsageRepo{}
	svc := NewService(repo)

	err := svc.Record(context.Background(), "user-1", "llama3.2:latest", 0, 0)

	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	row := repo.created[0]
	assert.Zero(t, row.TotalTokens)
	assert.True(t, row.EstimatedCostUSD.IsZero())
}

func TestCalculateCostUnknownModelIsFree(t *testing.T) {
	assert.True(t, CalculateCost("llama3.2:latest", 1000, 1000).IsZero())
}

func TestLastDaysSummarySeedsBothModelSlots(t *testing.T) {
	day := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	repo := &mockUsageRepo{
		dailyTotals: []DailyModelTotal{
			{Date: day, Model: "gemini-2.0-flash", TotalTokens: 120},
			{Date: day.AddDate(0, 0, 1), Model: "llama3.2:latest", TotalTokens: 40},
		},
	}
	svc := NewService(repo)

	models := []string{"gemini-2.0-flash", "llama3.2:latest"}
	summary, err := svc.LastDaysSummary(context.Background(), "user-1", 10, models)

	require.NoError(t, err)
	require.Len(t, summary, 2)

	// Dates come out ascending, formatted day-first.
	assert.Equal(t, "05-03-2025", summary[0].Date)
	assert.Equal(t, "06-03-2025", summary[1].Date)

	// Each day carries a slot for every requested model, zero when silent.
	assert.Equal(t, int64(120), summary[0].Totals["gemini-2.0-flash"])
	assert.Equal(t, int64(0), summary[0].Totals["llama3.2:latest"])
	assert.Equal(t, int64(0), summary[1].Totals["gemini-2.0-flash"])
	assert.Equal(t, int64(40), summary[1].Totals["llama3.2:latest"])
}

func TestLastDaysSummaryEmptyLedger(t *testing.T) {
	svc := NewService(&mockUsageRepo{})

	summary, err := svc.LastDaysSummary(context.Background(), "user-1", 10, []string{"gemini-2.0-flash"})

	require.NoError(t, err)
	assert.Empty(t, summary)
}
