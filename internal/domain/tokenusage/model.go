package tokenusage

import (
	"time"

	"github.com/shopspring/decimal"
)

// TokenUsage is one append-only ledger row, written once per model
// invocation. Failed calls still produce a row with zero counts.
type TokenUsage struct {
	ID               int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           string          `gorm:"column:user_id;not null;index" json:"user_id"`
	Model            string          `gorm:"column:model;not null;index" json:"model"`
	PromptTokens     int             `gorm:"column:prompt_token_count;not null;default:0" json:"prompt_token_count"`
	CompletionTokens int             `gorm:"column:candidates_token_count;not null;default:0" json:"candidates_token_count"`
	TotalTokens      int             `gorm:"column:total_tokens;not null;default:0" json:"total_tokens"`
	EstimatedCostUSD decimal.Decimal `gorm:"column:estimated_cost_usd;type:decimal(10,6)" json:"estimated_cost_usd"`
	CreatedAt        time.Time       `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
}

// TableName returns the table name for TokenUsage.
func (TokenUsage) TableName() string {
	return "token_usage"
}

// DailyModelTotal is one (day, model) aggregation row.
type DailyModelTotal struct {
	Date        time.Time `json:"date"`
	Model       string    `json:"model"`
	TotalTokens int64     `json:"total_tokens"`
}

// DaySummary groups per-model totals for a single day, date rendered as
// DD-MM-YYYY for the dashboard chart.
type DaySummary struct {
	Date   string           `json:"date"`
	Totals map[string]int64 `json:"totals"`
}

// Model pricing in USD per token. The local self-hosted model is free,
// so only hosted models appear here.
var modelPricing = map[string]struct {
	promptPrice     decimal.Decimal
	completionPrice decimal.Decimal
}{
	"gemini-2.0-flash": {decimal.NewFromFloat(0.0000001), decimal.NewFromFloat(0.0000004)},
	"gemini-1.5-flash": {decimal.NewFromFloat(0.000000075), decimal.NewFromFloat(0.0000003)},
}

// CalculateCost estimates the USD cost of a call. Unknown models cost
// nothing.
func CalculateCost(model string, promptTokens, completionTokens int) decimal.Decimal {
	pricing, ok := modelPricing[model]
	if !ok {
		return decimal.Zero
	}

	promptCost := pricing.promptPrice.Mul(decimal.NewFromInt(int64(promptTokens)))
	completionCost := pricing.completionPrice.Mul(decimal.NewFromInt(int64(completionTokens)))

	return promptCost.Add(completionCost)
}
