package core

import "github.com/shopspring/decimal"

// TrendBucket is one calendar month's aggregated total within the
// six-month trend series.
type TrendBucket struct {
	Year  int             `json:"year"`
	Month int             `json:"month"` // 1-12
	Label string          `json:"label"` // month abbreviation, e.g. "Jan"
	Total decimal.Decimal `json:"total"`
}

// BudgetStatus reports today's spend against the configured daily limit.
type BudgetStatus struct {
	Enabled bool            `json:"enabled"` // false when the limit is zero or negative
	Spent   decimal.Decimal `json:"spent"`
	Limit   decimal.Decimal `json:"limit"`
	Ratio   float64         `json:"ratio"` // spent/limit, capped at 1.0
	Over    bool            `json:"over"`
}
