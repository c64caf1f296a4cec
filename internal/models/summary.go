package models

import "github.com/shopspring/decimal"

// MonthlySummaryEntry is one category's total for a single period.
type MonthlySummaryEntry struct {
	Category    Category        `json:"category"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// MonthlySummary is the server's aggregate for one (year, month) period.
// Month is the server-formatted period label, e.g. "2025-07".
type MonthlySummary struct {
	Month   string                `json:"month"`
	Summary []MonthlySummaryEntry `json:"summary"`
}
