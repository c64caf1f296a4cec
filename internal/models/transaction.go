package models

import (
	"github.com/shopspring/decimal"
)

// Transaction is the client-side copy of a server-owned bank statement row.
// Every field except Category is read-only on the client; Category may be
// changed through the category-update flow and is reconciled by refetch.
type Transaction struct {
	ID          int64           `json:"id"`
	Date        DateTime        `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	RawText     string          `json:"raw_text,omitempty"`
	CreatedAt   DateTime        `json:"created_at,omitempty"`
	UpdatedAt   DateTime        `json:"updated_at,omitempty"`
}
