package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MonthKeyFormat is the layout of a month key ("2024-01").
const MonthKeyFormat = "2006-01"

// dateLayouts are the date formats accepted from manual entry and CSV files,
// tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"2006-01-02T15:04:05Z07:00",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// Transaction is one ledger record.
type Transaction struct {
	Date        string          `json:"date"` // as entered; may be unparseable
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // negative = expense, positive = revenue
	Category    string          `json:"category"`
}

// Equal reports whether two transactions are structurally equal.
// Amounts compare by value, so "1200" equals "1200.00".
func (t Transaction) Equal(o Transaction) bool {
	return t.Date == o.Date &&
		t.Description == o.Description &&
		t.Category == o.Category &&
		t.Amount.Equal(o.Amount)
}

// IsExpense reports whether the transaction is an expense (negative amount).
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// IsRevenue reports whether the transaction is revenue (positive amount).
func (t Transaction) IsRevenue() bool {
	return t.Amount.IsPositive()
}

// ParsedDate parses Date. ok is false when the date is empty or unparseable.
func (t Transaction) ParsedDate() (time.Time, bool) {
	return ParseDate(t.Date)
}

// MonthKey returns "YYYY-MM" for the transaction date, or "" if unparseable.
func (t Transaction) MonthKey() string {
	d, ok := t.ParsedDate()
	if !ok {
		return ""
	}
	return d.Format(MonthKeyFormat)
}

// ParseDate parses a user-entered date string.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
