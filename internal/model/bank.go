package model

import (
	"github.com/shopspring/decimal"
)

// BankEntry is one line of a bank statement under reconciliation.
type BankEntry struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // negative = withdrawal, positive = deposit
}

// AsTransaction converts the entry into a ledger transaction in category.
func (b BankEntry) AsTransaction(category string) Transaction {
	return Transaction{
		Date:        b.Date,
		Description: b.Description,
		Amount:      b.Amount,
		Category:    category,
	}
}

// Resolution records how a bank entry was reconciled.
type Resolution string

const (
	ResolutionMatched Resolution = "matched"
	ResolutionAdded   Resolution = "added"
)

// Match links a bank entry to a ledger transaction. Linking never changes
// the ledger amount.
type Match struct {
	BankEntryID string      `json:"bank_entry_id"`
	Transaction Transaction `json:"transaction"`
	Resolution  Resolution  `json:"resolution"`
}
