package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// MockStatement returns the fixed demo bank statement. There is no bank
// connectivity; every wizard run reconciles against these entries.
func MockStatement() []model.BankEntry {
	return []model.BankEntry{
		{ID: "stmt-001", Date: "2024-01-05", Description: "SQ *BLUE BOTTLE COFFEE", Amount: decimal.RequireFromString("-4.50")},
		{ID: "stmt-002", Date: "2024-01-10", Description: "ACH DEPOSIT ACME CORP INV 1042", Amount: decimal.RequireFromString("1200.00")},
		{ID: "stmt-003", Date: "2024-01-15", Description: "ADOBE *CREATIVE CLOUD", Amount: decimal.RequireFromString("-54.99")},
		{ID: "stmt-004", Date: "2024-01-20", Description: "CITY OF SPRINGFIELD UTILITIES", Amount: decimal.RequireFromString("-132.40")},
		{ID: "stmt-005", Date: "2024-01-31", Description: "MONTHLY MAINTENANCE FEE", Amount: decimal.RequireFromString("-12.00")},
	}
}
