// Package display renders ledger values the way the dashboard shows them.
package display

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// DefaultSymbol is the currency symbol used when none is configured.
const DefaultSymbol = "$"

const dateLayout = "01/02/2006"

// FormatDate renders a parseable date as MM/DD/YYYY. Anything else comes back
// unchanged.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	d, ok := model.ParseDate(s)
	if !ok {
		return s
	}
	return d.Format(dateLayout)
}

// FormatAmount renders d as US dollars, e.g. "-$4.50" or "$1,200.00".
func FormatAmount(d decimal.Decimal) string {
	return FormatCurrency(d, DefaultSymbol)
}

// FormatCurrency renders d with two decimals, thousands grouping and symbol.
func FormatCurrency(d decimal.Decimal, symbol string) string {
	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}
	f := d.Abs().Round(2).InexactFloat64()
	return sign + symbol + humanize.FormatFloat("#,###.##", f)
}

// Row is a transaction with its display strings.
type Row struct {
	model.Transaction
	DisplayDate   string `json:"display_date"`
	DisplayAmount string `json:"display_amount"`
}

// Rows renders txns in the order given.
func Rows(txns []model.Transaction, symbol string) []Row {
	out := make([]Row, len(txns))
	for i, tx := range txns {
		out[i] = Row{
			Transaction:   tx,
			DisplayDate:   FormatDate(tx.Date),
			DisplayAmount: FormatCurrency(tx.Amount, symbol),
		}
	}
	return out
}
