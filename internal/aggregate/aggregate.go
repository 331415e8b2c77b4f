// Package aggregate derives chart data from a transaction list. Every
// function recomputes from scratch.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// CategoryTotal is one slice of the expense breakdown.
type CategoryTotal struct {
	Category string          `json:"name"`
	Total    decimal.Decimal `json:"value"`
}

// MonthTotal is one point of the revenue/expense trend.
type MonthTotal struct {
	Month    string          `json:"month"` // "YYYY-MM"
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
}

// Net returns revenue minus expenses for the month.
func (m MonthTotal) Net() decimal.Decimal {
	return m.Revenue.Sub(m.Expenses)
}

// Summary totals the whole ledger.
type Summary struct {
	Count    int             `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// ExpensesByCategory sums the absolute value of every negative amount per
// category, in order of first appearance. Categories without expenses are
// absent.
func ExpensesByCategory(txns []model.Transaction) []CategoryTotal {
	idx := make(map[string]int)
	var out []CategoryTotal
	for _, tx := range txns {
		if !tx.IsExpense() {
			continue
		}
		i, ok := idx[tx.Category]
		if !ok {
			i = len(out)
			idx[tx.Category] = i
			out = append(out, CategoryTotal{Category: tx.Category, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(tx.Amount.Abs())
	}
	return out
}

// MonthlySeries returns one entry per month present, ascending by month key.
// Transactions whose date does not parse are skipped.
func MonthlySeries(txns []model.Transaction) []MonthTotal {
	byMonth := make(map[string]*MonthTotal)
	for _, tx := range txns {
		key := tx.MonthKey()
		if key == "" {
			continue
		}
		m, ok := byMonth[key]
		if !ok {
			m = &MonthTotal{Month: key, Revenue: decimal.Zero, Expenses: decimal.Zero}
			byMonth[key] = m
		}
		switch {
		case tx.IsRevenue():
			m.Revenue = m.Revenue.Add(tx.Amount)
		case tx.IsExpense():
			m.Expenses = m.Expenses.Add(tx.Amount.Abs())
		}
	}

	out := make([]MonthTotal, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// Summarize totals revenue and expenses across all transactions.
func Summarize(txns []model.Transaction) Summary {
	s := Summary{Count: len(txns), Revenue: decimal.Zero, Expenses: decimal.Zero}
	for _, tx := range txns {
		switch {
		case tx.IsRevenue():
			s.Revenue = s.Revenue.Add(tx.Amount)
		case tx.IsExpense():
			s.Expenses = s.Expenses.Add(tx.Amount.Abs())
		}
	}
	s.Net = s.Revenue.Sub(s.Expenses)
	return s
}
