package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func tx(date, desc, amount, category string) model.Transaction {
	return model.Transaction{Date: date, Description: desc, Amount: decimal.RequireFromString(amount), Category: category}
}

func TestEmpty(t *testing.T) {
	assert.Empty(t, ExpensesByCategory(nil))
	assert.Empty(t, MonthlySeries(nil))

	s := Summarize(nil)
	assert.Equal(t, 0, s.Count)
	assert.True(t, s.Net.IsZero())
}

func TestWorkedExample(t *testing.T) {
	txns := []model.Transaction{
		tx("2024-01-05", "Coffee", "-4.50", "Office Supplies"),
		tx("2024-01-10", "Invoice Paid", "1200", "Sales Revenue"),
	}

	exp := ExpensesByCategory(txns)
	require.Len(t, exp, 1)
	assert.Equal(t, "Office Supplies", exp[0].Category)
	assert.Equal(t, "4.50", exp[0].Total.StringFixed(2))

	series := MonthlySeries(txns)
	require.Len(t, series, 1)
	assert.Equal(t, "2024-01", series[0].Month)
	assert.Equal(t, "1200.00", series[0].Revenue.StringFixed(2))
	assert.Equal(t, "4.50", series[0].Expenses.StringFixed(2))
	assert.Equal(t, "1195.50", series[0].Net().StringFixed(2))
}

func TestExpensesByCategory(t *testing.T) {
	txns := []model.Transaction{
		tx("2024-02-01", "Rent", "-900", "Rent Expense"),
		tx("2024-01-05", "Coffee", "-4.50", "Office Supplies"),
		tx("2024-01-10", "Invoice", "1200", "Sales Revenue"),
		tx("2024-01-12", "Paper", "-10.25", "Office Supplies"),
		tx("bad date", "Refund", "-1", "Rent Expense"),
	}

	got := ExpensesByCategory(txns)
	require.Len(t, got, 2, "revenue-only categories are absent")
	assert.Equal(t, "Rent Expense", got[0].Category, "first-appearance order")
	assert.Equal(t, "901.00", got[0].Total.StringFixed(2), "unparseable dates still count")
	assert.Equal(t, "Office Supplies", got[1].Category)
	assert.Equal(t, "14.75", got[1].Total.StringFixed(2))
}

func TestExpensesByCategory_MatchesAbsoluteSum(t *testing.T) {
	txns := []model.Transaction{
		tx("2024-01-01", "a", "-1.10", "A"),
		tx("2024-01-02", "b", "-2.20", "B"),
		tx("2024-01-03", "c", "3.30", "A"),
		tx("2024-01-04", "d", "-4.40", "A"),
	}
	want := decimal.Zero
	for _, x := range txns {
		if x.Amount.IsNegative() {
			want = want.Add(x.Amount.Abs())
		}
	}
	got := decimal.Zero
	for _, ct := range ExpensesByCategory(txns) {
		got = got.Add(ct.Total)
	}
	assert.True(t, want.Equal(got))
}

func TestMonthlySeries(t *testing.T) {
	txns := []model.Transaction{
		tx("2024-03-02", "c", "-30", "X"),
		tx("2023-12-31", "a", "100", "X"),
		tx("2024-01-15", "b", "-20", "X"),
		tx("nope", "skip", "-1000", "X"),
		tx("2024-01-20", "b2", "50", "X"),
		tx("2024-01-21", "zero", "0", "X"),
	}

	got := MonthlySeries(txns)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"2023-12", "2024-01", "2024-03"}, []string{got[0].Month, got[1].Month, got[2].Month})

	assert.Equal(t, "100.00", got[0].Revenue.StringFixed(2))
	assert.True(t, got[0].Expenses.IsZero())

	assert.Equal(t, "50.00", got[1].Revenue.StringFixed(2))
	assert.Equal(t, "20.00", got[1].Expenses.StringFixed(2))

	assert.True(t, got[2].Revenue.IsZero())
	assert.Equal(t, "30.00", got[2].Expenses.StringFixed(2))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]model.Transaction{
		tx("2024-01-05", "Coffee", "-4.50", "Office Supplies"),
		tx("2024-01-10", "Invoice Paid", "1200", "Sales Revenue"),
		tx("2024-02-01", "Rent", "-900", "Rent Expense"),
	})
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, "1200.00", s.Revenue.StringFixed(2))
	assert.Equal(t, "904.50", s.Expenses.StringFixed(2))
	assert.Equal(t, "295.50", s.Net.StringFixed(2))
}
