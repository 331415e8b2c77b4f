package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionEqual(t *testing.T) {
	a := Transaction{Date: "2024-01-10", Description: "Invoice Paid", Amount: decimal.RequireFromString("1200"), Category: "Sales Revenue"}
	b := a
	b.Amount = decimal.RequireFromString("1200.00")
	assert.True(t, a.Equal(b), "amounts compare by value")

	c := a
	c.Category = "Taxes"
	assert.False(t, a.Equal(c))

	d := a
	d.Date = "2024-01-11"
	assert.False(t, a.Equal(d))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input  string
		wantOK bool
		want   string
	}{
		{"2024-01-05", true, "2024-01-05"},
		{"01/05/2024", true, "2024-01-05"},
		{"1/5/2024", true, "2024-01-05"},
		{"2024/01/05", true, "2024-01-05"},
		{"Jan 5, 2024", true, "2024-01-05"},
		{" 2024-01-05 ", true, "2024-01-05"},
		{"", false, ""},
		{"not a date", false, ""},
		{"2024-13-01", false, ""},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.input)
		assert.Equal(t, tt.wantOK, ok, "ParseDate(%q)", tt.input)
		if tt.wantOK {
			assert.Equal(t, tt.want, got.Format("2006-01-02"), "ParseDate(%q)", tt.input)
		}
	}
}

func TestMonthKey(t *testing.T) {
	tx := Transaction{Date: "2024-03-31"}
	assert.Equal(t, "2024-03", tx.MonthKey())

	tx.Date = "garbage"
	assert.Equal(t, "", tx.MonthKey())
}

func TestExpenseRevenue(t *testing.T) {
	exp := Transaction{Amount: decimal.RequireFromString("-4.50")}
	rev := Transaction{Amount: decimal.RequireFromString("1200")}
	zero := Transaction{}

	assert.True(t, exp.IsExpense())
	assert.False(t, exp.IsRevenue())
	assert.True(t, rev.IsRevenue())
	assert.False(t, zero.IsExpense())
	assert.False(t, zero.IsRevenue())
}

func TestBankEntryAsTransaction(t *testing.T) {
	b := BankEntry{ID: "bank-1", Date: "2024-01-05", Description: "COFFEE", Amount: decimal.RequireFromString("-4.50")}
	tx := b.AsTransaction("Office Supplies")
	assert.Equal(t, "2024-01-05", tx.Date)
	assert.Equal(t, "COFFEE", tx.Description)
	assert.Equal(t, "Office Supplies", tx.Category)
	assert.True(t, tx.Amount.Equal(b.Amount))
}
