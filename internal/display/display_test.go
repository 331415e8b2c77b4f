package display

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2024-01-05", "01/05/2024"},
		{"2024-12-31", "12/31/2024"},
		{"1/5/2024", "01/05/2024"},
		{"next tuesday", "next tuesday"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDate(tt.in), "FormatDate(%q)", tt.in)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"-4.50", "-$4.50"},
		{"1200", "$1,200.00"},
		{"1234567.891", "$1,234,567.89"},
		{"0", "$0.00"},
		{"-0.001", "$0.00"},
		{"999.995", "$1,000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in)), "FormatAmount(%s)", tt.in)
	}
}

func TestFormatCurrency_Symbol(t *testing.T) {
	assert.Equal(t, "-€12.30", FormatCurrency(decimal.RequireFromString("-12.3"), "€"))
}

func TestRows(t *testing.T) {
	rows := Rows([]model.Transaction{
		{Date: "2024-01-05", Description: "Coffee", Amount: decimal.RequireFromString("-4.50"), Category: "Office Supplies"},
		{Date: "whenever", Description: "Gift", Amount: decimal.RequireFromString("25"), Category: "Sales Revenue"},
	}, "$")
	require.Len(t, rows, 2)
	assert.Equal(t, "01/05/2024", rows[0].DisplayDate)
	assert.Equal(t, "-$4.50", rows[0].DisplayAmount)
	assert.Equal(t, "Coffee", rows[0].Description)
	assert.Equal(t, "whenever", rows[1].DisplayDate)
	assert.Equal(t, "$25.00", rows[1].DisplayAmount)
}
