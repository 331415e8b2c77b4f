package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	got, err := NewTransaction(" 2024-01-05 ", "Coffee ", "-4.50", " Office Supplies")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", got.Date)
	assert.Equal(t, "Coffee", got.Description)
	assert.Equal(t, "Office Supplies", got.Category)
	assert.Equal(t, "-4.50", got.Amount.StringFixed(2))
}

func TestNewTransaction_Errors(t *testing.T) {
	tests := []struct {
		date, desc, amount, category string
		want                         string
	}{
		{"2024-01-05", "Coffee", "", "Office Supplies", "amount: required"},
		{"2024-01-05", "Coffee", "four", "Office Supplies", "is not a number"},
		{"", "Coffee", "1", "Office Supplies", "date: required"},
		{"2024-01-05", "", "1", "", "description: required; category: required"},
	}
	for _, tt := range tests {
		_, err := NewTransaction(tt.date, tt.desc, tt.amount, tt.category)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalid)
		assert.Contains(t, err.Error(), tt.want)
	}
}

func TestValidate(t *testing.T) {
	errs := Validate(tx("2024-01-05", "Coffee", "-1", "Office Supplies"))
	assert.Empty(t, errs)

	errs = Validate(tx("", "", "0", ""))
	require.Len(t, errs, 3)
	assert.Equal(t, "date", errs[0].Field)
	assert.Equal(t, "description", errs[1].Field)
	assert.Equal(t, "category", errs[2].Field)
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount(" 1200 ")
	require.NoError(t, err)
	assert.Equal(t, "1200.00", d.StringFixed(2))

	_, err = ParseAmount("$12")
	assert.Error(t, err)
}
