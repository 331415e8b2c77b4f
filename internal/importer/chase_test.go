package importer

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/categories"
	"github.com/cleared-dev/tally/internal/rules"
)

const chaseHeader = "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"

func parseChaseTestdata(t *testing.T, cat Categorizer) Result {
	t.Helper()
	data, err := os.ReadFile("../../testdata/chase_checking.csv")
	require.NoError(t, err)

	p := &ChaseParser{Categorizer: cat}
	res, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	return res
}

func TestChaseParser_Parse(t *testing.T) {
	res := parseChaseTestdata(t, nil)
	txns := res.Transactions
	require.Len(t, txns, 6)

	assert.Equal(t, "GITHUB *PRO SUBSCRIPTION", txns[0].Description)
	assert.Equal(t, "-4.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "2025-01-03", txns[0].Date)

	assert.Equal(t, "ACME CONSULTING INVOICE 1042", txns[3].Description)
	assert.True(t, txns[3].Amount.IsPositive())
	assert.Equal(t, "3500.00", txns[3].Amount.StringFixed(2))

	for _, tx := range txns {
		assert.Equal(t, categories.Uncategorized, tx.Category)
	}
}

func TestChaseParser_UsesRules(t *testing.T) {
	rs := rules.New([]rules.Rule{
		{Pattern: "github", Category: "Professional Services"},
		{Pattern: "service fee", Category: "Bank Fees"},
		{Pattern: "invoice", Category: "Sales Revenue"},
	})
	txns := parseChaseTestdata(t, rs).Transactions

	assert.Equal(t, "Professional Services", txns[0].Category)
	assert.Equal(t, categories.Uncategorized, txns[1].Category)
	assert.Equal(t, "Sales Revenue", txns[3].Category)
	assert.Equal(t, "Bank Fees", txns[5].Category)
}

func TestChaseParser_EmptyFile(t *testing.T) {
	res, err := (&ChaseParser{}).Parse(strings.NewReader(chaseHeader))
	require.NoError(t, err)
	assert.Nil(t, res.Transactions)
}

func TestChaseParser_SkipsBadRows(t *testing.T) {
	in := chaseHeader +
		"DEBIT,NOTADATE,desc,-4.00,ACH_DEBIT,100.00,\n" +
		"DEBIT,01/03/2025,desc,NOTANUMBER,ACH_DEBIT,100.00,\n" +
		"DEBIT,01/03/2025,desc,-4.00,ACH_DEBIT,100.00,\n"
	res, err := (&ChaseParser{}).Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Len(t, res.Transactions, 1)
	assert.Equal(t, 2, res.Skipped)
}

func TestChaseParser_WrongLayout(t *testing.T) {
	_, err := (&ChaseParser{}).Parse(strings.NewReader("date,description,amount,category\n2024-01-05,Coffee,-4.50,Office Supplies\n"))
	assert.Error(t, err)
}

func TestChaseParser_Format(t *testing.T) {
	assert.Equal(t, "chase", (&ChaseParser{}).Format())
}
