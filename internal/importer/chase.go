package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/categories"
	"github.com/cleared-dev/tally/internal/model"
)

// ChaseParser parses Chase bank checking CSV exports. Chase rows carry no
// category, so one is picked by the Categorizer.
type ChaseParser struct {
	Categorizer Categorizer
}

const (
	chaseDateFormat = "01/02/2006"
	ledgerDateFmt   = "2006-01-02"
	chaseNumFields  = 7
	chaseColDate    = 1
	chaseColDesc    = 2
	chaseColAmount  = 3
)

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV. Rows with a bad date or amount are skipped.
func (p *ChaseParser) Parse(r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = chaseNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("reading chase CSV: %w", err)
	}

	if len(records) <= 1 {
		return Result{}, nil
	}

	var res Result
	for _, rec := range records[1:] {
		tx, ok := p.parseRow(rec)
		if !ok {
			res.Skipped++
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}
	return res, nil
}

func (p *ChaseParser) parseRow(rec []string) (model.Transaction, bool) {
	date, err := time.Parse(chaseDateFormat, rec[chaseColDate])
	if err != nil {
		return model.Transaction{}, false
	}

	amount, err := decimal.NewFromString(rec[chaseColAmount])
	if err != nil || amount.IsZero() {
		return model.Transaction{}, false
	}

	desc := rec[chaseColDesc]
	if desc == "" {
		return model.Transaction{}, false
	}

	category := categories.Uncategorized
	if p.Categorizer != nil {
		if c, ok := p.Categorizer.Categorize(desc); ok {
			category = c
		}
	}

	return model.Transaction{
		Date:        date.Format(ledgerDateFmt),
		Description: desc,
		Amount:      amount,
		Category:    category,
	}, true
}
