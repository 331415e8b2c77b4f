package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// GenericParser reads comma-separated files whose first line names the
// columns. The header must include date, description, amount and category in
// any order and case; other columns are ignored. Fields are split on every
// comma: quoting is not supported.
type GenericParser struct{}

const (
	fieldDate        = "date"
	fieldDescription = "description"
	fieldAmount      = "amount"
	fieldCategory    = "category"
)

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse maps each data line onto the header by position. Empty lines are
// ignored. Lines missing a required field, or whose amount is not a non-zero
// number, are skipped. A malformed line never affects the lines after it.
func (p *GenericParser) Parse(r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("reading CSV: %w", err)
	}

	lines := splitLines(string(data))
	if len(lines) < 2 {
		return Result{}, nil
	}

	header := strings.Split(lines[0], ",")
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var res Result
	for _, line := range lines[1:] {
		tx, ok := mapRow(header, strings.Split(line, ","))
		if !ok {
			res.Skipped++
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}
	return res, nil
}

// splitLines splits on LF or CRLF and drops empty lines.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func mapRow(header, rec []string) (model.Transaction, bool) {
	fields := make(map[string]string, len(header))
	for i, h := range header {
		v := ""
		if i < len(rec) {
			v = strings.TrimSpace(rec[i])
		}
		fields[h] = v
	}

	date := fields[fieldDate]
	desc := fields[fieldDescription]
	category := fields[fieldCategory]
	if date == "" || desc == "" || category == "" || fields[fieldAmount] == "" {
		return model.Transaction{}, false
	}

	amount, err := decimal.NewFromString(fields[fieldAmount])
	if err != nil || amount.IsZero() {
		return model.Transaction{}, false
	}

	return model.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Category:    category,
	}, true
}
