package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// ErrInvalid is wrapped by every error returned for a rejected transaction.
var ErrInvalid = errors.New("invalid transaction")

// ValidationError describes a single missing or malformed field.
type ValidationError struct {
	Field       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

// ValidationErrors is returned by Store.Add and NewTransaction when required
// fields are missing. It matches ErrInvalid and each ValidationError with
// errors.Is and errors.As.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return ErrInvalid.Error() + ": " + strings.Join(msgs, "; ")
}

func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(e)+1)
	errs = append(errs, ErrInvalid)
	for _, ve := range e {
		errs = append(errs, ve)
	}
	return errs
}

// Validate checks the fields a transaction needs to enter the ledger.
func Validate(tx model.Transaction) []ValidationError {
	var errs []ValidationError
	if strings.TrimSpace(tx.Date) == "" {
		errs = append(errs, ValidationError{Field: "date", Description: "required"})
	}
	if strings.TrimSpace(tx.Description) == "" {
		errs = append(errs, ValidationError{Field: "description", Description: "required"})
	}
	if strings.TrimSpace(tx.Category) == "" {
		errs = append(errs, ValidationError{Field: "category", Description: "required"})
	}
	return errs
}

// ParseAmount parses a signed decimal amount such as "-4.50" or "1200".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: amount: required", ErrInvalid)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount: %q is not a number", ErrInvalid, s)
	}
	return d, nil
}

// NewTransaction builds a transaction from raw form values, trimming each
// field and rejecting missing or non-numeric input.
func NewTransaction(date, description, amount, category string) (model.Transaction, error) {
	amt, err := ParseAmount(amount)
	if err != nil {
		return model.Transaction{}, err
	}
	tx := model.Transaction{
		Date:        strings.TrimSpace(date),
		Description: strings.TrimSpace(description),
		Amount:      amt,
		Category:    strings.TrimSpace(category),
	}
	if err := check(tx); err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}

func check(tx model.Transaction) error {
	if verrs := Validate(tx); len(verrs) > 0 {
		return ValidationErrors(verrs)
	}
	return nil
}
