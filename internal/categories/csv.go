package categories

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Header is the single-column header of categories.csv.
const Header = "category"

// ReadCategories reads categories.csv.
func ReadCategories(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading categories CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	names := make([]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		names = append(names, rec[0])
	}
	return names, nil
}

// WriteCategories writes categories.csv.
func WriteCategories(w io.Writer, names []string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{Header}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, n := range names {
		if err := cw.Write([]string{n}); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
