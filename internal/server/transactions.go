package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/activity"
	"github.com/cleared-dev/tally/internal/display"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

// transactionRequest is the body of POST /api/transactions. Amount accepts
// a JSON number or a quoted decimal.
type transactionRequest struct {
	Date        string           `json:"date"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    string           `json:"category"`
}

// listTransactions handles GET /api/transactions, newest first.
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	rows := display.Rows(s.store.Sorted(), s.symbol)
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": rows,
	})
}

// createTransaction handles POST /api/transactions.
func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Amount == nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "amount: required")
		return
	}

	tx := model.Transaction{
		Date:        strings.TrimSpace(req.Date),
		Description: strings.TrimSpace(req.Description),
		Amount:      *req.Amount,
		Category:    strings.TrimSpace(req.Category),
	}
	if err := s.store.Add(tx); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", validationMessage(err))
		return
	}
	s.persist(activity.ActionAdd, fmt.Sprintf("%s %s %s", tx.Date, tx.Description, tx.Amount))

	writeJSON(w, http.StatusCreated, map[string]any{
		"transaction": tx,
	})
}

// deleteTransaction handles DELETE /api/transactions. The body is the
// transaction to remove; the first equal entry goes.
func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	var tx model.Transaction
	if !decodeJSON(w, r, &tx) {
		return
	}
	if !s.store.Delete(tx) {
		writeJSONError(w, http.StatusNotFound, "not_found", "Transaction not found")
		return
	}
	s.persist(activity.ActionDelete, fmt.Sprintf("%s %s %s", tx.Date, tx.Description, tx.Amount))
	w.WriteHeader(http.StatusNoContent)
}

// importTransactions handles POST /api/transactions/import?format=. The
// request body is the CSV file.
func (s *Server) importTransactions(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = s.defaultFormat
	}
	p := s.registry.Get(format)
	if p == nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter",
			fmt.Sprintf("Unknown format %q (available: %s)", format, strings.Join(s.registry.Formats(), ", ")))
		return
	}

	res, err := p.Parse(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	n := s.store.AddAll(res.Transactions)
	skipped := res.Skipped + len(res.Transactions) - n
	s.log.Debug().Str("format", p.Format()).Int("imported", n).Int("skipped", skipped).Msg("import")
	if n > 0 {
		s.persist(activity.ActionImport, fmt.Sprintf("%d transactions (%s)", n, p.Format()))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"imported": n,
		"skipped":  skipped,
	})
}

// listCategories handles GET /api/categories.
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": s.store.Categories(),
	})
}

// createCategory handles POST /api/categories.
func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing name")
		return
	}
	if !s.store.AddCategory(name) {
		writeJSONError(w, http.StatusConflict, "conflict", fmt.Sprintf("Category %q already exists", name))
		return
	}
	s.persist(activity.ActionAddCategory, name)

	writeJSON(w, http.StatusCreated, map[string]any{
		"categories": s.store.Categories(),
	})
}

func validationMessage(err error) string {
	if errors.Is(err, ledger.ErrInvalid) {
		return strings.TrimPrefix(err.Error(), ledger.ErrInvalid.Error()+": ")
	}
	return err.Error()
}
