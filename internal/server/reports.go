package server

import (
	"net/http"

	"github.com/cleared-dev/tally/internal/aggregate"
)

func (s *Server) expensesReport(w http.ResponseWriter, r *http.Request) {
	totals := aggregate.ExpensesByCategory(s.store.All())
	if totals == nil {
		totals = []aggregate.CategoryTotal{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"expenses": totals,
	})
}

func (s *Server) monthlyReport(w http.ResponseWriter, r *http.Request) {
	months := aggregate.MonthlySeries(s.store.All())
	if months == nil {
		months = []aggregate.MonthTotal{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"months": months,
	})
}

func (s *Server) summaryReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"summary": aggregate.Summarize(s.store.All()),
	})
}
