package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cleared-dev/tally/internal/activity"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/reconcile"
)

// wizardState is the body of every reconcile response.
type wizardState struct {
	Step      string            `json:"step"`
	Statement []model.BankEntry `json:"statement"`
	Matches   []model.Match     `json:"matches"`
	Unmatched []model.BankEntry `json:"unmatched"`
	Summary   reconcile.Summary `json:"summary"`
}

func (s *Server) state() wizardState {
	st := wizardState{
		Step:      s.wizard.Step().String(),
		Statement: s.wizard.Statement(),
		Matches:   s.wizard.Matches(),
		Unmatched: s.wizard.Unmatched(),
		Summary:   s.wizard.Summary(),
	}
	if st.Matches == nil {
		st.Matches = []model.Match{}
	}
	if st.Unmatched == nil {
		st.Unmatched = []model.BankEntry{}
	}
	return st
}

func (s *Server) reconcileState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) reconcileSuggestions(w http.ResponseWriter, r *http.Request) {
	txns, err := s.wizard.Suggest(chi.URLParam(r, "id"))
	if err != nil {
		writeWizardError(w, err)
		return
	}
	if txns == nil {
		txns = []model.Transaction{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"suggestions": txns,
	})
}

func (s *Server) reconcileNext(w http.ResponseWriter, r *http.Request) {
	if _, err := s.wizard.Next(); err != nil {
		writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) reconcileBack(w http.ResponseWriter, r *http.Request) {
	if _, err := s.wizard.Back(); err != nil {
		writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) reconcileReset(w http.ResponseWriter, r *http.Request) {
	s.wizard.Reset()
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) reconcileMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BankEntryID string            `json:"bank_entry_id"`
		Transaction model.Transaction `json:"transaction"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.wizard.Match(req.BankEntryID, req.Transaction); err != nil {
		writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) reconcileAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BankEntryID string `json:"bank_entry_id"`
		Category    string `json:"category"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	tx, err := s.wizard.Add(req.BankEntryID, req.Category)
	if err != nil {
		writeWizardError(w, err)
		return
	}
	s.persist(activity.ActionReconcile, fmt.Sprintf("add %s: %s %s", req.BankEntryID, tx.Description, tx.Amount))
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) reconcileAuto(w http.ResponseWriter, r *http.Request) {
	made, err := s.wizard.AutoMatch()
	if err != nil {
		writeWizardError(w, err)
		return
	}
	s.log.Debug().Int("matched", len(made)).Msg("auto-match")
	writeJSON(w, http.StatusOK, s.state())
}

func writeWizardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reconcile.ErrUnknownEntry), errors.Is(err, reconcile.ErrNotInLedger):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, reconcile.ErrAlreadyResolved),
		errors.Is(err, reconcile.ErrAlreadyLinked),
		errors.Is(err, reconcile.ErrWrongStep):
		writeJSONError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
	}
}
