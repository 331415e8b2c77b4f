// Package reconcile implements the scripted bank reconciliation wizard:
// import, match, unmatched, summary.
package reconcile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/categories"
	"github.com/cleared-dev/tally/internal/model"
)

// Step is a wizard stage. Steps advance linearly.
type Step int

const (
	StepImport Step = iota
	StepMatch
	StepUnmatched
	StepSummary
)

var stepNames = [...]string{"import", "match", "unmatched", "summary"}

func (s Step) String() string {
	if s < StepImport || s > StepSummary {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

// MatchWindow is how far apart a bank entry and a ledger transaction may be
// dated and still be suggested as a match.
const MatchWindow = 3 * 24 * time.Hour

var (
	ErrUnknownEntry    = errors.New("unknown bank entry")
	ErrAlreadyResolved = errors.New("bank entry already resolved")
	ErrWrongStep       = errors.New("operation not allowed at this step")
	ErrNotInLedger     = errors.New("transaction not in ledger")
	ErrAlreadyLinked   = errors.New("transaction already linked to another bank entry")
)

// Ledger is the part of ledger.Store the wizard needs.
type Ledger interface {
	All() []model.Transaction
	Add(tx model.Transaction) error
}

// Summary reports the reconciliation outcome.
type Summary struct {
	Entries         int             `json:"entries"`
	Matched         int             `json:"matched"`
	Added           int             `json:"added"`
	Unmatched       int             `json:"unmatched"`
	StatementTotal  decimal.Decimal `json:"statement_total"`
	ResolvedTotal   decimal.Decimal `json:"resolved_total"`
	UnresolvedTotal decimal.Decimal `json:"unresolved_total"`
	Complete        bool            `json:"complete"`
}

// Wizard walks a bank statement against a ledger. It is safe for
// concurrent use.
type Wizard struct {
	mu        sync.Mutex
	ledger    Ledger
	statement []model.BankEntry
	byID      map[string]int
	step      Step
	matches   map[string]model.Match
	order     []string
}

// New creates a wizard at the import step.
func New(l Ledger, statement []model.BankEntry) *Wizard {
	byID := make(map[string]int, len(statement))
	for i, e := range statement {
		byID[e.ID] = i
	}
	return &Wizard{
		ledger:    l,
		statement: statement,
		byID:      byID,
		matches:   make(map[string]model.Match),
	}
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Next advances one step.
func (w *Wizard) Next() (Step, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepSummary {
		return w.step, fmt.Errorf("%w: already at %s", ErrWrongStep, w.step)
	}
	w.step++
	return w.step, nil
}

// Back returns to the previous step. Resolutions are kept.
func (w *Wizard) Back() (Step, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepImport {
		return w.step, fmt.Errorf("%w: already at %s", ErrWrongStep, w.step)
	}
	w.step--
	return w.step, nil
}

// Reset clears all resolutions and returns to the import step. Transactions
// already added to the ledger stay there.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepImport
	w.matches = make(map[string]model.Match)
	w.order = nil
}

// Statement returns the bank entries under reconciliation.
func (w *Wizard) Statement() []model.BankEntry {
	out := make([]model.BankEntry, len(w.statement))
	copy(out, w.statement)
	return out
}

// Match links a bank entry to an existing ledger transaction. Only allowed
// at the match step. Amounts are not adjusted.
func (w *Wizard) Match(bankID string, tx model.Transaction) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepMatch {
		return fmt.Errorf("%w: match at %s", ErrWrongStep, w.step)
	}
	if _, err := w.unresolved(bankID); err != nil {
		return err
	}
	ledger := w.ledger.All()
	present := countEqual(ledger, tx)
	if present == 0 {
		return ErrNotInLedger
	}
	if w.claimed(tx) >= present {
		return ErrAlreadyLinked
	}
	w.resolve(model.Match{BankEntryID: bankID, Transaction: tx, Resolution: model.ResolutionMatched})
	return nil
}

// Add appends a bank entry to the ledger as a new transaction. A blank
// category files it under categories.Uncategorized. Allowed at the match and
// unmatched steps.
func (w *Wizard) Add(bankID, category string) (model.Transaction, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepMatch && w.step != StepUnmatched {
		return model.Transaction{}, fmt.Errorf("%w: add at %s", ErrWrongStep, w.step)
	}
	entry, err := w.unresolved(bankID)
	if err != nil {
		return model.Transaction{}, err
	}
	if strings.TrimSpace(category) == "" {
		category = categories.Uncategorized
	}
	tx := entry.AsTransaction(category)
	if err := w.ledger.Add(tx); err != nil {
		return model.Transaction{}, fmt.Errorf("adding %s: %w", bankID, err)
	}
	w.resolve(model.Match{BankEntryID: bankID, Transaction: tx, Resolution: model.ResolutionAdded})
	return tx, nil
}

// Suggest returns unclaimed ledger transactions with the same amount as the
// bank entry, dated within MatchWindow, closest date first.
func (w *Wizard) Suggest(bankID string) ([]model.Transaction, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	i, ok := w.byID[bankID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntry, bankID)
	}
	return w.suggest(w.statement[i], w.ledger.All()), nil
}

// AutoMatch links every unresolved entry that has exactly one suggestion.
// Only allowed at the match step. It returns the new links.
func (w *Wizard) AutoMatch() ([]model.Match, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepMatch {
		return nil, fmt.Errorf("%w: auto-match at %s", ErrWrongStep, w.step)
	}
	ledger := w.ledger.All()
	var made []model.Match
	for _, e := range w.statement {
		if _, done := w.matches[e.ID]; done {
			continue
		}
		cands := w.suggest(e, ledger)
		if len(cands) != 1 {
			continue
		}
		m := model.Match{BankEntryID: e.ID, Transaction: cands[0], Resolution: model.ResolutionMatched}
		w.resolve(m)
		made = append(made, m)
	}
	return made, nil
}

// Matches returns resolutions in the order they were made.
func (w *Wizard) Matches() []model.Match {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]model.Match, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.matches[id])
	}
	return out
}

// Unmatched returns statement entries not yet matched or added.
func (w *Wizard) Unmatched() []model.BankEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []model.BankEntry
	for _, e := range w.statement {
		if _, done := w.matches[e.ID]; !done {
			out = append(out, e)
		}
	}
	return out
}

// Summary totals the current state.
func (w *Wizard) Summary() Summary {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := Summary{
		Entries:         len(w.statement),
		StatementTotal:  decimal.Zero,
		ResolvedTotal:   decimal.Zero,
		UnresolvedTotal: decimal.Zero,
	}
	for _, e := range w.statement {
		s.StatementTotal = s.StatementTotal.Add(e.Amount)
		m, done := w.matches[e.ID]
		if !done {
			s.Unmatched++
			s.UnresolvedTotal = s.UnresolvedTotal.Add(e.Amount)
			continue
		}
		s.ResolvedTotal = s.ResolvedTotal.Add(e.Amount)
		switch m.Resolution {
		case model.ResolutionMatched:
			s.Matched++
		case model.ResolutionAdded:
			s.Added++
		}
	}
	s.Complete = s.Unmatched == 0
	return s
}

func (w *Wizard) unresolved(bankID string) (model.BankEntry, error) {
	i, ok := w.byID[bankID]
	if !ok {
		return model.BankEntry{}, fmt.Errorf("%w: %s", ErrUnknownEntry, bankID)
	}
	if _, done := w.matches[bankID]; done {
		return model.BankEntry{}, fmt.Errorf("%w: %s", ErrAlreadyResolved, bankID)
	}
	return w.statement[i], nil
}

func (w *Wizard) resolve(m model.Match) {
	w.matches[m.BankEntryID] = m
	w.order = append(w.order, m.BankEntryID)
}

// claimed counts bank entries already linked to transactions equal to tx.
func (w *Wizard) claimed(tx model.Transaction) int {
	n := 0
	for _, m := range w.matches {
		if m.Transaction.Equal(tx) {
			n++
		}
	}
	return n
}

func (w *Wizard) suggest(e model.BankEntry, ledger []model.Transaction) []model.Transaction {
	bankDate, ok := model.ParseDate(e.Date)
	if !ok {
		return nil
	}

	type cand struct {
		tx   model.Transaction
		dist time.Duration
	}
	var cands []cand
	seen := make(map[int]bool)
	for i, tx := range ledger {
		if seen[i] || !tx.Amount.Equal(e.Amount) {
			continue
		}
		d, ok := tx.ParsedDate()
		if !ok {
			continue
		}
		dist := d.Sub(bankDate)
		if dist < 0 {
			dist = -dist
		}
		if dist > MatchWindow {
			continue
		}
		// Identical ledger rows are offered once, and only while some copy
		// is still unclaimed.
		copies := 0
		for j := i; j < len(ledger); j++ {
			if ledger[j].Equal(tx) {
				seen[j] = true
				copies++
			}
		}
		if w.claimed(tx) >= copies {
			continue
		}
		cands = append(cands, cand{tx: tx, dist: dist})
	}

	sort.SliceStable(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	out := make([]model.Transaction, len(cands))
	for i, c := range cands {
		out[i] = c.tx
	}
	return out
}

func countEqual(txns []model.Transaction, tx model.Transaction) int {
	n := 0
	for _, t := range txns {
		if t.Equal(tx) {
			n++
		}
	}
	return n
}
