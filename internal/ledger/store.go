// Package ledger holds the in-memory transaction list and category set.
package ledger

import (
	"sort"
	"sync"

	"github.com/cleared-dev/tally/internal/categories"
	"github.com/cleared-dev/tally/internal/model"
)

// Store is the ledger: transactions in insertion order plus the category set.
// It is safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	txns       []model.Transaction
	categories *categories.Set
}

// NewStore creates a Store seeded with txns. A nil cats uses the default set.
func NewStore(txns []model.Transaction, cats *categories.Set) *Store {
	if cats == nil {
		cats = categories.DefaultSet()
	}
	s := &Store{categories: cats}
	s.txns = append(s.txns, txns...)
	return s
}

// Add validates tx and appends it.
func (s *Store) Add(tx model.Transaction) error {
	if err := check(tx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns = append(s.txns, tx)
	return nil
}

// AddAll appends every valid transaction in txs, preserving order, and
// returns how many were appended. Invalid ones are skipped.
func (s *Store) AddAll(txs []model.Transaction) int {
	valid := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if len(Validate(tx)) == 0 {
			valid = append(valid, tx)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns = append(s.txns, valid...)
	return len(valid)
}

// Delete removes the first transaction equal to tx. It reports whether one
// was removed.
func (s *Store) Delete(tx model.Transaction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.txns {
		if t.Equal(tx) {
			s.txns = append(s.txns[:i:i], s.txns[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether a transaction equal to tx is in the ledger.
func (s *Store) Contains(tx model.Transaction) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.txns {
		if t.Equal(tx) {
			return true
		}
	}
	return false
}

// All returns a copy of the transactions in insertion order.
func (s *Store) All() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Transaction, len(s.txns))
	copy(out, s.txns)
	return out
}

// Sorted returns a copy ordered newest first. Transactions with unparseable
// dates keep their relative order after all dated ones.
func (s *Store) Sorted() []model.Transaction {
	out := s.All()
	SortByDateDesc(out)
	return out
}

// Len returns the number of transactions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.txns)
}

// Categories returns the category names in order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.All()
}

// AddCategory appends name to the category set. It reports false for blank
// or already present names.
func (s *Store) AddCategory(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.Add(name)
}

// HasCategory reports whether name is a known category.
func (s *Store) HasCategory(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.Contains(name)
}

// SortByDateDesc sorts txns newest first in place.
func SortByDateDesc(txns []model.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		di, iok := txns[i].ParsedDate()
		dj, jok := txns[j].ParsedDate()
		switch {
		case iok && jok:
			return di.After(dj)
		case iok:
			return true
		default:
			return false
		}
	})
}
