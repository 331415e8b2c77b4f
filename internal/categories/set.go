package categories

import "strings"

// Set is an ordered, user-extensible list of category names.
// It is not safe for concurrent use; ledger.Store guards it.
type Set struct {
	names []string
	index map[string]struct{}
}

// NewSet creates a Set from names, dropping empty and repeated entries.
func NewSet(names []string) *Set {
	s := &Set{index: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// DefaultSet returns a Set holding Defaults().
func DefaultSet() *Set {
	return NewSet(Defaults())
}

// Add appends name. It reports false when name is blank or already present
// (exact string match).
func (s *Set) Add(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = struct{}{}
	s.names = append(s.names, name)
	return true
}

// Contains reports whether name is in the set.
func (s *Set) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// All returns a copy of the names in insertion order.
func (s *Set) All() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of categories.
func (s *Set) Len() int {
	return len(s.names)
}
