// Package rules assigns categories to imported transactions by matching
// description substrings.
package rules

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule maps a description pattern to a category.
type Rule struct {
	Pattern  string `yaml:"pattern"`
	Category string `yaml:"category"`
}

type file struct {
	Rules []Rule `yaml:"rules"`
}

// Set is an ordered list of rules; the first match wins.
type Set struct {
	rules []Rule
}

// New creates a Set. Rules with an empty pattern or category are ignored.
func New(rules []Rule) *Set {
	s := &Set{}
	for _, r := range rules {
		if strings.TrimSpace(r.Pattern) == "" || strings.TrimSpace(r.Category) == "" {
			continue
		}
		s.rules = append(s.rules, r)
	}
	return s
}

// Load reads a categorization-rules.yaml file. A missing file yields an
// empty Set.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	return New(f.Rules), nil
}

// Save writes rules to path.
func Save(path string, rules []Rule) error {
	if rules == nil {
		rules = []Rule{}
	}
	data, err := yaml.Marshal(file{Rules: rules})
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}

// Categorize returns the category of the first rule whose pattern occurs in
// description, ignoring case.
func (s *Set) Categorize(description string) (string, bool) {
	if s == nil {
		return "", false
	}
	desc := strings.ToLower(description)
	for _, r := range s.rules {
		if strings.Contains(desc, strings.ToLower(r.Pattern)) {
			return r.Category, true
		}
	}
	return "", false
}

// Rules returns a copy of the rules in order.
func (s *Set) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}
