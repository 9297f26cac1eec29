// Package stoplist provides a stopword TokenFilter.
package stoplist

import (
	"slices"
	"strings"
)

// Manager holds a case-insensitive stopword set.
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a new stoplist manager
func NewManager(initialStops []string) *Manager {
	m := &Manager{stops: make(map[string]struct{}, len(initialStops))}
	for _, s := range initialStops {
		m.Add(s)
	}
	return m
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[strings.ToLower(token)]
	return ok
}

// Keep implements bigram.TokenFilter.
func (m *Manager) Keep(token string) bool {
	return !m.IsStop(token)
}

// Add adds a token to the stoplist. Blank tokens are ignored.
func (m *Manager) Add(token string) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return
	}
	m.stops[token] = struct{}{}
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, strings.ToLower(token))
}

// All returns all stopwords, sorted.
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	slices.Sort(result)
	return result
}

// Len returns the number of stopwords.
func (m *Manager) Len() int {
	return len(m.stops)
}
