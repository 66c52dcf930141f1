// Package faq answers common questions by keyword lookup, bypassing the
// dialogue tree entirely.
package faq

import "strings"

// Answer is one FAQ response plus where it matched.
type Answer struct {
	Response       string
	Category       string
	MatchedKeyword string
}

type entry struct {
	response string
	category string
}

// Map indexes FAQ responses by trigger keyword. Populated at startup,
// read-only afterwards.
type Map struct {
	byKeyword map[string]*entry
	entries   int
}

func NewMap() *Map {
	return &Map{byKeyword: make(map[string]*entry)}
}

// Add registers one response under several trigger keywords.
func (m *Map) Add(keywords []string, response, category string) {
	e := &entry{response: response, category: category}
	for _, kw := range keywords {
		m.byKeyword[strings.ToLower(strings.TrimSpace(kw))] = e
	}
	m.entries++
}

// Lookup tries the whole query first, then each word of it, returning the
// first hit. Queries are matched case-insensitively.
func (m *Map) Lookup(query string) (*Answer, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, false
	}

	if e, ok := m.byKeyword[q]; ok {
		return &Answer{Response: e.response, Category: e.category, MatchedKeyword: q}, true
	}

	for _, word := range strings.Fields(q) {
		if e, ok := m.byKeyword[word]; ok {
			return &Answer{Response: e.response, Category: e.category, MatchedKeyword: word}, true
		}
	}

	return nil, false
}

// Len returns the number of FAQ entries (not keywords).
func (m *Map) Len() int {
	return m.entries
}

// Keywords returns every registered trigger keyword.
func (m *Map) Keywords() []string {
	out := make([]string, 0, len(m.byKeyword))
	for kw := range m.byKeyword {
		out = append(out, kw)
	}
	return out
}
