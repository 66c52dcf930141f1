// Package intent canonicalizes synonymous phrases into a single
// representative token using a disjoint-set forest.
package intent

import (
	"strings"
	"sync"
)

// Normalizer groups equivalent phrases ("cancel", "abort", "stop order")
// into one equivalence class per intent. Classes are declared once at
// startup via Union; Find and Normalize are the serving-time operations.
//
// Lookups are writes: Find creates singleton classes for unseen tokens and
// rewrites parent pointers (path compression), and the forest is shared
// across every session. An internal mutex serializes all operations so
// concurrent requests for different sessions cannot race on the maps.
type Normalizer struct {
	mu     sync.Mutex
	parent map[string]string
	rank   map[string]int
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		parent: make(map[string]string),
		rank:   make(map[string]int),
	}
}

func (n *Normalizer) makeSet(x string) {
	if _, ok := n.parent[x]; !ok {
		n.parent[x] = x
		n.rank[x] = 0
	}
}

// find is the lock-free core of Find; callers must hold n.mu.
// Path compression is done iteratively: walk to the root collecting visited
// tokens, then point them all at the root, so long synonym chains cannot
// exhaust the call stack.
func (n *Normalizer) find(x string) string {
	n.makeSet(x)

	root := x
	for n.parent[root] != root {
		root = n.parent[root]
	}

	for cur := x; cur != root; {
		next := n.parent[cur]
		n.parent[cur] = root
		cur = next
	}

	return root
}

// Find returns the canonical representative of x, creating a new singleton
// class if x was never seen.
func (n *Normalizer) Find(x string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.find(x)
}

// Union merges the classes of a and b using union by rank and returns the
// surviving root. On a rank tie the root of a survives and its rank grows.
func (n *Normalizer) Union(a, b string) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	rootA := n.find(a)
	rootB := n.find(b)

	if rootA == rootB {
		return rootA
	}

	switch {
	case n.rank[rootA] < n.rank[rootB]:
		n.parent[rootA] = rootB
		return rootB
	case n.rank[rootA] > n.rank[rootB]:
		n.parent[rootB] = rootA
		return rootA
	default:
		n.parent[rootB] = rootA
		n.rank[rootA]++
		return rootA
	}
}

// Equivalent reports whether a and b belong to the same class.
func (n *Normalizer) Equivalent(a, b string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.find(a) == n.find(b)
}

// Normalize lowercases and trims raw text, then resolves it to a canonical
// intent token: the whole phrase's class wins if it differs from the phrase;
// otherwise the first constituent word whose class differs from itself.
// Unknown text comes back unchanged (lowercased and trimmed) with
// rewritten=false.
func (n *Normalizer) Normalize(raw string) (canonical string, rewritten bool) {
	text := strings.ToLower(strings.TrimSpace(raw))

	n.mu.Lock()
	defer n.mu.Unlock()

	if root := n.find(text); root != text {
		return root, true
	}

	for _, word := range strings.Fields(text) {
		if root := n.find(word); root != word {
			return root, true
		}
	}

	return text, false
}
