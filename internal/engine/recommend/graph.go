// Package recommend ranks the likely next actions from a dialogue state
// using a weighted directed graph over state ids.
package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/model"
)

type edge struct {
	target string
	weight float64
	label  string
}

// Graph is an adjacency structure built once at startup and read-only while
// serving. Parallel edges between the same pair are kept as-is; weights are
// relative likelihoods and are never normalized.
type Graph struct {
	adjacency map[string][]edge
	labels    map[string]string
}

func NewGraph() *Graph {
	return &Graph{
		adjacency: make(map[string][]edge),
		labels:    make(map[string]string),
	}
}

// AddNode registers a node with a display label. Idempotent; a later call
// refreshes the label.
func (g *Graph) AddNode(id, label string) {
	if _, ok := g.adjacency[id]; !ok {
		g.adjacency[id] = nil
	}
	if label == "" {
		label = id
	}
	g.labels[id] = label
}

// AddEdge appends a weighted directed edge, creating both endpoints if
// they are missing.
func (g *Graph) AddEdge(from, to string, weight float64, label string) {
	if _, ok := g.adjacency[from]; !ok {
		g.AddNode(from, "")
	}
	if _, ok := g.adjacency[to]; !ok {
		g.AddNode(to, "")
	}
	if label == "" {
		label = to
	}
	g.adjacency[from] = append(g.adjacency[from], edge{target: to, weight: weight, label: label})
}

// Suggest returns up to topK outgoing edges from nodeID, heaviest first.
// Ties keep their insertion order. An unknown node or a node without
// outgoing edges yields an empty slice, never an error.
func (g *Graph) Suggest(nodeID string, topK int) []model.Suggestion {
	edges := g.adjacency[nodeID]
	if len(edges) == 0 || topK <= 0 {
		return nil
	}

	ranked := make([]edge, len(edges))
	copy(ranked, edges)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].weight > ranked[j].weight
	})

	if topK > len(ranked) {
		topK = len(ranked)
	}

	suggestions := make([]model.Suggestion, 0, topK)
	for _, e := range ranked[:topK] {
		suggestions = append(suggestions, model.Suggestion{
			Target:  e.target,
			Label:   e.label,
			Weight:  e.weight,
			Percent: fmt.Sprintf("%d%%", int(math.Round(e.weight*100))),
		})
	}
	return suggestions
}

// Neighbors returns the targets of all outgoing edges of nodeID.
func (g *Graph) Neighbors(nodeID string) []string {
	edges := g.adjacency[nodeID]
	out := make([]string, 0, len(edges))
	for _, e := range edges {
		out = append(out, e.target)
	}
	return out
}

// NodeCount returns the number of registered nodes.
func (g *Graph) NodeCount() int {
	return len(g.adjacency)
}
