// Package autocomplete suggests completions for partially typed queries
// using a prefix trie. Consumed by the transport layer only.
package autocomplete

import (
	"sort"
	"strings"
)

// DefaultLimit caps the number of completions returned per prefix.
const DefaultLimit = 8

type node struct {
	children map[rune]*node
	terminal bool
	word     string
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// Trie stores the suggestion vocabulary. Built at startup, read-only while
// serving.
type Trie struct {
	root  *node
	words int
}

func NewTrie() *Trie {
	return &Trie{root: newNode()}
}

// Insert adds a word, lowercased and trimmed. Empty strings are ignored.
func (t *Trie) Insert(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}

	cur := t.root
	for _, r := range word {
		child, ok := cur.children[r]
		if !ok {
			child = newNode()
			cur.children[r] = child
		}
		cur = child
	}

	if !cur.terminal {
		cur.terminal = true
		cur.word = word
		t.words++
	}
}

// Contains reports whether the exact word was inserted.
func (t *Trie) Contains(word string) bool {
	n := t.find(strings.ToLower(strings.TrimSpace(word)))
	return n != nil && n.terminal
}

func (t *Trie) find(prefix string) *node {
	cur := t.root
	for _, r := range prefix {
		child, ok := cur.children[r]
		if !ok {
			return nil
		}
		cur = child
	}
	return cur
}

// Suggest returns up to limit words starting with prefix. An empty prefix
// yields nothing; non-positive limits fall back to DefaultLimit.
func (t *Trie) Suggest(prefix string, limit int) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	start := t.find(prefix)
	if start == nil {
		return nil
	}

	var out []string
	collect(start, &out, limit)
	return out
}

// collect gathers words in lexicographic order so the same prefix always
// yields the same suggestions.
func collect(n *node, out *[]string, limit int) {
	if len(*out) >= limit {
		return
	}
	if n.terminal {
		*out = append(*out, n.word)
	}

	runes := make([]rune, 0, len(n.children))
	for r := range n.children {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	for _, r := range runes {
		if len(*out) >= limit {
			return
		}
		collect(n.children[r], out, limit)
	}
}

// Len returns the number of distinct words inserted.
func (t *Trie) Len() int {
	return t.words
}
