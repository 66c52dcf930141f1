// Package content defines the conversational content of the engine as data:
// dialogue states, synonym groups, FAQ entries, action-graph edges and the
// autocomplete vocabulary, loaded from a YAML document. A default document is
// embedded so the binary runs without any external files.
package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/model"
)

//go:embed default.yaml
var defaultYAML []byte

// State is one dialogue node definition. Option order in the document is the
// tie-break order at matching time.
type State struct {
	ID      string              `yaml:"id"`
	Message string              `yaml:"message"`
	Leaf    bool                `yaml:"leaf"`
	Options []model.StateOption `yaml:"options"`
}

// SynonymGroup declares one intent class: every phrase is merged into the
// canonical token's class, in document order.
type SynonymGroup struct {
	Canonical string   `yaml:"canonical"`
	Phrases   []string `yaml:"phrases"`
}

// FAQ is one keyword-triggered answer.
type FAQ struct {
	Keywords []string `yaml:"keywords"`
	Response string   `yaml:"response"`
	Category string   `yaml:"category"`
}

// ActionNode labels a node of the next-action graph.
type ActionNode struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// ActionEdge is one weighted transition suggestion between dialogue states.
type ActionEdge struct {
	From   string  `yaml:"from"`
	To     string  `yaml:"to"`
	Weight float64 `yaml:"weight"`
	Label  string  `yaml:"label"`
}

// ActionGraph is the declared next-action graph.
type ActionGraph struct {
	Nodes []ActionNode `yaml:"nodes"`
	Edges []ActionEdge `yaml:"edges"`
}

// Definitions is the full content document.
type Definitions struct {
	RootState   string         `yaml:"root_state"`
	States      []State        `yaml:"states"`
	Synonyms    []SynonymGroup `yaml:"synonyms"`
	FAQs        []FAQ          `yaml:"faqs"`
	Actions     ActionGraph    `yaml:"actions"`
	Completions []string       `yaml:"completions"`
}

// Parse decodes a YAML content document. Structural validation of the
// dialogue graph happens later, at engine assembly.
func Parse(data []byte) (*Definitions, error) {
	var defs Definitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse content document: %w", err)
	}
	if defs.RootState == "" {
		defs.RootState = "root"
	}
	if len(defs.States) == 0 {
		return nil, fmt.Errorf("content document declares no dialogue states")
	}
	return &defs, nil
}

// LoadFile reads and parses a content document from disk.
func LoadFile(path string) (*Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded content document. The embed is part of the
// build, so a parse failure here is a programming error.
func Default() *Definitions {
	defs, err := Parse(defaultYAML)
	if err != nil {
		panic(err)
	}
	return defs
}
