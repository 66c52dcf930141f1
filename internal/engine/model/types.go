package model

// StateOption maps a trigger keyword to the id of the next dialogue state.
// Options are kept as an ordered slice rather than a map: when several
// keywords match the same input, the first one registered wins, and Go map
// iteration would randomize that tie-break.
type StateOption struct {
	Keyword string `yaml:"keyword"`
	Target  string `yaml:"target"`
}

// DialogueState is a node in the conversation graph: the bot reply for that
// state plus the keyword-triggered transitions out of it. States are defined
// once at startup and never mutated afterwards.
type DialogueState struct {
	ID      string
	Message string
	Leaf    bool
	Options []StateOption
}

// OptionKeywords returns the trigger keywords in registration order.
func (s *DialogueState) OptionKeywords() []string {
	keys := make([]string, 0, len(s.Options))
	for _, opt := range s.Options {
		keys = append(keys, opt.Keyword)
	}
	return keys
}

// TransitionResult reports the outcome of advancing the dialogue machine.
// On a match, StateID is the new cursor and PreviousID where the session came
// from. On NoMatch the cursor is unchanged and the current state is repeated.
type TransitionResult struct {
	Response   string
	StateID    string
	PreviousID string
	Leaf       bool
	Options    []string
	NoMatch    bool
}

// Suggestion is one ranked next-action hint. Percent is a display string
// derived from Weight; weights are relative likelihoods, not probabilities.
type Suggestion struct {
	Target  string  `json:"target_id"`
	Label   string  `json:"label"`
	Weight  float64 `json:"weight"`
	Percent string  `json:"percent"`
}

// ReplySource tags which part of the pipeline produced a reply.
type ReplySource string

const (
	SourceValidation ReplySource = "validation"
	SourceNavigation ReplySource = "navigation"
	SourceOrder      ReplySource = "order_lookup"
	SourceFAQ        ReplySource = "faq"
	SourceDialogue   ReplySource = "dialogue"
)

// Reply is the orchestrator's answer to one user message.
type Reply struct {
	Response         string       `json:"response"`
	StateID          string       `json:"current_state_id"`
	Options          []string     `json:"available_options"`
	HistoryDepth     int          `json:"history_depth"`
	Suggestions      []Suggestion `json:"suggestions,omitempty"`
	NoMatch          bool         `json:"no_match,omitempty"`
	Source           ReplySource  `json:"source"`
	IntentNormalized bool         `json:"intent_normalized,omitempty"`
	MatchedKeyword   string       `json:"matched_keyword,omitempty"`
	Category         string       `json:"category,omitempty"`
}

// Snapshot is one visited dialogue state in the navigation history.
type Snapshot struct {
	StateID string `json:"state_id"`
	Label   string `json:"label"`
}

// Stats exposes engine counters for observability.
type Stats struct {
	StateCount   int `json:"state_count"`
	SessionCount int `json:"session_count"`
	FAQEntries   int `json:"faq_entries"`
	ActionNodes  int `json:"action_nodes"`
}
