// Package dialogue implements the branching conversation state machine:
// a graph of states with keyword-triggered transitions, advanced per session.
package dialogue

import (
	"fmt"
	"strings"

	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/model"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/session"
)

// Machine holds the immutable state graph. Per-session cursors live in the
// session store; the machine receives an acquired session and moves its
// cursor, mirroring how a workflow engine navigates explicit state.
type Machine struct {
	states map[string]*model.DialogueState
	rootID string
}

func NewMachine(rootID string) *Machine {
	return &Machine{
		states: make(map[string]*model.DialogueState),
		rootID: rootID,
	}
}

// AddState registers a state. Registering the same id again overwrites the
// previous definition (last writer wins).
func (m *Machine) AddState(st model.DialogueState) {
	copied := st
	m.states[st.ID] = &copied
}

// Validate checks the graph for configuration errors: the root state must
// exist and every option target must resolve. Meant to run once at startup;
// a failure is fatal, not a serving-time condition.
func (m *Machine) Validate() error {
	if _, ok := m.states[m.rootID]; !ok {
		return fmt.Errorf("dialogue graph has no root state %q", m.rootID)
	}
	for id, st := range m.states {
		for _, opt := range st.Options {
			if _, ok := m.states[opt.Target]; !ok {
				return fmt.Errorf("state %q option %q points at unknown state %q", id, opt.Keyword, opt.Target)
			}
		}
	}
	return nil
}

// State returns the definition of a state id.
func (m *Machine) State(id string) (*model.DialogueState, bool) {
	st, ok := m.states[id]
	return st, ok
}

// RootID returns the distinguished root state id.
func (m *Machine) RootID() string {
	return m.rootID
}

// StateCount returns the number of registered states.
func (m *Machine) StateCount() int {
	return len(m.states)
}

// CurrentState resolves the session's cursor to a state definition. A stale
// cursor (state removed after a reload) falls back to root, and the cursor
// is repaired so the fallback sticks.
func (m *Machine) CurrentState(sess *session.Session) *model.DialogueState {
	if st, ok := m.states[sess.Cursor]; ok {
		return st
	}
	sess.Cursor = m.rootID
	return m.states[m.rootID]
}

// Advance resolves user input against the current state's options and moves
// the cursor on a match. Matching is a bidirectional substring test, looser
// on purpose: "cancel my order" triggers the "cancel" option and "trac"
// triggers "track". The first matching option in registration order wins.
// Without a match the cursor stays put and the result repeats the current
// state with NoMatch set.
func (m *Machine) Advance(sess *session.Session, input string) model.TransitionResult {
	current := m.CurrentState(sess)
	text := strings.ToLower(strings.TrimSpace(input))

	var target *model.DialogueState
	if text != "" {
		for _, opt := range current.Options {
			kw := strings.ToLower(opt.Keyword)
			if strings.Contains(text, kw) || strings.Contains(kw, text) {
				target = m.states[opt.Target]
				break
			}
		}
	}

	if target == nil {
		return model.TransitionResult{
			Response: current.Message,
			StateID:  current.ID,
			Leaf:     current.Leaf,
			Options:  current.OptionKeywords(),
			NoMatch:  true,
		}
	}

	sess.Cursor = target.ID
	return model.TransitionResult{
		Response:   target.Message,
		StateID:    target.ID,
		PreviousID: current.ID,
		Leaf:       target.Leaf,
		Options:    target.OptionKeywords(),
	}
}

// Reset forces the session back to the root state.
func (m *Machine) Reset(sess *session.Session) {
	sess.Cursor = m.rootID
}

// SetState forces the cursor to an explicit state id, reporting false when
// the id is absent from the graph.
func (m *Machine) SetState(sess *session.Session, id string) bool {
	if _, ok := m.states[id]; !ok {
		return false
	}
	sess.Cursor = id
	return true
}
