// Package history tracks the dialogue states a session has visited so the
// user can say "back" and return to the previous one.
package history

import (
	"unicode/utf8"

	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/model"
)

// DefaultCapacity bounds a session's navigation history.
const DefaultCapacity = 10

// labelLimit truncates stored state labels; snapshots are breadcrumbs, not
// full replies.
const labelLimit = 50

// Stack is a capacity-bounded LIFO of visited states. Access is LIFO, but
// eviction is FIFO: pushing onto a full stack drops the oldest (bottom)
// snapshot, never the newest. A Stack belongs to exactly one session and is
// serialized by the session store.
type Stack struct {
	snapshots []model.Snapshot
	capacity  int
}

// NewStack returns an empty stack bounded at capacity. Non-positive values
// fall back to DefaultCapacity.
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Stack{
		snapshots: make([]model.Snapshot, 0, capacity),
		capacity:  capacity,
	}
}

// Push appends a snapshot, evicting the bottom entry when at capacity.
// Labels are truncated on a rune boundary so a multi-byte character is
// never cut in half.
func (s *Stack) Push(stateID, label string) {
	if len(label) > labelLimit {
		cut := labelLimit
		for cut > 0 && !utf8.RuneStart(label[cut]) {
			cut--
		}
		label = label[:cut]
	}
	if len(s.snapshots) >= s.capacity {
		s.snapshots = s.snapshots[1:]
	}
	s.snapshots = append(s.snapshots, model.Snapshot{StateID: stateID, Label: label})
}

// Pop removes and returns the most recently pushed snapshot.
func (s *Stack) Pop() (model.Snapshot, bool) {
	if len(s.snapshots) == 0 {
		return model.Snapshot{}, false
	}
	top := s.snapshots[len(s.snapshots)-1]
	s.snapshots = s.snapshots[:len(s.snapshots)-1]
	return top, true
}

// Peek returns the top snapshot without removing it.
func (s *Stack) Peek() (model.Snapshot, bool) {
	if len(s.snapshots) == 0 {
		return model.Snapshot{}, false
	}
	return s.snapshots[len(s.snapshots)-1], true
}

// Clear empties the stack.
func (s *Stack) Clear() {
	s.snapshots = s.snapshots[:0]
}

// Len returns the number of stored snapshots.
func (s *Stack) Len() int {
	return len(s.snapshots)
}

// Snapshots returns a copy of the history from oldest to newest.
func (s *Stack) Snapshots() []model.Snapshot {
	out := make([]model.Snapshot, len(s.snapshots))
	copy(out, s.snapshots)
	return out
}
