// Package session owns the mutable per-conversation state: the dialogue
// cursor and the navigation history. The store hands out one entry per
// session id and serializes access to it, so two concurrent requests for the
// same session cannot interleave a read-modify-write of the cursor.
package session

import (
	"sync"

	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/history"
)

// Session is the mutable state of one conversation. Callers obtain it via
// Store.Acquire, which locks it; mutate Cursor and History freely while held
// and call Release when done.
type Session struct {
	id string
	mu sync.Mutex

	Cursor  string
	History *history.Stack
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Release unlocks the session for the next request.
func (s *Session) Release() {
	s.mu.Unlock()
}

// Store creates and serializes sessions keyed by id. Entries are created
// lazily on first acquire with the cursor at the root state; nothing evicts
// them (deployment concern, out of scope here).
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	rootID     string
	historyCap int
}

func NewStore(rootID string, historyCap int) *Store {
	return &Store{
		sessions:   make(map[string]*Session),
		rootID:     rootID,
		historyCap: historyCap,
	}
}

// Acquire returns the session for id, creating it at the root state when
// unknown, locked for exclusive use by the caller.
func (s *Store) Acquire(id string) *Session {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{
			id:      id,
			Cursor:  s.rootID,
			History: history.NewStack(s.historyCap),
		}
		s.sessions[id] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	return sess
}

// Count returns the number of known sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
