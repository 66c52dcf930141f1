package repo

import (
	"context"
	"sync"

	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/model"
)

// MemoryTranscriptRepository keeps transcripts in process memory. Used when
// no Redis URL is configured, and in tests.
type MemoryTranscriptRepository struct {
	mu       sync.RWMutex
	messages map[string][]*model.Message
}

func NewMemoryTranscriptRepository() *MemoryTranscriptRepository {
	return &MemoryTranscriptRepository{messages: make(map[string][]*model.Message)}
}

func (r *MemoryTranscriptRepository) AddMessage(_ context.Context, sessionID string, message *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *message
	r.messages[sessionID] = append(r.messages[sessionID], &copied)
	return nil
}

func (r *MemoryTranscriptRepository) LoadTranscript(_ context.Context, sessionID string) (*model.Transcript, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.messages[sessionID]
	msgs := make([]*model.Message, len(stored))
	copy(msgs, stored)
	return &model.Transcript{SessionID: sessionID, Messages: msgs}, nil
}

func (r *MemoryTranscriptRepository) ClearTranscript(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, sessionID)
	return nil
}

func (r *MemoryTranscriptRepository) MessageCount(_ context.Context, sessionID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages[sessionID]), nil
}

var _ model.TranscriptRepository = (*MemoryTranscriptRepository)(nil)
