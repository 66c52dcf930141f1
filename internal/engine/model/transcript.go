package model

import "context"

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation, as persisted in the transcript log.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserMessage builds a user-authored transcript message.
func UserMessage(content string) *Message {
	return &Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds a bot-authored transcript message.
func AssistantMessage(content string) *Message {
	return &Message{Role: RoleAssistant, Content: content}
}

// Transcript represents loaded conversation data with metadata.
type Transcript struct {
	SessionID string
	Messages  []*Message
}

// TranscriptRepository persists the raw exchange log per session. It is an
// observability surface: the dialogue cursor and navigation history never
// depend on it, and write failures must not fail the conversation.
type TranscriptRepository interface {
	// AddMessage appends a message to the session's transcript.
	AddMessage(ctx context.Context, sessionID string, message *Message) error

	// LoadTranscript retrieves the full transcript for a session.
	LoadTranscript(ctx context.Context, sessionID string) (*Transcript, error)

	// ClearTranscript removes all transcript data for a session.
	ClearTranscript(ctx context.Context, sessionID string) error

	// MessageCount returns the number of messages stored for the session.
	MessageCount(ctx context.Context, sessionID string) (int, error)
}
