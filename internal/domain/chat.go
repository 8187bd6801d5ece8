package domain

import "time"

// ChatMessage is one entry in the append-only support chat log.
// SessionID groups messages from one browser session.
type ChatMessage struct {
	ID        string
	AccountID *string
	SessionID string
	Message   string
	Role      Role
	SentAt    time.Time
}

const (
	// ChatMessageMaxLen caps stored message length.
	ChatMessageMaxLen = 2000
	// ChatSessionIDMaxLen caps stored session identifiers.
	ChatSessionIDMaxLen = 64
)
