package dto

import (
	"time"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// ChatMessageRequest payload for support chat messages.
type ChatMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// ChatMessageResponse result envelope. SessionID echoes the stored
// session so anonymous clients can persist it locally.
type ChatMessageResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	SessionID string `json:"sessionId"`
}

// ChatHistoryItem is one message in a session transcript.
type ChatHistoryItem struct {
	ID      string      `json:"id"`
	Message string      `json:"message"`
	Role    domain.Role `json:"role"`
	SentAt  time.Time   `json:"sentAt"`
}

// ChatHistoryItemFromDomain maps a message for API responses.
func ChatHistoryItemFromDomain(m *domain.ChatMessage) ChatHistoryItem {
	return ChatHistoryItem{
		ID:      m.ID,
		Message: m.Message,
		Role:    m.Role,
		SentAt:  m.SentAt,
	}
}
