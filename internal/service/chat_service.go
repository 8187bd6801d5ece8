package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
	"github.com/spec-kit/tutor-marketplace/internal/repository"
	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

// ChatService appends messages to the support chat log. Chat writes are
// low-risk and deliberately trigger no notification.
type ChatService struct {
	messages repository.ChatRepository
}

// ChatInput describes a support chat message payload.
type ChatInput struct {
	Message   string
	SessionID string
	AccountID *string
	Role      domain.Role
}

// NewChatService constructs the service.
func NewChatService(messages repository.ChatRepository) *ChatService {
	return &ChatService{messages: messages}
}

// CreateMessage truncates and persists one chat message. A missing
// session id gets a generated one so anonymous browsers can keep a
// thread across messages.
func (s *ChatService) CreateMessage(ctx context.Context, input ChatInput) (*domain.ChatMessage, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, apperrors.NewValidationError("missing required field message", map[string]any{"message": "required"})
	}
	message = truncate(message, domain.ChatMessageMaxLen)

	sessionID := truncate(strings.TrimSpace(input.SessionID), domain.ChatSessionIDMaxLen)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	role := input.Role
	if role == "" {
		role = domain.RoleGuest
	}

	msg := &domain.ChatMessage{
		AccountID: input.AccountID,
		SessionID: sessionID,
		Message:   message,
		Role:      role,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// History returns the messages of one chat session in send order.
func (s *ChatService) History(ctx context.Context, sessionID string, limit, offset int) ([]domain.ChatMessage, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, apperrors.NewValidationError("missing required field sessionId", map[string]any{"sessionId": "required"})
	}
	return s.messages.ListBySession(ctx, sessionID, limit, offset)
}

// truncate limits a string to max runes without splitting characters.
func truncate(val string, max int) string {
	if max <= 0 {
		return val
	}
	runes := []rune(val)
	if len(runes) <= max {
		return val
	}
	return string(runes[:max])
}
