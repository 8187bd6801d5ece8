package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutor-marketplace/internal/api/dto"
	"github.com/spec-kit/tutor-marketplace/internal/auth"
	"github.com/spec-kit/tutor-marketplace/internal/domain"
	"github.com/spec-kit/tutor-marketplace/internal/service"
	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

// ChatHandler manages the support chat endpoint.
type ChatHandler struct {
	service *service.ChatService
}

// NewChatHandler constructs handler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{service: chatService}
}

// Create POST /chat/messages. Open to anonymous callers; the stored
// role tag reflects the caller's resolved role, guest when anonymous.
func (h *ChatHandler) Create(c *fiber.Ctx) error {
	var req dto.ChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	principal := auth.PrincipalFromContext(c)
	role := domain.RoleGuest
	if principal != nil {
		role = principal.Role
	}

	msg, err := h.service.CreateMessage(c.Context(), service.ChatInput{
		Message:   req.Message,
		SessionID: req.SessionID,
		AccountID: principal.SubmitterID(),
		Role:      role,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.ChatMessageResponse{
		Success:   true,
		MessageID: msg.ID,
		SessionID: msg.SessionID,
	})
}

// History GET /chat/messages. Messages of one session in send order.
func (h *ChatHandler) History(c *fiber.Ctx) error {
	sessionID := c.Query("sessionId")
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	messages, err := h.service.History(c.Context(), sessionID, limit, offset)
	if err != nil {
		return err
	}

	items := make([]dto.ChatHistoryItem, 0, len(messages))
	for i := range messages {
		items = append(items, dto.ChatHistoryItemFromDomain(&messages[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
