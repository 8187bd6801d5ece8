package handlers

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutor-marketplace/internal/api/dto"
	"github.com/spec-kit/tutor-marketplace/internal/service"
	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

// SyncSecretHeader authenticates the external ad stream.
const SyncSecretHeader = "X-Sync-Secret"

// SyncHandler receives the Discord ad webhook. The endpoint is safe to
// call twice with the same payload: reconciliation is idempotent by
// message id.
type SyncHandler struct {
	service      *service.SyncService
	sharedSecret string
}

// NewSyncHandler constructs handler.
func NewSyncHandler(syncService *service.SyncService, sharedSecret string) *SyncHandler {
	return &SyncHandler{service: syncService, sharedSecret: sharedSecret}
}

// Handle serves /webhooks/discord-ads. The shared secret is checked
// before the body is touched; a mismatch reads and writes nothing.
func (h *SyncHandler) Handle(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return apperrors.NewMethodNotAllowed("webhook accepts POST only")
	}

	secret := c.Get(SyncSecretHeader)
	if h.sharedSecret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.sharedSecret)) != 1 {
		return apperrors.NewUnauthorized("invalid sync secret")
	}

	var req dto.DiscordEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	err := h.service.Process(c.Context(), service.DiscordEventInput{
		Event:      req.Event,
		MessageID:  req.MessageID,
		ChannelID:  req.ChannelID,
		AuthorName: req.AuthorName,
		Title:      req.Title,
		Body:       req.Body,
		Content:    req.Content,
		Raw:        append([]byte(nil), c.Body()...),
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.SyncResponse{Success: true})
}
