package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutor-marketplace/internal/api/dto"
	"github.com/spec-kit/tutor-marketplace/internal/service"
)

// AdsHandler serves the public announcement board.
type AdsHandler struct {
	service *service.AdsService
}

// NewAdsHandler constructs handler.
func NewAdsHandler(adsService *service.AdsService) *AdsHandler {
	return &AdsHandler{service: adsService}
}

// List GET /ads. Active announcements, newest first.
func (h *AdsHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)

	adsList, err := h.service.ListActive(c.Context(), limit, offset)
	if err != nil {
		return err
	}

	items := make([]dto.AdResponse, 0, len(adsList))
	for i := range adsList {
		items = append(items, dto.AdFromDomain(&adsList[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
