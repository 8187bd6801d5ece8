package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutor-marketplace/internal/api/dto"
	"github.com/spec-kit/tutor-marketplace/internal/auth"
	"github.com/spec-kit/tutor-marketplace/internal/service"
	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

// BookingsHandler manages demo booking endpoints.
type BookingsHandler struct {
	service *service.BookingService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookingService *service.BookingService) *BookingsHandler {
	return &BookingsHandler{service: bookingService}
}

// Book POST /bookings. Open to anonymous callers.
func (h *BookingsHandler) Book(c *fiber.Ctx) error {
	var req dto.BookDemoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return err
	}

	principal := auth.PrincipalFromContext(c)
	booking, err := h.service.Book(c.Context(), service.BookingInput{
		TutorID:   req.TutorID,
		TutorName: req.TutorName,
		Subject:   req.Subject,
		AccountID: principal.SubmitterID(),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.BookDemoResponse{
		Success:   true,
		BookingID: booking.ID,
	})
}

// List GET /bookings. The caller's own bookings; authentication is
// enforced by route middleware.
func (h *BookingsHandler) List(c *fiber.Ctx) error {
	principal := auth.PrincipalFromContext(c)
	if principal == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	bookings, err := h.service.ListForAccount(c.Context(), principal.AccountID, limit, offset)
	if err != nil {
		return err
	}

	items := make([]dto.BookingSummary, 0, len(bookings))
	for i := range bookings {
		items = append(items, dto.BookingSummaryFromDomain(&bookings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
