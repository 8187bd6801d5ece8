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

// ApplicationsHandler manages tutor application endpoints.
type ApplicationsHandler struct {
	service *service.ApplicationService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{service: applicationService}
}

// Submit POST /applications. Open to anonymous callers; the submitter
// id is recorded only when authenticated.
func (h *ApplicationsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return err
	}

	principal := auth.PrincipalFromContext(c)
	app, err := h.service.Submit(c.Context(), service.ApplicationSubmitInput{
		Name:       req.Name,
		Email:      req.Email,
		Subject:    req.Subject,
		Bio:        req.Bio,
		Experience: req.Experience,
		Country:    req.Country,
		AccountID:  principal.SubmitterID(),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.SubmitApplicationResponse{
		Success:       true,
		ApplicationID: app.ID,
	})
}

// Approve POST /applications/approve. Staff only; enforced by route
// middleware and re-checked in the service.
func (h *ApplicationsHandler) Approve(c *fiber.Ctx) error {
	var req dto.ApproveApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	principal := auth.PrincipalFromContext(c)
	if err := h.service.Approve(c.Context(), principal, req.UID, req.ApplicationID); err != nil {
		return err
	}
	return c.JSON(dto.ApproveApplicationResponse{Success: true})
}

// ListPending GET /applications/pending. Staff review queue.
func (h *ApplicationsHandler) ListPending(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	apps, err := h.service.ListPending(c.Context(), limit, offset)
	if err != nil {
		return err
	}

	items := make([]dto.ApplicationSummary, 0, len(apps))
	for i := range apps {
		items = append(items, applicationSummary(&apps[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func applicationSummary(app *domain.TutorApplication) dto.ApplicationSummary {
	return dto.ApplicationSummary{
		ID:          app.ID,
		Name:        app.Name,
		Email:       app.Email,
		Subject:     app.Subject,
		Country:     app.Country,
		Status:      app.Status,
		SubmittedAt: app.SubmittedAt,
		ApprovedAt:  app.ApprovedAt,
	}
}
