package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
	"github.com/spec-kit/tutor-marketplace/internal/events"
	"github.com/spec-kit/tutor-marketplace/internal/repository"
	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

// ApplicationService coordinates tutor application workflows.
type ApplicationService struct {
	applications repository.ApplicationRepository
	accounts     repository.AccountRepository
	dispatcher   events.Dispatcher
}

// ApplicationDependencies bundles repositories for the service.
type ApplicationDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	AccountRepo     repository.AccountRepository
	Dispatcher      events.Dispatcher
}

// ApplicationSubmitInput describes a submission payload. Callers are
// expected to have validated required fields; the service re-checks the
// ones it cannot persist without.
type ApplicationSubmitInput struct {
	Name       string
	Email      string
	Subject    string
	Bio        string
	Experience string
	Country    string
	AccountID  *string
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	return &ApplicationService{
		applications: deps.ApplicationRepo,
		accounts:     deps.AccountRepo,
		dispatcher:   deps.Dispatcher,
	}
}

// Submit persists a pending application and announces it.
func (s *ApplicationService) Submit(ctx context.Context, input ApplicationSubmitInput) (*domain.TutorApplication, error) {
	for field, val := range map[string]string{
		"name":       input.Name,
		"email":      input.Email,
		"subject":    input.Subject,
		"bio":        input.Bio,
		"experience": input.Experience,
		"country":    input.Country,
	} {
		if strings.TrimSpace(val) == "" {
			return nil, apperrors.NewValidationError("missing required field "+field, map[string]any{field: "required"})
		}
	}

	app := &domain.TutorApplication{
		AccountID:  input.AccountID,
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(input.Email),
		Subject:    strings.TrimSpace(input.Subject),
		Bio:        strings.TrimSpace(input.Bio),
		Experience: strings.TrimSpace(input.Experience),
		Country:    strings.TrimSpace(input.Country),
		Status:     domain.ApplicationStatusPending,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventApplicationSubmitted,
		SubjectID: app.ID,
		ActorID:   input.AccountID,
		Timestamp: time.Now(),
		Payload: events.ApplicationSubmittedPayload{
			Name:    app.Name,
			Email:   app.Email,
			Subject: app.Subject,
			Country: app.Country,
		},
	})
	return app, nil
}

// Approve grants the tutor claim to the target account, preserving any
// other claims, and marks the referenced application approved. Only
// staff callers may approve.
func (s *ApplicationService) Approve(ctx context.Context, caller *domain.Principal, accountID string, applicationID *string) error {
	if !caller.IsStaff() {
		return apperrors.NewForbidden("staff role required")
	}
	if strings.TrimSpace(accountID) == "" {
		return apperrors.NewValidationError("missing required field uid", map[string]any{"uid": "required"})
	}

	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("account", map[string]any{"uid": accountID})
		}
		return err
	}

	// The application transitions first so a bad application id fails
	// the call before any claim has been granted.
	if applicationID != nil && strings.TrimSpace(*applicationID) != "" {
		if err := s.applications.Approve(ctx, *applicationID, caller.AccountID); err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewNotFound("application", map[string]any{"applicationId": *applicationID})
			}
			return err
		}
	}

	if err := s.accounts.GrantTutorClaim(ctx, accountID); err != nil {
		return err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventApplicationApproved,
		SubjectID: accountID,
		ActorID:   caller.SubmitterID(),
		Timestamp: time.Now(),
		Payload: events.ApplicationApprovedPayload{
			AccountID:     accountID,
			ApplicationID: applicationID,
			ApprovedBy:    caller.AccountID,
		},
	})
	return nil
}

// ListPending returns pending applications for the staff review queue.
func (s *ApplicationService) ListPending(ctx context.Context, limit, offset int) ([]domain.TutorApplication, error) {
	return s.applications.ListByStatus(ctx, domain.ApplicationStatusPending, limit, offset)
}
