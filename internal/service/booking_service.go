package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
	"github.com/spec-kit/tutor-marketplace/internal/events"
	"github.com/spec-kit/tutor-marketplace/internal/repository"
	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

// BookingService records demo class bookings.
type BookingService struct {
	bookings   repository.BookingRepository
	dispatcher events.Dispatcher
}

// BookingDependencies bundles repositories for the service.
type BookingDependencies struct {
	BookingRepo repository.BookingRepository
	Dispatcher  events.Dispatcher
}

// BookingInput describes a demo booking payload.
type BookingInput struct {
	TutorID   string
	TutorName string
	Subject   string
	AccountID *string
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	return &BookingService{bookings: deps.BookingRepo, dispatcher: deps.Dispatcher}
}

// Book persists a booking in pending_confirmation and announces it.
// Confirmation and cancellation happen outside this service.
func (s *BookingService) Book(ctx context.Context, input BookingInput) (*domain.DemoBooking, error) {
	if strings.TrimSpace(input.TutorID) == "" {
		return nil, apperrors.NewValidationError("missing required field tutorId", map[string]any{"tutorId": "required"})
	}

	booking := &domain.DemoBooking{
		AccountID: input.AccountID,
		TutorID:   strings.TrimSpace(input.TutorID),
		TutorName: strings.TrimSpace(input.TutorName),
		Subject:   strings.TrimSpace(input.Subject),
		Status:    domain.BookingStatusPendingConfirmation,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventDemoBooked,
		SubjectID: booking.ID,
		ActorID:   input.AccountID,
		Timestamp: time.Now(),
		Payload: events.DemoBookedPayload{
			TutorID:   booking.TutorID,
			TutorName: booking.TutorName,
			Subject:   booking.Subject,
		},
	})
	return booking, nil
}

// ListForAccount returns the account's bookings, newest first.
func (s *BookingService) ListForAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.DemoBooking, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, apperrors.NewValidationError("missing required field accountId", map[string]any{"accountId": "required"})
	}
	return s.bookings.ListByAccount(ctx, accountID, limit, offset)
}
