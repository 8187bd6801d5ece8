package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// BookDemoRequest payload for demo class bookings.
type BookDemoRequest struct {
	TutorID   string `json:"tutorId" validate:"required"`
	TutorName string `json:"tutorName"`
	Subject   string `json:"subject"`
}

// Normalize trims whitespace from identifying fields.
func (r *BookDemoRequest) Normalize() {
	r.TutorID = strings.TrimSpace(r.TutorID)
	r.TutorName = strings.TrimSpace(r.TutorName)
	r.Subject = strings.TrimSpace(r.Subject)
}

// BookDemoResponse result envelope.
type BookDemoResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"bookingId"`
}

// BookingSummary is one booking in the caller's listing.
type BookingSummary struct {
	ID        string               `json:"id"`
	TutorID   string               `json:"tutorId"`
	TutorName string               `json:"tutorName"`
	Subject   string               `json:"subject"`
	Status    domain.BookingStatus `json:"status"`
	BookedAt  time.Time            `json:"bookedAt"`
}

// BookingSummaryFromDomain maps a booking for API responses.
func BookingSummaryFromDomain(b *domain.DemoBooking) BookingSummary {
	return BookingSummary{
		ID:        b.ID,
		TutorID:   b.TutorID,
		TutorName: b.TutorName,
		Subject:   b.Subject,
		Status:    b.Status,
		BookedAt:  b.BookedAt,
	}
}
