package domain

import "time"

// BookingStatus enumerates demo booking states. Only the initial state
// is produced here; confirmation happens outside this service.
type BookingStatus string

const BookingStatusPendingConfirmation BookingStatus = "pending_confirmation"

// DemoBooking records a demo class request against a tutor.
type DemoBooking struct {
	ID        string
	AccountID *string
	TutorID   string
	TutorName string
	Subject   string
	Status    BookingStatus
	BookedAt  time.Time
}
