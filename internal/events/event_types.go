package events

import (
	"time"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationSubmitted EventType = "application_submitted"
	EventApplicationApproved  EventType = "application_approved"
	EventDemoBooked           EventType = "demo_booked"
	EventAdSynced             EventType = "ad_synced"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	ActorID   *string     `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Country string `json:"country"`
}

// ApplicationApprovedPayload payload.
type ApplicationApprovedPayload struct {
	AccountID     string  `json:"account_id"`
	ApplicationID *string `json:"application_id,omitempty"`
	ApprovedBy    string  `json:"approved_by"`
}

// DemoBookedPayload payload.
type DemoBookedPayload struct {
	TutorID   string `json:"tutor_id"`
	TutorName string `json:"tutor_name"`
	Subject   string `json:"subject"`
}

// AdSyncedPayload payload.
type AdSyncedPayload struct {
	MessageID string          `json:"message_id"`
	Kind      string          `json:"kind"`
	Title     string          `json:"title,omitempty"`
	Status    domain.AdStatus `json:"status,omitempty"`
}
