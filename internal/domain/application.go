package domain

import "time"

// ApplicationStatus enumerates tutor application lifecycle states.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
)

// TutorApplication is a candidate tutor's submission. Applications are
// never deleted; approval is the only mutation.
type TutorApplication struct {
	ID          string
	AccountID   *string
	Name        string
	Email       string
	Subject     string
	Bio         string
	Experience  string
	Country     string
	Status      ApplicationStatus
	SubmittedAt time.Time
	ApprovedAt  *time.Time
	ApprovedBy  *string
}
