package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// SubmitApplicationRequest payload for tutor applications.
type SubmitApplicationRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Subject    string `json:"subject" validate:"required"`
	Bio        string `json:"bio" validate:"required"`
	Experience string `json:"experience" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// Normalize trims whitespace so blank-padded fields fail required checks.
func (r *SubmitApplicationRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Bio = strings.TrimSpace(r.Bio)
	r.Experience = strings.TrimSpace(r.Experience)
	r.Country = strings.TrimSpace(r.Country)
}

// ApproveApplicationRequest payload for the staff approval call.
type ApproveApplicationRequest struct {
	UID           string  `json:"uid" validate:"required"`
	ApplicationID *string `json:"applicationId"`
}

// SubmitApplicationResponse result envelope.
type SubmitApplicationResponse struct {
	Success       bool   `json:"success"`
	ApplicationID string `json:"applicationId"`
}

// ApproveApplicationResponse result envelope.
type ApproveApplicationResponse struct {
	Success bool `json:"success"`
}

// ApplicationSummary response item for staff listings.
type ApplicationSummary struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Email       string                   `json:"email"`
	Subject     string                   `json:"subject"`
	Country     string                   `json:"country"`
	Status      domain.ApplicationStatus `json:"status"`
	SubmittedAt time.Time                `json:"submittedAt"`
	ApprovedAt  *time.Time               `json:"approvedAt,omitempty"`
}
