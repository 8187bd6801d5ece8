package dto

import (
	"time"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// AdResponse is one announcement on the public board.
type AdResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Body      string          `json:"body"`
	Source    domain.AdSource `json:"source"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// AdFromDomain maps a domain Ad to its public representation.
func AdFromDomain(ad *domain.Ad) AdResponse {
	return AdResponse{
		ID:        ad.ID,
		Title:     ad.Title,
		Body:      ad.Body,
		Source:    ad.Source,
		CreatedAt: ad.CreatedAt,
		UpdatedAt: ad.UpdatedAt,
	}
}
