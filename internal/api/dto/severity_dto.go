package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateSeverityRequest payload.
type CreateSeverityRequest struct {
	Level       int    `json:"level"`
	Description string `json:"description"`
}

// UpdateSeverityRequest is a partial update.
type UpdateSeverityRequest struct {
	Level       *int    `json:"level"`
	Description *string `json:"description"`
}

// SeverityResponse payload.
type SeverityResponse struct {
	ID          string    `json:"id"`
	Level       int       `json:"level"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSeverityResponse maps the domain model.
func NewSeverityResponse(severity *domain.Severity) SeverityResponse {
	return SeverityResponse{
		ID:          severity.ID,
		Level:       severity.Level,
		Description: severity.Description,
		CreatedAt:   severity.CreatedAt,
		UpdatedAt:   severity.UpdatedAt,
	}
}
