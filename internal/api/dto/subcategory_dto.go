package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateSubcategoryRequest payload.
type CreateSubcategoryRequest struct {
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

// UpdateSubcategoryRequest is a partial update.
type UpdateSubcategoryRequest struct {
	Name       *string `json:"name"`
	CategoryID *string `json:"category_id"`
}

// SubcategoryResponse payload.
type SubcategoryResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CategoryID string    `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewSubcategoryResponse maps the domain model.
func NewSubcategoryResponse(subcategory *domain.Subcategory) SubcategoryResponse {
	return SubcategoryResponse{
		ID:         subcategory.ID,
		Name:       subcategory.Name,
		CategoryID: subcategory.CategoryID,
		CreatedAt:  subcategory.CreatedAt,
		UpdatedAt:  subcategory.UpdatedAt,
	}
}
