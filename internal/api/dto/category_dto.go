package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// CreateCategoryRequest payload.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// UpdateCategoryRequest is a partial update.
type UpdateCategoryRequest struct {
	Name *string `json:"name"`
}

// CategoryResponse payload.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryDetailResponse includes the nested subcategories.
type CategoryDetailResponse struct {
	CategoryResponse
	Subcategories []SubcategoryResponse `json:"subcategories"`
}

// NewCategoryResponse maps the domain model.
func NewCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// NewCategoryDetailResponse maps a category with nested subcategories.
func NewCategoryDetailResponse(detail *service.CategoryDetail) CategoryDetailResponse {
	subs := make([]SubcategoryResponse, 0, len(detail.Subcategories))
	for i := range detail.Subcategories {
		subs = append(subs, NewSubcategoryResponse(&detail.Subcategories[i]))
	}
	return CategoryDetailResponse{
		CategoryResponse: NewCategoryResponse(&detail.Category),
		Subcategories:    subs,
	}
}
