package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// CategoryService coordinates category CRUD.
type CategoryService struct {
	categories    repository.CategoryRepository
	subcategories repository.SubcategoryRepository
}

// NewCategoryService builds the service.
func NewCategoryService(categories repository.CategoryRepository, subcategories repository.SubcategoryRepository) *CategoryService {
	return &CategoryService{categories: categories, subcategories: subcategories}
}

// CategoryDetail is a category with its owned subcategories nested.
type CategoryDetail struct {
	Category      domain.Category
	Subcategories []domain.Subcategory
}

// CategoryUpdate carries a partial update: nil fields are untouched.
type CategoryUpdate struct {
	Name *string
}

// ListAll returns every category with nested subcategories. An empty
// table is an error condition.
func (s *CategoryService) ListAll(ctx context.Context) ([]CategoryDetail, error) {
	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if len(categories) == 0 {
		return nil, apperrors.NewNotFound("No categories found", nil)
	}

	details := make([]CategoryDetail, 0, len(categories))
	for _, category := range categories {
		subs, err := s.subcategories.ListByCategory(ctx, category.ID)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		details = append(details, CategoryDetail{Category: category, Subcategories: subs})
	}
	return details, nil
}

// Create validates and persists a new category.
func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	if name == "" {
		return nil, apperrors.NewValidationError("Category name is required.", nil)
	}

	if _, err := s.categories.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict(fmt.Sprintf("A category with name '%s' already exists.", name), nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	category := &domain.Category{Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return category, nil
}

// Show retrieves a category by id with its subcategories nested.
func (s *CategoryService) Show(ctx context.Context, id string) (*CategoryDetail, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("Category %s not found", id))
	}
	subs, err := s.subcategories.ListByCategory(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &CategoryDetail{Category: *category, Subcategories: subs}, nil
}

// Update applies the fields present in upd, re-checking name uniqueness
// when the name changes.
func (s *CategoryService) Update(ctx context.Context, id string, upd CategoryUpdate) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("Category %s not found", id))
	}

	if upd.Name != nil && *upd.Name != category.Name {
		if *upd.Name == "" {
			return nil, apperrors.NewValidationError("Category name is required.", nil)
		}
		if existing, err := s.categories.GetByName(ctx, *upd.Name); err == nil && existing.ID != id {
			return nil, apperrors.NewConflict(fmt.Sprintf("A category with name '%s' already exists.", *upd.Name), nil)
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInternalError(err)
		}
		category.Name = *upd.Name
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("Category %s not found", id))
	}
	return category, nil
}

// Delete removes a category by id.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return mapLookupErr(err, fmt.Sprintf("Category %s not found", id))
	}
	return nil
}
