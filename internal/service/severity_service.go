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

const reservedSeverityMessage = "Severity level 1 is handled by another team. Please contact the dedicated support team."

// SeverityService coordinates severity CRUD.
type SeverityService struct {
	severities repository.SeverityRepository
}

// NewSeverityService builds the service.
func NewSeverityService(severities repository.SeverityRepository) *SeverityService {
	return &SeverityService{severities: severities}
}

// SeverityCreateInput describes a create payload.
type SeverityCreateInput struct {
	Level       int
	Description string
}

// SeverityUpdate carries a partial update: nil fields are untouched.
type SeverityUpdate struct {
	Level       *int
	Description *string
}

// ListAll returns every severity. An empty table is an error condition.
func (s *SeverityService) ListAll(ctx context.Context) ([]domain.Severity, error) {
	severities, err := s.severities.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if len(severities) == 0 {
		return nil, apperrors.NewNotFound("No severity levels found", nil)
	}
	return severities, nil
}

// Create validates and persists a new severity. Level 1 is reserved for
// the external team and can never be created here.
func (s *SeverityService) Create(ctx context.Context, input SeverityCreateInput) (*domain.Severity, error) {
	if input.Level <= 0 || input.Description == "" {
		return nil, apperrors.NewValidationError("Level and description must be filled", nil)
	}
	if input.Level == domain.ReservedSeverityLevel {
		return nil, apperrors.NewValidationError(reservedSeverityMessage, nil)
	}

	if _, err := s.severities.GetByLevel(ctx, input.Level); err == nil {
		return nil, apperrors.NewConflict(fmt.Sprintf("A severity with level '%d' already exists.", input.Level), nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	severity := &domain.Severity{Level: input.Level, Description: input.Description}
	if err := s.severities.Create(ctx, severity); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return severity, nil
}

// Show retrieves a severity by id.
func (s *SeverityService) Show(ctx context.Context, id string) (*domain.Severity, error) {
	severity, err := s.severities.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("Severity %s not found", id))
	}
	return severity, nil
}

// Update applies the fields present in upd, re-checking level
// uniqueness when the level changes.
func (s *SeverityService) Update(ctx context.Context, id string, upd SeverityUpdate) (*domain.Severity, error) {
	severity, err := s.severities.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("Severity %s not found", id))
	}

	if upd.Level != nil && *upd.Level != severity.Level {
		if *upd.Level == domain.ReservedSeverityLevel {
			return nil, apperrors.NewValidationError(reservedSeverityMessage, nil)
		}
		if existing, err := s.severities.GetByLevel(ctx, *upd.Level); err == nil && existing.ID != id {
			return nil, apperrors.NewConflict(fmt.Sprintf("A severity with level '%d' already exists.", *upd.Level), nil)
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInternalError(err)
		}
		severity.Level = *upd.Level
	}
	if upd.Description != nil {
		severity.Description = *upd.Description
	}

	if err := s.severities.Update(ctx, severity); err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("Severity %s not found", id))
	}
	return severity, nil
}

// Delete removes a severity by id.
func (s *SeverityService) Delete(ctx context.Context, id string) error {
	if err := s.severities.Delete(ctx, id); err != nil {
		return mapLookupErr(err, fmt.Sprintf("Severity %s not found", id))
	}
	return nil
}
