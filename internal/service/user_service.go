package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// UserService coordinates user CRUD.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// UserCreateInput describes a signup payload.
type UserCreateInput struct {
	Username string
	Name     string
	Email    string
	Password string
	Role     string
}

// UserUpdate carries a partial update: nil fields are untouched. A
// present field explicitly set to the empty string is rejected.
type UserUpdate struct {
	Username *string
	Name     *string
	Email    *string
	Role     *string
	Active   *bool
}

// ListAll returns every user. An empty table is an error condition.
func (s *UserService) ListAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if len(users) == 0 {
		return nil, apperrors.NewNotFound("No users found", nil)
	}
	return users, nil
}

// Create validates and persists a new user.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	if input.Name == "" || input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("All fields must be filled", nil)
	}

	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewConflict(fmt.Sprintf("A user with the username '%s' already exists.", input.Username), nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	role := input.Role
	if role == "" {
		role = "user"
	}

	user := &domain.User{
		Username:     input.Username,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Active:       true,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// Show retrieves a user by id.
func (s *UserService) Show(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("User %s not found", id))
	}
	return user, nil
}

// Update applies the fields present in upd. No present field may be blank.
func (s *UserService) Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("User %s not found", id))
	}

	for _, field := range []*string{upd.Username, upd.Name, upd.Email, upd.Role} {
		if field != nil && *field == "" {
			return nil, apperrors.NewValidationError("No field can be left blank", nil)
		}
	}

	if upd.Username != nil {
		user.Username = *upd.Username
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.Role != nil {
		user.Role = *upd.Role
	}
	if upd.Active != nil {
		user.Active = *upd.Active
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("User %s not found", id))
	}
	return user, nil
}

// ResetPassword rehashes and replaces the password field only.
func (s *UserService) ResetPassword(ctx context.Context, id, password string) (*domain.User, error) {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("User %s not found", id))
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("User %s not found", id))
	}
	return s.users.GetByID(ctx, id)
}

// Delete removes a user by id.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return mapLookupErr(err, fmt.Sprintf("User %s not found", id))
	}
	return nil
}
