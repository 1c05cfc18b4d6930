package service

import (
	"context"
	"errors"

	"github.com/artoasis/artoasis-backend/internal/model"
)

// Common user errors.
var (
	ErrUserNotFound = errors.New("user not found")
)

// UserStore is the data access contract the user service consumes.
// *repository.UserRepository satisfies it; tests inject an in-memory fake.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	List(ctx context.Context) ([]model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	UpdateRole(ctx context.Context, id int64, role model.Role) (int64, error)
}

// UserService handles accounts, role resolution, and role promotion.
type UserService struct {
	store UserStore
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// EnsureUser creates the user if the email is unknown. Re-posting an
// existing email is a no-op; the returned flag reports whether a row was
// actually created.
func (s *UserService) EnsureUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, bool, error) {
	existing, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	u := &model.User{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     model.RoleNone,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, false, err
	}
	return u, true, nil
}

// GetByEmail retrieves a user by email, or nil if none exists.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.store.GetByEmail(ctx, email)
}

// List retrieves all users.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.store.List(ctx)
}

// ListInstructors retrieves all users holding the instructor role.
func (s *UserService) ListInstructors(ctx context.Context) ([]model.User, error) {
	return s.store.ListByRole(ctx, model.RoleInstructor)
}

// RoleOf resolves a user's current role. A missing user resolves to
// RoleNone. Absence is a terminal state, never an error.
func (s *UserService) RoleOf(ctx context.Context, email string) (model.Role, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return model.RoleNone, err
	}
	if u == nil {
		return model.RoleNone, nil
	}
	return u.Role, nil
}

// HasRole answers the self-only role flag check. When the authenticated
// identity does not match the queried one the answer is false without a
// store lookup, so one principal can never probe another's role.
func (s *UserService) HasRole(ctx context.Context, requesterEmail, targetEmail string, role model.Role) (bool, error) {
	if requesterEmail != targetEmail {
		return false, nil
	}
	resolved, err := s.RoleOf(ctx, targetEmail)
	if err != nil {
		return false, err
	}
	return resolved == role, nil
}

// Promote grants a role to an existing user by ID.
func (s *UserService) Promote(ctx context.Context, id int64, role model.Role) error {
	rows, err := s.store.UpdateRole(ctx, id, role)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}
