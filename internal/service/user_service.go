package service

import (
	"context"
	"strings"

	"github.com/osa911/hostelhub/internal/logging"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/repository"
)

// Actor is the verified identity performing an operation.
type Actor struct {
	UserID string
	Role   models.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// UserUpdate is a partial profile update; nil fields are left unchanged.
type UserUpdate struct {
	Name  *string
	Email *string
}

type UserService struct {
	users  repository.UserRepository
	logger *logging.Logger
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users, logger: logging.GetLogger()}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return users, nil
}

// Get returns a user the actor may see: themselves, or anyone for an admin.
func (s *UserService) Get(ctx context.Context, actor Actor, id string) (*models.User, error) {
	if actor.UserID != id && !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "Not authorized to view this user")
	}
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "User not found", "")
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, actor Actor, id string, in UserUpdate) (*models.User, error) {
	if actor.UserID != id && !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "Not authorized to update this user")
	}
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "User not found", "")
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, newError(ErrValidation, "Name must not be empty")
		}
		user.Name = name
	}
	if in.Email != nil {
		email, err := NormalizeEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		user.Email = email
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, storeError(err, "User not found", "Email already in use")
	}
	return user, nil
}

// Delete removes a user. The last remaining admin cannot be deleted.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return storeError(err, "User not found", "")
	}
	if user.IsAdmin() {
		if err := s.ensureAnotherAdmin(ctx); err != nil {
			return err
		}
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return storeError(err, "User not found", "")
	}
	s.logger.Info("Deleted user %s (%s)", user.ID, user.Email)
	return nil
}

// SetRole changes a user's role. The last remaining admin cannot be demoted.
func (s *UserService) SetRole(ctx context.Context, id string, role models.UserRole) (*models.User, error) {
	if !role.Valid() {
		return nil, newError(ErrValidation, "Role must be student or admin")
	}
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "User not found", "")
	}
	if user.Role == role {
		return user, nil
	}
	if user.IsAdmin() {
		if err := s.ensureAnotherAdmin(ctx); err != nil {
			return nil, err
		}
	}

	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, storeError(err, "User not found", "")
	}
	s.logger.Info("User %s role changed to %s", user.ID, role)
	return user, nil
}

func (s *UserService) ensureAnotherAdmin(ctx context.Context) error {
	n, err := s.users.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return storeError(err, "", "")
	}
	if n <= 1 {
		return newError(ErrConflict, "Cannot remove the last admin")
	}
	return nil
}
