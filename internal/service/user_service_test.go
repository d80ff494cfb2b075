package service

import (
	"context"
	"testing"

	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/repository"
	"github.com/osa911/hostelhub/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, users repository.UserRepository, email string, role models.UserRole) *models.User {
	t.Helper()
	u := &models.User{Name: email, Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestUserAccess(t *testing.T) {
	repos := memory.NewSet()
	svc := NewUserService(repos.Users)
	ctx := context.Background()

	a := seedUser(t, repos.Users, "a@example.com", models.RoleStudent)
	b := seedUser(t, repos.Users, "b@example.com", models.RoleStudent)
	admin := seedUser(t, repos.Users, "admin@example.com", models.RoleAdmin)

	_, err := svc.Get(ctx, Actor{UserID: a.ID, Role: models.RoleStudent}, a.ID)
	assert.NoError(t, err)
	_, err = svc.Get(ctx, Actor{UserID: a.ID, Role: models.RoleStudent}, b.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Get(ctx, Actor{UserID: admin.ID, Role: models.RoleAdmin}, b.ID)
	assert.NoError(t, err)

	taken := "b@example.com"
	_, err = svc.Update(ctx, Actor{UserID: a.ID, Role: models.RoleStudent}, a.ID, UserUpdate{Email: &taken})
	assert.ErrorIs(t, err, ErrConflict)

	name := "Asha"
	updated, err := svc.Update(ctx, Actor{UserID: a.ID, Role: models.RoleStudent}, a.ID, UserUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Asha", updated.Name)
}

func TestLastAdminIsProtected(t *testing.T) {
	repos := memory.NewSet()
	svc := NewUserService(repos.Users)
	ctx := context.Background()

	admin := seedUser(t, repos.Users, "admin@example.com", models.RoleAdmin)

	assert.ErrorIs(t, svc.Delete(ctx, admin.ID), ErrConflict)
	_, err := svc.SetRole(ctx, admin.ID, models.RoleStudent)
	assert.ErrorIs(t, err, ErrConflict)

	second := seedUser(t, repos.Users, "second@example.com", models.RoleStudent)
	_, err = svc.SetRole(ctx, second.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.NoError(t, svc.Delete(ctx, admin.ID))

	_, err = svc.SetRole(ctx, second.ID, "superuser")
	assert.ErrorIs(t, err, ErrValidation)
}
