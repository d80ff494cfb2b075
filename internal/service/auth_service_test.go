package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/osa911/hostelhub/internal/auth"
	"github.com/osa911/hostelhub/internal/config/firebase"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	identity *firebase.Identity
	err      error
}

func (f *fakeVerifier) Verify(ctx context.Context, idToken string) (*firebase.Identity, error) {
	return f.identity, f.err
}

func newAuthService(verifier IdentityVerifier) (*AuthService, *memory.Store) {
	store := memory.NewStore()
	return NewAuthService(store.Set().Users, auth.NewJWTManager("secret", time.Hour), verifier), store
}

func TestSignupAndLogin(t *testing.T) {
	svc, _ := newAuthService(nil)
	ctx := context.Background()

	user, token, err := svc.Signup(ctx, "Asha", " Asha@Example.com ", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)

	_, _, err = svc.Signup(ctx, "Asha again", "asha@example.com", "password123")
	assert.ErrorIs(t, err, ErrConflict)

	loggedIn, token2, err := svc.Login(ctx, "ASHA@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	current, err := svc.Authenticate(ctx, token2)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)

	_, _, err = svc.Login(ctx, "asha@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSignupValidation(t *testing.T) {
	svc, _ := newAuthService(nil)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "", "a@example.com", "password123")
	assert.ErrorIs(t, err, ErrValidation)
	_, _, err = svc.Signup(ctx, "A", "not-an-email", "password123")
	assert.ErrorIs(t, err, ErrValidation)
	_, _, err = svc.Signup(ctx, "A", "a@example.com", "short")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthenticateDeletedUser(t *testing.T) {
	svc, store := newAuthService(nil)
	ctx := context.Background()

	user, token, err := svc.Signup(ctx, "Asha", "asha@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, store.Set().Users.Delete(ctx, user.ID))

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGoogleSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		svc, _ := newAuthService(nil)
		_, _, err := svc.GoogleSignIn(ctx, "token")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("not configured", func(t *testing.T) {
		svc, _ := newAuthService(&fakeVerifier{err: firebase.ErrNotConfigured})
		_, _, err := svc.GoogleSignIn(ctx, "token")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("bad token", func(t *testing.T) {
		svc, _ := newAuthService(&fakeVerifier{err: errors.New("expired")})
		_, _, err := svc.GoogleSignIn(ctx, "token")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unverified email cannot take over an existing admin", func(t *testing.T) {
		tests := []struct {
			name     string
			identity *firebase.Identity
		}{
			{"email not verified", &firebase.Identity{UID: "x1", Email: "warden@example.com", Provider: firebase.ProviderGoogle}},
			{"password provider", &firebase.Identity{UID: "x2", Email: "warden@example.com", EmailVerified: true, Provider: "password"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, store := newAuthService(&fakeVerifier{identity: tt.identity})
				_, err := svc.EnsureAdmin(ctx, "Warden", "warden@example.com", "password123")
				require.NoError(t, err)

				user, token, err := svc.GoogleSignIn(ctx, "token")
				assert.ErrorIs(t, err, ErrUnauthorized)
				assert.Nil(t, user)
				assert.Empty(t, token)

				n, err := store.Set().Users.CountByRole(ctx, models.RoleStudent)
				require.NoError(t, err)
				assert.Zero(t, n)
			})
		}
	})

	t.Run("creates then reuses account", func(t *testing.T) {
		svc, store := newAuthService(&fakeVerifier{identity: &firebase.Identity{
			UID: "g1", Email: "Ravi@Example.com", EmailVerified: true, Name: "Ravi", Provider: firebase.ProviderGoogle,
		}})

		first, token, err := svc.GoogleSignIn(ctx, "token")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "ravi@example.com", first.Email)
		assert.Equal(t, models.RoleStudent, first.Role)

		second, _, err := svc.GoogleSignIn(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		n, err := store.Set().Users.CountByRole(ctx, models.RoleStudent)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})
}

func TestEnsureAdmin(t *testing.T) {
	svc, _ := newAuthService(nil)
	ctx := context.Background()

	admin, err := svc.EnsureAdmin(ctx, "Warden", "warden@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	student, _, err := svc.Signup(ctx, "Asha", "asha@example.com", "password123")
	require.NoError(t, err)
	promoted, err := svc.EnsureAdmin(ctx, "", "asha@example.com", "newpassword1")
	require.NoError(t, err)
	assert.Equal(t, student.ID, promoted.ID)
	assert.Equal(t, models.RoleAdmin, promoted.Role)

	_, _, err = svc.Login(ctx, "asha@example.com", "newpassword1")
	assert.NoError(t, err)
}
