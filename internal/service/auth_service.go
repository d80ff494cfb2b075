package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/osa911/hostelhub/internal/auth"
	"github.com/osa911/hostelhub/internal/config/firebase"
	"github.com/osa911/hostelhub/internal/logging"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/repository"
)

// IdentityVerifier verifies third-party ID tokens.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*firebase.Identity, error)
}

type AuthService struct {
	users    repository.UserRepository
	tokens   *auth.JWTManager
	verifier IdentityVerifier
	logger   *logging.Logger
}

// NewAuthService creates the auth service. verifier may be nil, which disables
// Google sign-in.
func NewAuthService(users repository.UserRepository, tokens *auth.JWTManager, verifier IdentityVerifier) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		verifier: verifier,
		logger:   logging.GetLogger(),
	}
}

// NormalizeEmail lower-cases and trims an address, rejecting malformed ones.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", newError(ErrValidation, "Invalid email address")
	}
	return email, nil
}

// Signup registers a student account and returns it with a session token.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", newError(ErrValidation, "Name is required")
	}
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, "", err
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, "", &Error{Kind: ErrValidation, Message: "Password must be at least 8 characters", Err: err}
	}

	user, err := s.createUser(ctx, name, email, password, models.RoleStudent)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("New user signed up: %s", user.Email)
	return s.issue(user)
}

// Login checks email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", newError(ErrUnauthorized, "Invalid email or password")
		}
		return nil, "", storeError(err, "", "")
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, "", &Error{Kind: ErrUnauthorized, Message: "Invalid email or password", Err: err}
	}
	return s.issue(user)
}

// GoogleSignIn verifies a Google ID token and signs the user in, creating a
// student account with an unusable random password on first use.
func (s *AuthService) GoogleSignIn(ctx context.Context, idToken string) (*models.User, string, error) {
	if s.verifier == nil {
		return nil, "", newError(ErrUnavailable, "Google sign-in is not enabled")
	}
	if strings.TrimSpace(idToken) == "" {
		return nil, "", newError(ErrValidation, "ID token is required")
	}

	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, firebase.ErrNotConfigured) {
			return nil, "", &Error{Kind: ErrUnavailable, Message: "Google sign-in is not enabled", Err: err}
		}
		return nil, "", &Error{Kind: ErrUnauthorized, Message: "Invalid Google token", Err: err}
	}
	if !identity.Trusted() {
		s.logger.Warn("Rejected Google sign-in for uid %s: provider %q, email verified %t",
			identity.UID, identity.Provider, identity.EmailVerified)
		return nil, "", newError(ErrUnauthorized, "Google account email is not verified")
	}

	email := strings.ToLower(identity.Email)
	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return s.issue(user)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, "", storeError(err, "", "")
	}

	pw, err := auth.RandomPassword()
	if err != nil {
		return nil, "", &Error{Kind: ErrStore, Message: "Failed to create account", Err: err}
	}
	name := identity.Name
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	user, err = s.createUser(ctx, name, email, pw, models.RoleStudent)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("Created user %s from Google sign-in (uid %s)", user.Email, identity.UID)
	return s.issue(user)
}

// Authenticate resolves a session token to its current user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, &Error{Kind: ErrUnauthorized, Message: "Not authorized, token failed", Err: err}
	}
	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrUnauthorized, "User no longer exists")
		}
		return nil, storeError(err, "", "")
	}
	return user, nil
}

// EnsureAdmin creates an admin account, or promotes and re-passwords an
// existing one with the same email.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (*models.User, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, &Error{Kind: ErrValidation, Message: "Password must be at least 8 characters", Err: err}
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		if strings.TrimSpace(name) == "" {
			name = strings.SplitN(email, "@", 2)[0]
		}
		return s.createUser(ctx, strings.TrimSpace(name), email, password, models.RoleAdmin)
	}
	if err != nil {
		return nil, storeError(err, "", "")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, &Error{Kind: ErrStore, Message: "Failed to hash password", Err: err}
	}
	existing.Role = models.RoleAdmin
	existing.PasswordHash = hash
	if name = strings.TrimSpace(name); name != "" {
		existing.Name = name
	}
	if err := s.users.Update(ctx, existing); err != nil {
		return nil, storeError(err, "User not found", "Email already in use")
	}
	return existing, nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, password string, role models.UserRole) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, &Error{Kind: ErrStore, Message: "Failed to hash password", Err: err}
	}
	user := &models.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeError(err, "", "User already exists")
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*models.User, string, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", &Error{Kind: ErrStore, Message: "Failed to issue token", Err: err}
	}
	return user, token, nil
}
