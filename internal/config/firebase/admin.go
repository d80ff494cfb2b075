package firebase

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var ErrNotConfigured = errors.New("google sign-in is not configured")

// ProviderGoogle is the sign-in provider Firebase reports for Google accounts.
const ProviderGoogle = "google.com"

// Identity is the verified subject of a Google ID token.
type Identity struct {
	UID           string
	Email         string
	EmailVerified bool
	Name          string
	Provider      string
}

// Trusted reports whether the identity proves ownership of its email:
// a verified address from Google sign-in.
func (id *Identity) Trusted() bool {
	return id != nil && id.EmailVerified && id.Provider == ProviderGoogle && id.Email != ""
}

// Verifier checks Google ID tokens issued through Firebase Authentication.
type Verifier struct {
	client *auth.Client
}

// NewVerifier initializes the Firebase Admin SDK from a service account file.
func NewVerifier(ctx context.Context, credentialsFile string) (*Verifier, error) {
	if credentialsFile == "" {
		return nil, ErrNotConfigured
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firebase Auth client: %w", err)
	}

	return &Verifier{client: client}, nil
}

// Verify validates idToken and returns the identity it asserts.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	if v == nil || v.client == nil {
		return nil, ErrNotConfigured
	}

	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	id := identityFromToken(token)
	if id.Email == "" {
		return nil, fmt.Errorf("ID token for %s carries no email", token.UID)
	}
	return id, nil
}

func identityFromToken(token *auth.Token) *Identity {
	id := &Identity{UID: token.UID, Provider: token.Firebase.SignInProvider}
	if email, ok := token.Claims["email"].(string); ok {
		id.Email = email
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		id.EmailVerified = verified
	}
	if name, ok := token.Claims["name"].(string); ok {
		id.Name = name
	}
	return id
}
