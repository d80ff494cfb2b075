package service

import (
	"errors"
	"fmt"

	"github.com/osa911/hostelhub/internal/repository"
)

// Sentinel errors for service layer
var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict error")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("unavailable")
	ErrStore        = errors.New("store error")
)

// Error carries a message safe to show to the caller alongside its kind.
// errors.Is matches Kind; Err holds the underlying cause, if any.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// storeError classifies a repository failure. Not-found and duplicate errors get
// the given messages; everything else becomes ErrStore.
func storeError(err error, notFound, conflict string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return &Error{Kind: ErrNotFound, Message: notFound, Err: err}
	case errors.Is(err, repository.ErrDuplicate):
		return &Error{Kind: ErrConflict, Message: conflict, Err: err}
	default:
		return &Error{Kind: ErrStore, Message: "Internal storage error", Err: err}
	}
}

// Message returns the user-facing message of err, or fallback if it has none.
func Message(err error, fallback string) string {
	var svcErr *Error
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		return svcErr.Message
	}
	return fallback
}
