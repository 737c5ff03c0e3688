package login

import "errors"

var (
	// ErrInvalidFormData is returned when the submitted login form cannot be parsed.
	ErrInvalidFormData = errors.New("invalid form data")

	// ErrInvalidCredentials is returned when username and password do not match an active user.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNilDeps is returned when Init misses a collaborator.
	ErrNilDeps = errors.New("app or deps is nil")
)
