package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNameExists is returned when attempting to create a user with a taken username.
	ErrUserNameExists = errors.New("user with username already exists")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrUnauthenticated is returned when the request carries no logged in user.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrAccessDenied matches every *AccessDeniedError via errors.Is.
	ErrAccessDenied = errors.New("access denied")
)

// AccessDeniedError is returned when the current user lacks a permission.
type AccessDeniedError struct {
	UserID     uint64
	Permission string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied: user %d lacks permission %q", e.UserID, e.Permission)
}

// Is makes errors.Is(err, ErrAccessDenied) work.
func (e *AccessDeniedError) Is(target error) bool {
	return target == ErrAccessDenied
}
