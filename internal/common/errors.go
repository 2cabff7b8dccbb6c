// Package common defines sentinel errors and header names shared by the
// server transports, the services and the client. Callers should match the
// errors with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrInternal   = errors.New("internal error")
	ErrValidation = errors.New("validation error")

	// Credential errors. Unknown email and wrong password share one value.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateAccount   = errors.New("account already exists")

	// Token errors. Bad signature and expiry share one value.
	ErrInvalidToken    = errors.New("invalid token")
	ErrMalformedHeader = errors.New("malformed authorization header")
	ErrMissingSecret   = errors.New("token signing secret is not configured")

	// Authorization errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// publicMessages holds the text shown to API callers for each known error.
var publicMessages = []struct {
	err error
	msg string
}{
	{ErrInvalidCredentials, "User or password incorrect"},
	{ErrDuplicateAccount, "This user already exists"},
	{ErrInvalidToken, "You must be logged in - invalid token"},
	{ErrMalformedHeader, "You must be logged in"},
	{ErrUnauthorized, "You must be logged in"},
	{ErrForbidden, "You can not modify this user"},
	{ErrNotFound, "User not found"},
	{ErrValidation, "Invalid input"},
}

// PublicMessage returns the human-readable message for err. Errors that are
// not part of the auth vocabulary (store faults and the like) collapse into
// a generic "internal error" so nothing internal leaks to the caller.
func PublicMessage(err error) string {
	for _, m := range publicMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return ErrInternal.Error()
}

// IsPublic reports whether err has a dedicated public message.
func IsPublic(err error) bool {
	for _, m := range publicMessages {
		if errors.Is(err, m.err) {
			return true
		}
	}
	return false
}
