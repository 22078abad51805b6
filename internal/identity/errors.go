package identity

import "fmt"

// AuthError is the only error kind the session core deals in. It covers bad
// credentials, expired or invalid tokens, and transport failures, and carries
// whatever diagnostic message the remote API supplied.
type AuthError struct {
	// Status is the HTTP status code, or 0 for transport failures.
	Status int
	// Code is the WordPress error code (e.g. "jwt_auth_failed"), if any.
	Code string
	// Message is the human-readable message, suitable for inline display.
	Message string

	err error
}

func (e *AuthError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("identity request failed: %s", e.Message)
	}
	return fmt.Sprintf("identity request failed (status %d): %s", e.Status, e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.err
}

// Unauthorized reports whether the error is a 401, i.e. the token backing the
// call is no longer valid.
func (e *AuthError) Unauthorized() bool {
	return e.Status == 401
}

func transportError(err error) *AuthError {
	return &AuthError{
		Message: "could not reach the identity service",
		err:     err,
	}
}
