package apperrors

import (
	"errors"
	"fmt"
)

// Cross-domain error taxonomy. Domain packages keep their own sentinel
// errors and map onto these where the API contract requires it.
var (
	// ErrNotAuthenticated: a mutation requiring an identity was invoked
	// anonymously. Surfaced verbatim, no retry.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInvalidCredential: a supplied bearer token failed verification.
	// The whole request is rejected; there is no partial auth.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrInvalidCredentials: login with a username/password pair that does
	// not resolve. One generic message for both unknown user and wrong
	// password, so usernames cannot be enumerated.
	ErrInvalidCredentials = errors.New("wrong credentials")

	// ErrInvalidInput: a write violated a store constraint or failed
	// validation. Use Input() to attach the offending arguments.
	ErrInvalidInput = errors.New("invalid input")
)

// InputError wraps a store or validation failure together with the
// arguments that caused it, so the client can correct and resubmit.
type InputError struct {
	Err  error
	Args map[string]interface{}
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %v", e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrInvalidInput) match any InputError.
func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

// Input wraps err as an InputError carrying the offending arguments.
func Input(err error, args map[string]interface{}) error {
	return &InputError{Err: err, Args: args}
}

// ToErrorCode converts an error to its API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return "NOT_AUTHENTICATED"
	case errors.Is(err, ErrInvalidCredential):
		return "INVALID_CREDENTIAL"
	case errors.Is(err, ErrInvalidCredentials):
		return "INVALID_CREDENTIALS"
	case errors.Is(err, ErrInvalidInput):
		return "INVALID_INPUT"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts an error to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return 401
	case errors.Is(err, ErrInvalidCredential):
		return 401
	case errors.Is(err, ErrInvalidCredentials):
		return 401
	case errors.Is(err, ErrInvalidInput):
		return 400
	default:
		return 500
	}
}
