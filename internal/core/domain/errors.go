package domain

import "errors"

// User-visible failures. Each is detected before any store mutation except
// ErrDuplicateUsername, which comes from the store's uniqueness constraint.
var (
	ErrMissingField       = errors.New("missing required field")
	ErrWeakPassword       = errors.New("password does not meet the complexity policy")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ErrStoreUnavailable marks a failed store operation. Adapters join it with
// the driver error so callers can test with errors.Is while logs keep the cause.
var ErrStoreUnavailable = errors.New("store unavailable")

// Internal lookups. Adapters return these and services translate them; they
// never reach a response as-is.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
)

// StoreError wraps a driver failure for the named operation.
func StoreError(op string, err error) error {
	return &storeError{op: op, err: err}
}

type storeError struct {
	op  string
	err error
}

func (e *storeError) Error() string {
	return e.op + ": " + e.err.Error()
}

func (e *storeError) Unwrap() []error {
	return []error{ErrStoreUnavailable, e.err}
}
