package store

import "fmt"

// Error is a persistence error with a stable message.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{Message: e.Message, Err: err}
}

// Sentinel errors. Services translate these into coded domain errors at
// the boundary.
var (
	ErrNotFound      = &Error{Message: "record not found"}
	ErrAlreadyExists = &Error{Message: "record already exists"}
	ErrInvalidInput  = &Error{Message: "invalid input"}
)
