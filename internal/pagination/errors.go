package pagination

import (
	"errors"
	"fmt"
)

var (
	ErrFirstRequired      = errors.New("pagination: first is required")
	ErrNegativeFirst      = errors.New("pagination: first must not be negative")
	ErrNegativeLast       = errors.New("pagination: last must not be negative")
	ErrBackwardPagination = errors.New("pagination: before/last are not supported, paginate forward with first/after")
	ErrReservedSourceKey  = errors.New("pagination: source key is reserved")
	ErrInvalidPage        = errors.New("pagination: page and size must be positive")
	ErrInvalidCursor      = errors.New("invalid cursor")
)

// DecodeError reports a cursor that could not be decoded. It matches
// ErrInvalidCursor with errors.Is.
type DecodeError struct {
	Cursor string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid cursor %q: %s: %v", e.Cursor, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid cursor %q: %s", e.Cursor, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrInvalidCursor }

func decodeError(cursor, reason string, err error) *DecodeError {
	return &DecodeError{Cursor: cursor, Reason: reason, Err: err}
}
