package domain

import (
	"errors"
	"fmt"
)

// Error codes reported to callers. Caller-input errors are never retried;
// collaborator failures carry the underlying message.
const (
	CodeInvalidQuery = "invalid_query"
	CodeInvalidID    = "invalid_id"
	CodeSearchFailed = "search_failed"
	CodeFetchFailed  = "fetch_failed"
)

// TaggedError is an error with a stable machine-readable code, used by the
// transport adapters to map failures onto their wire format.
type TaggedError struct {
	Code string
	Err  error
}

func (e *TaggedError) Error() string {
	if e.Err == nil {
		return e.Code
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *TaggedError) Unwrap() error { return e.Err }

// Tagged wraps err with the given code.
func Tagged(code string, err error) *TaggedError {
	return &TaggedError{Code: code, Err: err}
}

// Taggedf builds a TaggedError from a format string.
func Taggedf(code, format string, args ...any) *TaggedError {
	return &TaggedError{Code: code, Err: fmt.Errorf(format, args...)}
}

// ErrorCode extracts the code from err, or "" when err carries none.
func ErrorCode(err error) string {
	var te *TaggedError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}
