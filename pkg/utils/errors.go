package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds surfaced by the analysis pipeline. Match them with errors.Is.
var (
	ErrInput            = errors.New("invalid input")
	ErrResumeNotFound   = errors.New("resume not found")
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrInternal         = errors.New("internal error")
)

// CustomError represents a custom application error
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`

	kind  error
	cause error
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// Is reports whether target is the kind this error was built with.
func (e *CustomError) Is(target error) bool {
	return e.kind != nil && target == e.kind
}

// Unwrap exposes the underlying cause, if any.
func (e *CustomError) Unwrap() error {
	return e.cause
}

// NewInputError is returned when caller-supplied input violates a precondition.
func NewInputError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: "Invalid input",
		Detail:  detail,
		kind:    ErrInput,
	}
}

// NewResumeNotFoundError is returned when a resume id is not in the session store.
func NewResumeNotFoundError(resumeID string) *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Message: "Resume not found",
		Detail:  resumeID,
		kind:    ErrResumeNotFound,
	}
}

// NewAnalysisNotFoundError is returned when an analysis id is not in the session store.
func NewAnalysisNotFoundError(analysisID string) *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Message: "Analysis not found",
		Detail:  analysisID,
		kind:    ErrAnalysisNotFound,
	}
}

// NewInternalError wraps an unexpected failure. The cause is kept for logging
// and is not rendered in the message.
func NewInternalError(message string, cause error) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Message: message,
		kind:    ErrInternal,
		cause:   cause,
	}
}

// AsCustomError converts any error into a CustomError, treating unknown
// errors as internal failures.
func AsCustomError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	return NewInternalError("Internal server error", err)
}
