package models

import (
	"errors"
	"fmt"
)

// Error codes used for internal classification and diagnostics.
const (
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeFetchTimeout    = "FETCH_TIMEOUT"
	ErrCodeFetchConnection = "FETCH_CONNECTION"
	ErrCodeFetchStatus     = "FETCH_STATUS"
	ErrCodeFetchFailed     = "FETCH_FAILED"
	ErrCodeExtraction      = "EXTRACTION_FAILED"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeInternal        = "INTERNAL_ERROR"

	// Backend codes never leave the summarizer; they are logged and the
	// request degrades to a fallback result.
	ErrCodeBackendUnavailable = "BACKEND_UNAVAILABLE"
	ErrCodeBackendFailure     = "BACKEND_FAILURE"
)

// PipelineError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type PipelineError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewPipelineError creates a new PipelineError.
func NewPipelineError(code, message string, err error) *PipelineError {
	return &PipelineError{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of the first PipelineError in err's chain,
// or ErrCodeInternal when there is none.
func CodeOf(err error) string {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrCodeInternal
}

// IsFetchFailure reports whether code is one of the fetch failure kinds.
func IsFetchFailure(code string) bool {
	switch code {
	case ErrCodeFetchTimeout, ErrCodeFetchConnection, ErrCodeFetchStatus, ErrCodeFetchFailed:
		return true
	}
	return false
}
