package model

import "errors"

var (
	// ErrJobNotFound is returned when a job id has no registry entry,
	// either because it never existed or its TTL has expired.
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidTransition is returned when a status update would move a
	// job backwards, or restart a job that already reached a terminal state.
	ErrInvalidTransition = errors.New("invalid job status transition")

	// ErrInvalidTargetCount is returned when the requested record count
	// is not positive. No upper bound is checked.
	ErrInvalidTargetCount = errors.New("invalid target count")

	// ErrConfigurationMissing is returned when a required external
	// credential (search provider, spreadsheet collaborator) is absent,
	// so a job can never succeed. Rejected at request time rather than
	// left to fail deep inside the async pipeline.
	ErrConfigurationMissing = errors.New("required configuration missing")
)

// ErrorCode represents error codes surfaced in API responses.
type ErrorCode string

const (
	CodeJobNotFound          ErrorCode = "JOB_NOT_FOUND"
	CodeInvalidTransition    ErrorCode = "INVALID_TRANSITION"
	CodeInvalidTargetCount   ErrorCode = "INVALID_TARGET_COUNT"
	CodeConfigurationMissing ErrorCode = "CONFIGURATION_MISSING"
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
)

// GetErrorCode maps errors to error codes.
func GetErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrJobNotFound):
		return CodeJobNotFound
	case errors.Is(err, ErrInvalidTransition):
		return CodeInvalidTransition
	case errors.Is(err, ErrInvalidTargetCount):
		return CodeInvalidTargetCount
	case errors.Is(err, ErrConfigurationMissing):
		return CodeConfigurationMissing
	default:
		return CodeInternalError
	}
}

// GetErrorMessage returns a user-friendly error message.
func GetErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrJobNotFound):
		return "Job not found"
	case errors.Is(err, ErrInvalidTransition):
		return "Invalid job status transition"
	case errors.Is(err, ErrInvalidTargetCount):
		return "Invalid target count"
	case errors.Is(err, ErrConfigurationMissing):
		return "Required configuration missing"
	default:
		return "Internal server error"
	}
}
