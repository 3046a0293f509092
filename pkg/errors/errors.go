package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration defects: fatal, abort before any side effect
	ErrConfigLoad   ErrorCode = "CONFIG_LOAD"
	ErrConfigParse  ErrorCode = "CONFIG_PARSE"
	ErrConfigValid  ErrorCode = "CONFIG_INVALID"
	ErrConfigWrite  ErrorCode = "CONFIG_WRITE"
	ErrDanglingRef  ErrorCode = "DANGLING_REF"
	ErrDuplicateKey ErrorCode = "DUPLICATE_KEY"

	// Per-item operation failures: recorded, run continues
	ErrGitClone  ErrorCode = "GIT_CLONE"
	ErrGitPull   ErrorCode = "GIT_PULL"
	ErrGitAdd    ErrorCode = "GIT_ADD"
	ErrGitCommit ErrorCode = "GIT_COMMIT"
	ErrGitPush   ErrorCode = "GIT_PUSH"

	ErrLinkCreate   ErrorCode = "LINK_CREATE"
	ErrLinkConflict ErrorCode = "LINK_CONFLICT"
	ErrLinkRemove   ErrorCode = "LINK_REMOVE"

	// Skip-classified conditions: recorded as Skipped, never Failed
	ErrAlreadyLinked   ErrorCode = "ALREADY_LINKED"
	ErrLinkNotFound    ErrorCode = "LINK_NOT_FOUND"
	ErrCommitCancelled ErrorCode = "COMMIT_CANCELLED"
	ErrNotResolvable   ErrorCode = "NOT_RESOLVABLE"

	// Editor errors
	ErrEditorStart ErrorCode = "EDITOR_START"
)

// GitfarmError represents a structured error with code and details
type GitfarmError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *GitfarmError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *GitfarmError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *GitfarmError) Is(target error) bool {
	var targetErr *GitfarmError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new GitfarmError with the given code and message
func New(code ErrorCode, message string) *GitfarmError {
	return &GitfarmError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new GitfarmError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *GitfarmError {
	return &GitfarmError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a GitfarmError
func Wrap(err error, code ErrorCode, message string) *GitfarmError {
	if err == nil {
		return nil
	}
	return &GitfarmError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *GitfarmError {
	if err == nil {
		return nil
	}
	return &GitfarmError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *GitfarmError) WithDetail(key string, value interface{}) *GitfarmError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var gfErr *GitfarmError
	if errors.As(err, &gfErr) {
		return gfErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a GitfarmError
func GetErrorCode(err error) ErrorCode {
	var gfErr *GitfarmError
	if errors.As(err, &gfErr) {
		return gfErr.Code
	}
	return ErrUnknown
}

// IsSkip reports whether an error describes a condition the dispatcher
// records as Skipped rather than Failed.
func IsSkip(err error) bool {
	switch GetErrorCode(err) {
	case ErrAlreadyLinked, ErrLinkNotFound, ErrCommitCancelled, ErrNotResolvable:
		return true
	}
	return false
}

// IsConfigDefect reports whether an error is a configuration defect, which
// aborts a run before any side effect executes.
func IsConfigDefect(err error) bool {
	switch GetErrorCode(err) {
	case ErrConfigLoad, ErrConfigParse, ErrConfigValid, ErrDanglingRef, ErrDuplicateKey:
		return true
	}
	return false
}
