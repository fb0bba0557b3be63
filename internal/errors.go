package internal

import "errors"

// ErrNotFound signals that a referenced checkpoint, task, or checklist item
// does not exist in the current timeline. Mutations driven by stale UI state
// treat it as a reported no-op, never a failure.
var ErrNotFound = errors.New("not found in timeline")

// AppError is the error payload of the API response envelope.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}
