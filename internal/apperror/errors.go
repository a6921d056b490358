package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the error type services and pipelines return to the HTTP layer.
// Code is the HTTP status the error-handler middleware responds with.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidation marks a request rejected before any mutation happened.
func NewValidation(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

// NewSessionNotFound covers both unknown and logically expired session ids.
func NewSessionNotFound(sessionId string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("Session %s not found or expired.", sessionId),
	}
}

// NewIngestion marks an embedding or store-write failure after rollback.
func NewIngestion(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: err}
}

// NewExport marks a document rendering failure.
func NewExport(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: err}
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusNotFound
}
