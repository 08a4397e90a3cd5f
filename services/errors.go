package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
)

// Error codes shared by every service. Controllers map them to HTTP statuses.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeDatabase     = "DATABASE_ERROR"
)

// ServiceError is the error type returned by the data-access services
type ServiceError struct {
	Code    string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is matches another ServiceError with the same code and message, so wrapped
// copies of a sentinel still satisfy errors.Is.
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

var (
	ErrNotFound            = &ServiceError{Code: CodeNotFound, Message: "resource not found"}
	ErrDuplicateEmail      = &ServiceError{Code: CodeConflict, Message: "email already registered"}
	ErrInvalidCredentials  = &ServiceError{Code: CodeUnauthorized, Message: "invalid email or password"}
	ErrInvalidRating       = &ServiceError{Code: CodeValidation, Message: "rating must be between 1 and 5"}
	ErrInvalidInput        = &ServiceError{Code: CodeValidation, Message: "invalid input"}
	ErrCartEmpty           = &ServiceError{Code: CodeValidation, Message: "cart is empty"}
	ErrOrderNotCancellable = &ServiceError{Code: CodeConflict, Message: "only processing orders can be cancelled"}
)

// notFound returns ErrNotFound with a more specific message
func notFound(what string) error {
	return &ServiceError{Code: CodeNotFound, Message: what + " not found", Err: ErrNotFound}
}

// invalidInput returns ErrInvalidInput with a more specific message
func invalidInput(message string) error {
	return &ServiceError{Code: CodeValidation, Message: message, Err: ErrInvalidInput}
}

// databaseError logs an unexpected database failure and wraps it as DATABASE_ERROR
func databaseError(op string, err error) error {
	log.Printf("Database error during %s: %v", op, err)
	return &ServiceError{Code: CodeDatabase, Message: "failed to " + op, Err: err}
}

// lookupError turns a failed single-row lookup into ErrNotFound or DATABASE_ERROR
func lookupError(what, op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(what)
	}
	return databaseError(op, err)
}

// CodeOf returns the ServiceError code carried by err, or DATABASE_ERROR for anything else
func CodeOf(err error) string {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Code
	}
	return CodeDatabase
}

// isUniqueViolation matches unique constraint failures of SQLite and PostgreSQL
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}

// asServiceError passes ServiceErrors through and wraps anything else as DATABASE_ERROR.
// Used on the result of db.Transaction, which may fail on commit.
func asServiceError(op string, err error) error {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return err
	}
	return databaseError(op, err)
}
