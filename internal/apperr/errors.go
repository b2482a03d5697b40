// Package apperr defines the error kinds surfaced by the store and the services.
//
// Every error returned by this module that callers are expected to act on wraps one
// of the sentinel kinds below, so handlers can branch with errors.Is:
//
//	if errors.Is(err, apperr.ErrNotFound) { ... }
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced entity id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a uniqueness rule is violated.
	ErrConflict = errors.New("conflict")

	// ErrValidation is returned when a business rule rejects the input.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized is returned when credentials are missing or wrong.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTransaction is returned when the store could not commit a unit of work.
	ErrTransaction = errors.New("transaction failed")
)

// Error carries a kind plus the entity it concerns.
type Error struct {
	Kind    error
	Entity  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Entity != "" {
		msg = e.Entity + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NotFound reports a missing entity.
func NotFound(entity string, id any) error {
	return &Error{Kind: ErrNotFound, Entity: entity, Message: fmt.Sprintf("id %v not found", id)}
}

// Conflict reports a uniqueness violation.
func Conflict(entity, message string) error {
	return &Error{Kind: ErrConflict, Entity: entity, Message: message}
}

// Validation reports a business-rule violation.
func Validation(entity, message string) error {
	return &Error{Kind: ErrValidation, Entity: entity, Message: message}
}

// Unauthorized reports rejected credentials.
func Unauthorized(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

// Transaction wraps a store failure that aborted a unit of work.
// Errors that already carry a kind are returned unchanged.
func Transaction(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return &Error{Kind: ErrTransaction, Message: "unit of work rolled back", Err: err}
}

// IsTyped reports whether err carries one of the typed kinds defined here.
func IsTyped(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrValidation) || errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrTransaction)
}
