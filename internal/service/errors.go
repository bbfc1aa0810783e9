package service

import (
	"errors"
	"strings"
)

// Sentinel kinds the handlers map onto HTTP statuses with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation")
)

// labeledError keeps the user-facing message clean while unwrapping to one
// of the sentinel kinds.
type labeledError struct {
	msg  string
	kind error
}

func (e *labeledError) Error() string { return e.msg }
func (e *labeledError) Unwrap() error { return e.kind }

func notFound(msg string) error  { return &labeledError{msg, ErrNotFound} }
func conflict(msg string) error  { return &labeledError{msg, ErrConflict} }
func forbidden(msg string) error { return &labeledError{msg, ErrForbidden} }
func invalid(msg string) error   { return &labeledError{msg, ErrValidation} }

func missing(fields ...string) error {
	return invalid("Parameters missing: " + strings.Join(fields, ", ") + " not present")
}
