package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every domain error unwraps to exactly one of these so the
// presenters can pick a status code with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

type Error struct {
	Kind    error
	Message string
}

func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// UnknownIngredientsError lists every ingredient name of a recipe draft that
// could not be resolved against the catalog.
type UnknownIngredientsError struct {
	Names []string
}

func (e *UnknownIngredientsError) Error() string {
	return fmt.Sprintf("unknown ingredients: %s", strings.Join(e.Names, ", "))
}

func (e *UnknownIngredientsError) Unwrap() error {
	return ErrValidation
}
