package errs

import (
	"errors"
	"fmt"
)

var (
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
)

// PreconditionFailedError names the lifecycle condition that did not hold.
type PreconditionFailedError struct {
	Condition string
	Cause     error
}

func NewPreconditionFailedError(condition string) *PreconditionFailedError {
	return &PreconditionFailedError{Condition: condition}
}

func NewPreconditionFailedErrorWithCause(condition string, cause error) *PreconditionFailedError {
	return &PreconditionFailedError{Condition: condition, Cause: cause}
}

func (e *PreconditionFailedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrPreconditionFailed, e.Condition), e.Cause)
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}

// ConflictError reports an attempt to create something that already exists.
// A conflict is also a failed precondition, so errors.Is matches both sentinels.
type ConflictError struct {
	Resource string
	ID       any
}

func NewConflictError(resource string, id any) *ConflictError {
	return &ConflictError{Resource: resource, ID: id}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s already exists for %s", ErrConflict, e.Resource, sanitize(e.ID))
}

func (e *ConflictError) Unwrap() []error {
	return []error{ErrConflict, ErrPreconditionFailed}
}

// ForbiddenError reports a caller acting on a resource it does not own.
type ForbiddenError struct {
	Resource string
	ID       any
}

func NewForbiddenError(resource string, id any) *ForbiddenError {
	return &ForbiddenError{Resource: resource, ID: id}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: caller does not own %s %s", ErrForbidden, e.Resource, sanitize(e.ID))
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}
