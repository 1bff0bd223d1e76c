// Package apperror defines the stable error kinds the core produces.
// The presentation layer maps kinds to user-facing messages and HTTP
// statuses; the core never formats user-visible text itself.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks fatal startup misconfiguration, e.g. registering the
	// same dialog state twice. The process must not serve traffic after one.
	ErrConfig = errors.New("configuration error")

	// ErrInvalidTransition marks a dialog move the transition graph forbids.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrNotFound marks a missing shift, work log, session handler, etc.
	ErrNotFound = errors.New("not found")

	// ErrPrecondition marks a business-rule rejection distinct from not-found,
	// e.g. confirming the end of a shift that was never started.
	ErrPrecondition = errors.New("precondition violation")

	// ErrDuplicate marks a uniqueness violation, e.g. a second work log for
	// the same (employee, shift) pair.
	ErrDuplicate = errors.New("duplicate")

	// ErrUnauthorized marks an actor without the capability for an operation.
	ErrUnauthorized = errors.New("unauthorized")
)

func Configf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConfig)...)
}

func InvalidTransitionf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidTransition)...)
}

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func Preconditionf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrPrecondition)...)
}

func Duplicatef(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrDuplicate)...)
}

func Unauthorizedf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrUnauthorized)...)
}
