// Package launcherr defines the typed error kinds used throughout the
// launcher (spec §7) in place of the exception-based control flow of
// the original source (spec §9 "Exceptions for control flow").
package launcherr

import (
	"errors"
	"fmt"
)

// Kind classifies a launcher error for callers that need to branch on
// failure category rather than match error text.
type Kind int

const (
	// InvalidFormat marks malformed or structurally incomplete XML
	// (manifests, configs, profiles).
	InvalidFormat Kind = iota
	// NotFound marks a missing UUID, named profile, or module reference.
	NotFound
	// IOFailed marks a disk or pipe operation failure.
	IOFailed
	// ProtocolFailed marks a pipe reply that never arrived, was the
	// wrong length, or carried a failure status byte.
	ProtocolFailed
	// InvalidState marks a command issued out of the required sequence.
	InvalidState
	// DependencyUnresolved marks an unsatisfiable patch-prerequisite chain.
	DependencyUnresolved
)

func (k Kind) String() string {
	switch k {
	case InvalidFormat:
		return "invalid-format"
	case NotFound:
		return "not-found"
	case IOFailed:
		return "io-failed"
	case ProtocolFailed:
		return "protocol-failed"
	case InvalidState:
		return "invalid-state"
	case DependencyUnresolved:
		return "dependency-unresolved"
	default:
		return "unknown"
	}
}

// Error is the launcher's typed error value. It wraps an optional cause
// and records which component raised it, so logs can report both the
// human message and the structured kind/component fields.
type Error struct {
	Kind      Kind
	Component string
	Message   string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Component, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Component, e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether err, or any error it wraps, is a *Error of the
// given kind. Kind is not itself an error value, so errors.Is cannot
// match on a kind; callers use Is(err, kind), or errors.As to get the
// full *Error.
func Is(err error, kind Kind) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind == kind
	}
	return false
}

// New creates a launcher error with no wrapped cause.
func New(kind Kind, component, message string) *Error {
	return &Error{Kind: kind, Component: component, Message: message}
}

// Newf creates a launcher error with a formatted message.
func Newf(kind Kind, component, format string, args ...any) *Error {
	return &Error{Kind: kind, Component: component, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a launcher error that carries an underlying cause.
func Wrap(kind Kind, component string, cause error, message string) *Error {
	return &Error{Kind: kind, Component: component, Message: message, Cause: cause}
}

// Wrapf creates a launcher error with a formatted message and a cause.
func Wrapf(kind Kind, component string, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Component: component, Message: fmt.Sprintf(format, args...), Cause: cause}
}
