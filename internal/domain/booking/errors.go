package booking

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies engine failures so callers know whether to fix input,
// pick an alternative, or retry the whole operation.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindSlotUnavailable Kind = "slot_unavailable"
	KindConflict        Kind = "conflict"
	KindConcurrency     Kind = "concurrency"
	KindNotFound        Kind = "not_found"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string

	// References of the bookings a ConflictError collides with.
	ConflictingRefs []string
}

func (e *Error) Error() string {
	if len(e.ConflictingRefs) > 0 {
		return fmt.Sprintf("%s: %s (conflicts: %s)", e.Code, e.Message, strings.Join(e.ConflictingRefs, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidation(code, message string) error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func NewSlotUnavailable(code, message string) error {
	return &Error{Kind: KindSlotUnavailable, Code: code, Message: message}
}

func NewConflict(code, message string, refs ...string) error {
	return &Error{Kind: KindConflict, Code: code, Message: message, ConflictingRefs: refs}
}

func NewConcurrency(code, message string) error {
	return &Error{Kind: KindConcurrency, Code: code, Message: message}
}

func NewNotFound(code, message string) error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

// KindOf extracts the error kind, or "" for non-engine errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// AsError unwraps an engine error, or nil.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
