// Package apperror defines the error values domain services return to the
// transport layer. Every expected failure carries a Kind the caller can
// branch on plus the field name(s) that caused it.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindAlreadyCancelled Kind = "already_cancelled"
	KindStorage          Kind = "storage"
)

type Error struct {
	Kind    Kind
	Message string
	// Fields names the offending request field(s). Missing-field validation
	// carries the full set; format and reference failures carry one.
	Fields []string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(e.Fields, ", "))
}

func Validation(message string, fields ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func NotFound(message string, fields ...string) *Error {
	return &Error{Kind: KindNotFound, Message: message, Fields: fields}
}

func Conflict(message string, fields ...string) *Error {
	return &Error{Kind: KindConflict, Message: message, Fields: fields}
}

func AlreadyCancelled(message string) *Error {
	return &Error{Kind: KindAlreadyCancelled, Message: message}
}

// Storage wraps an unexpected store failure. The wrapped error is kept for
// logs; the Message is what callers may show externally.
func Storage(op string, err error) *Error {
	return &Error{Kind: KindStorage, Message: fmt.Sprintf("%s: %v", op, err)}
}

// From extracts an *Error from err's chain, or nil.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	e := From(err)
	return e != nil && e.Kind == k
}
