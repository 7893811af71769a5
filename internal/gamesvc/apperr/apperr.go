// Package apperr defines the failure kinds the game service reports to
// clients. Stores and services return *Error for expected conditions; any
// other error is treated as Internal by the gateway.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal Kind = iota
	NotFound
	BadCredentials
	Forbidden
	SequenceMismatch
	Validation
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case BadCredentials:
		return "bad_credentials"
	case Forbidden:
		return "forbidden"
	case SequenceMismatch:
		return "sequence_mismatch"
	case Validation:
		return "validation"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Message string // shown to the client
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so errors.Is(err, apperr.ErrNotFound)
// works regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Sentinels for errors.Is.
var (
	ErrNotFound         = New(NotFound, "not found")
	ErrBadCredentials   = New(BadCredentials, "bad credentials")
	ErrForbidden        = New(Forbidden, "forbidden")
	ErrSequenceMismatch = New(SequenceMismatch, "sequence mismatch")
	ErrValidation       = New(Validation, "validation")
)

// Messages used across the service.
const (
	MsgPlayerNotFound    = "No player found"
	MsgIncorrectPassword = "Incorrect password"
	MsgUnknownPlayerName = "Unknown player name."
	MsgGameNotFound      = "No game found"
	MsgGameNotOwned      = "Given game doesn't belong to given player"
	msgUnexpectedMoveIdx = "Unexpected move index. Expected %d, got %d"
)

func UnexpectedMoveIndex(expected, got int) *Error {
	return Newf(SequenceMismatch, msgUnexpectedMoveIdx, expected, got)
}

// KindOf returns the kind of the first *Error in err's chain, Internal otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// MessageOf returns the client facing message, or "" for internal errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Message
	}
	return ""
}
