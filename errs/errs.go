package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error the way the API reports it.
type Kind int

const (
	KindInternal Kind = iota
	KindInsufficientStock
	KindNotFound
	KindForbidden
	KindInvalidTransition
	KindLimitExceeded
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindInsufficientStock:
		return "insufficient_stock"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindLimitExceeded:
		return "limit_exceeded"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error carries a kind alongside a user-facing message. Validation-shaped
// errors (insufficient stock, invalid transition, limits) are returned with
// their kind so callers can map them to a response instead of treating them
// as failures.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf reports the kind of err, walking the wrap chain. Unclassified
// errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error kind to the response status the handlers use.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInsufficientStock, KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidTransition, KindLimitExceeded:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
