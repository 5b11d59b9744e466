package market

import (
	"errors"
	"fmt"
)

// Kind классифицирует отказ операции; HTTP-слой сопоставляет его со статусом ответа.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindInvalidState
	KindInvalidInput
	KindGone
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid state"
	case KindInvalidInput:
		return "invalid input"
	case KindGone:
		return "gone"
	default:
		return "internal"
	}
}

// Error is a typed domain failure. Desc is the user-facing description.
type Error struct {
	Kind Kind
	Desc string
}

func (e *Error) Error() string {
	if e.Desc != "" {
		return e.Desc
	}
	return e.Kind.String()
}

// Is matches any *Error of the same kind when the target carries no description,
// so errors.Is(err, ErrForbidden) works for every forbidden failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Desc == "" || t.Desc == e.Desc)
}

var (
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrForbidden    = &Error{Kind: KindForbidden}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrInvalidState = &Error{Kind: KindInvalidState}
	ErrInvalidInput = &Error{Kind: KindInvalidInput}
	ErrGone         = &Error{Kind: KindGone}
)

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Desc: fmt.Sprintf(format, args...)}
}

// KindOf возвращает вид доменной ошибки; всё остальное считается внутренней ошибкой.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
