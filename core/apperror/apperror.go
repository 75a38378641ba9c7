package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindCapacity          Kind = "capacity"
	KindTransientStorage  Kind = "transient_storage"
	KindConsistencyDrift  Kind = "consistency_drift"
	KindAllocationFailure Kind = "allocation_failure"
	KindNotFound          Kind = "not_found"
)

// Sentinels for errors.Is matching. An *Error matches the sentinel of its kind.
var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrCapacity          = &Error{Kind: KindCapacity}
	ErrTransientStorage  = &Error{Kind: KindTransientStorage}
	ErrConsistencyDrift  = &Error{Kind: KindConsistencyDrift}
	ErrAllocationFailure = &Error{Kind: KindAllocationFailure}
	ErrNotFound          = &Error{Kind: KindNotFound}
)

// Error is a classified failure. Op names the operation that failed (e.g. "media.upload").
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates a classified error with a formatted message.
func New(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies err. A nil err yields nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Validation is shorthand for New(KindValidation, ...).
func Validation(op, format string, args ...any) *Error {
	return New(KindValidation, op, format, args...)
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
