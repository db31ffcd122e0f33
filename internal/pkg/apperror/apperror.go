package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation         Kind = "VALIDATION_ERROR"
	KindAuthentication     Kind = "AUTHENTICATION_ERROR"
	KindAuthorization      Kind = "AUTHORIZATION_ERROR"
	KindNotFound           Kind = "NOT_FOUND"
	KindConflict           Kind = "CONFLICT"
	KindStorageUnavailable Kind = "STORAGE_UNAVAILABLE"
	KindInternal           Kind = "INTERNAL_ERROR"
)

// ErrStorageUnavailable matches every storage-unavailable error with errors.Is.
var ErrStorageUnavailable = &Error{Kind: KindStorageUnavailable, Message: "storage unavailable"}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind so callers can compare against the package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) error {
	return New(KindValidation, message)
}

func Authentication(message string) error {
	return New(KindAuthentication, message)
}

func Authorization(message string) error {
	return New(KindAuthorization, message)
}

func NotFound(message string) error {
	return New(KindNotFound, message)
}

func Conflict(message string) error {
	return New(KindConflict, message)
}

func StorageUnavailable(message string, err error) error {
	return Wrap(KindStorageUnavailable, message, err)
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the client-facing message for err. Internal errors never
// leak their text.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "internal server error"
}
