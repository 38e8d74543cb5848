package errors

import (
	"errors"
)

// ErrUnknownCode is a string code representing an unknown error
const ErrUnknownCode = "SCENE-000"

// Error is an error with a code, message and metadata
type Error struct {
	Code     string
	Message  string
	Metadata map[string]string
}

// NewError ctor
func NewError(err error, code string, metadata ...map[string]string) *Error {
	var pitErr *Error
	if errors.As(err, &pitErr) {
		if len(metadata) > 0 {
			mergeMetadatas(pitErr, metadata[0])
		}
		return pitErr
	}

	e := &Error{
		Code:    code,
		Message: err.Error(),
	}
	if len(metadata) > 0 {
		e.Metadata = metadata[0]
	}
	return e
}

func (e *Error) Error() string {
	return e.Message
}

func mergeMetadatas(pitErr *Error, metadata map[string]string) {
	if pitErr.Metadata == nil {
		pitErr.Metadata = metadata
		return
	}

	for key, value := range metadata {
		pitErr.Metadata[key] = value
	}
}

// CodeFromError returns the code of error.
// If error is nil, return empty string.
// If error is not a coded error, returns unknown code
func CodeFromError(err error) string {
	if err == nil {
		return ""
	}

	var pitErr *Error
	if !errors.As(err, &pitErr) {
		return ErrUnknownCode
	}

	if pitErr == nil {
		return ""
	}

	return pitErr.Code
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
