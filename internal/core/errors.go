package core

import (
	"errors"
	"net/http"
)

// ErrorKind classifies extraction failures so the HTTP layer can pick a
// status class without inspecting error strings.
type ErrorKind int

const (
	ErrInternal ErrorKind = iota
	ErrMissingInput
	ErrRemoteCallFailed
	ErrProcessFailed
	ErrMalformedOutput
	ErrTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case ErrMissingInput:
		return "missing_input"
	case ErrRemoteCallFailed:
		return "remote_call_failed"
	case ErrProcessFailed:
		return "external_process_failed"
	case ErrMalformedOutput:
		return "malformed_output"
	case ErrTimeout:
		return "timeout"
	default:
		return "internal"
	}
}

// HTTPStatus maps a kind to its status class: caller errors are 400,
// deadline overruns 504, everything else 500.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case ErrMissingInput:
		return http.StatusBadRequest
	case ErrTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ParseError is the failure value produced at the orchestrator boundary.
// All extraction failures are converted to one before reaching handlers.
type ParseError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }

func NewError(kind ErrorKind, message string) *ParseError {
	return &ParseError{Kind: kind, Message: message}
}

func WrapError(kind ErrorKind, message string, err error) *ParseError {
	return &ParseError{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain, defaulting to ErrInternal.
func KindOf(err error) ErrorKind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ErrInternal
}
