// Package domainerrors provides coded errors shared across all modules.
//
// Services return these so transports can map a stable machine-readable code
// to a protocol status without inspecting error strings. Metadata attached via
// Add travels with the error and is surfaced to callers that need structured
// recovery detail (e.g. which mandatory fields were missing).
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for transport mapping and caller recovery.
type Code string

const (
	CodeBadRequest         Code = "bad_request"
	CodeValidation         Code = "validation_failed"
	CodeInvalidInput       Code = "invalid_input"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
	CodeInvariantViolation Code = "invariant_violation"

	// Pre-qualification conditions. All are caller-recoverable: the caller
	// routes the applicant to a fallback or collection path.
	CodeIncompleteInputs  Code = "incomplete_inputs"
	CodeMissingLoanIntent Code = "missing_loan_intent"
	CodeStaleData         Code = "stale_data"
	CodeNoData            Code = "no_data"
)

// Error is a coded error with optional wrapped cause and metadata.
type Error struct {
	Code    Code
	Message string
	cause   error
	meta    map[string]any
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New constructs a coded error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause.
// A nil cause returns nil so call sites can wrap unconditionally.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
		if err == nil {
			return false
		}
	}
	return false
}

// Is delegates to errors.Is; exported so call sites importing this package
// under an alias do not need a second errors import.
func Is(err, target error) bool { return errors.Is(err, target) }

// Add attaches a metadata key/value to the nearest coded error in the chain.
// Non-coded errors are returned unchanged.
func Add(err error, key string, value any) error {
	var de *Error
	if !errors.As(err, &de) {
		return err
	}
	if de.meta == nil {
		de.meta = make(map[string]any)
	}
	de.meta[key] = value
	return err
}

// Load returns the metadata of the nearest coded error, or nil.
func Load(err error) map[string]any {
	var de *Error
	if !errors.As(err, &de) {
		return nil
	}
	return de.meta
}

// CodeOf returns the code of the nearest coded error, or CodeInternal for
// uncoded errors so unexpected failures never leak detail to clients.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the message of the nearest coded error, or "" for uncoded
// errors.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
