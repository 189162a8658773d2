// Package errors provides structured error types for graphsig.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//
// # Error Codes
//
// Error codes follow a simple naming convention:
//   - INVALID_*: input validation failures, reported as HTTP 400
//   - FILE_NOT_FOUND: missing input files, reported as HTTP 404
//   - TIMEOUT: search budget or deadline exhausted
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidHeight, "height %d below -1", h)
//	if errors.Is(err, errors.ErrCodeInvalidHeight) {
//	    // Handle validation error
//	}
//
// Errors from the signature core are classified with [FromSignatureError].
package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/matzehuels/graphsig/pkg/graph"
	"github.com/matzehuels/graphsig/pkg/signature"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput         Code = "INVALID_INPUT"
	ErrCodeInvalidGraph         Code = "INVALID_GRAPH"
	ErrCodeInvalidSignature     Code = "INVALID_SIGNATURE"
	ErrCodeInvalidInvariantType Code = "INVALID_INVARIANT_TYPE"
	ErrCodeInvalidHeight        Code = "INVALID_HEIGHT"
	ErrCodeInvalidRoot          Code = "INVALID_ROOT"
	ErrCodeInvalidFormat        Code = "INVALID_FORMAT"
	ErrCodeInvalidPath          Code = "INVALID_PATH"
	ErrCodeAdapterViolation     Code = "ADAPTER_VIOLATION"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeTimeout      Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// IsInvalid reports whether code is an input validation code.
func (c Code) IsInvalid() bool {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidGraph, ErrCodeInvalidSignature,
		ErrCodeInvalidInvariantType, ErrCodeInvalidHeight, ErrCodeInvalidRoot,
		ErrCodeInvalidFormat, ErrCodeInvalidPath, ErrCodeAdapterViolation:
		return true
	}
	return false
}

// HTTPStatus maps a code to an HTTP status.
func HTTPStatus(code Code) int {
	switch {
	case code.IsInvalid():
		return http.StatusBadRequest
	case code == ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case code == ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// sentinelCodes classifies sentinels from the signature and graph packages.
var sentinelCodes = []struct {
	err  error
	code Code
}{
	{signature.ErrUnknownInvariantType, ErrCodeInvalidInvariantType},
	{signature.ErrInvalidRoot, ErrCodeInvalidRoot},
	{signature.ErrInvalidHeight, ErrCodeInvalidHeight},
	{signature.ErrVertexOutOfRange, ErrCodeAdapterViolation},
	{signature.ErrAsymmetricAdapter, ErrCodeAdapterViolation},
	{signature.ErrSelfLoop, ErrCodeAdapterViolation},
	{signature.ErrReservedCharacter, ErrCodeInvalidGraph},
	{signature.ErrMalformedSignature, ErrCodeInvalidSignature},
	{signature.ErrSearchBudgetExceeded, ErrCodeTimeout},
	{graph.ErrUnknownVertex, ErrCodeInvalidGraph},
	{graph.ErrDuplicateVertex, ErrCodeInvalidGraph},
	{graph.ErrSelfLoop, ErrCodeInvalidGraph},
	{graph.ErrConflictingEdge, ErrCodeInvalidGraph},
	{context.DeadlineExceeded, ErrCodeTimeout},
	{fs.ErrNotExist, ErrCodeFileNotFound},
}

// FromSignatureError classifies err into a structured *Error. Errors that
// already carry a code are returned unchanged; unknown errors become
// INTERNAL_ERROR. Nil stays nil.
func FromSignatureError(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	for _, s := range sentinelCodes {
		if errors.Is(err, s.err) {
			return Wrap(s.code, err, "%s", s.err.Error())
		}
	}
	return Wrap(ErrCodeInternal, err, "internal error")
}
