package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"

	"github.com/matzehuels/graphsig/pkg/graph"
	"github.com/matzehuels/graphsig/pkg/signature"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}
	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}
	if want := "INVALID_INPUT: test message: value"; err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, cause, "failed to render")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIsAndGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeInvalidRoot, "x"), ErrCodeInvalidRoot, true},
		{"different code", New(ErrCodeInvalidRoot, "x"), ErrCodeInvalidHeight, false},
		{"wrapped", fmt.Errorf("ctx: %w", New(ErrCodeTimeout, "x")), ErrCodeTimeout, true},
		{"plain error", errors.New("x"), ErrCodeInternal, false},
		{"nil", nil, ErrCodeInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}

	if GetCode(errors.New("x")) != "" {
		t.Error("GetCode(plain) should be empty")
	}
	if GetCode(New(ErrCodeUnsupported, "x")) != ErrCodeUnsupported {
		t.Error("GetCode should return the code")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidHeight, "bad height")); got != "bad height" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidGraph, http.StatusBadRequest},
		{ErrCodeAdapterViolation, http.StatusBadRequest},
		{ErrCodeFileNotFound, http.StatusNotFound},
		{ErrCodeTimeout, http.StatusGatewayTimeout},
		{ErrCodeUnsupported, http.StatusNotImplemented},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.code); got != tt.want {
			t.Errorf("HTTPStatus(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestFromSignatureError(t *testing.T) {
	_, parseErr := signature.Parse("[C")

	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"invariant", pkgerrors.Wrap(signature.ErrUnknownInvariantType, "x"), ErrCodeInvalidInvariantType},
		{"root", signature.ErrInvalidRoot, ErrCodeInvalidRoot},
		{"height", signature.ErrInvalidHeight, ErrCodeInvalidHeight},
		{"asymmetric", signature.ErrAsymmetricAdapter, ErrCodeAdapterViolation},
		{"parse", parseErr, ErrCodeInvalidSignature},
		{"budget", signature.ErrSearchBudgetExceeded, ErrCodeTimeout},
		{"graph", fmt.Errorf("vertex 2: %w", graph.ErrDuplicateVertex), ErrCodeInvalidGraph},
		{"deadline", context.DeadlineExceeded, ErrCodeTimeout},
		{"missing file", fmt.Errorf("open: %w", fs.ErrNotExist), ErrCodeFileNotFound},
		{"unknown", errors.New("boom"), ErrCodeInternal},
		{"already coded", New(ErrCodeInvalidPath, "x"), ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromSignatureError(tt.err)
			if GetCode(got) != tt.want {
				t.Errorf("FromSignatureError(%v) code = %q, want %q", tt.err, GetCode(got), tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Error("classified error should wrap the original")
			}
		})
	}

	if FromSignatureError(nil) != nil {
		t.Error("FromSignatureError(nil) should be nil")
	}
}
