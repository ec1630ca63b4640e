package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"validation", Validation("bad input"), CodeValidation, http.StatusBadRequest},
		{"forbidden", Forbidden("no"), CodeForbidden, http.StatusForbidden},
		{"not found", NotFound("gone"), CodeNotFound, http.StatusNotFound},
		{"conflict", Conflict("taken"), CodeConflict, http.StatusConflict},
		{"invalid state", InvalidState("too late"), CodeInvalidState, http.StatusUnprocessableEntity},
		{"unauthorized", Unauthorized("who"), CodeUnauthorized, http.StatusUnauthorized},
		{"internal", Internal("boom", errors.New("db down")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.HTTPStatus != tt.wantStatus {
				t.Errorf("HTTPStatus = %d, want %d", tt.err.HTTPStatus, tt.wantStatus)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	plain := Conflict("slot taken")
	if got := plain.Error(); got != "CONFLICT: slot taken" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := Internal("query failed", errors.New("connection reset"))
	if got := wrapped.Error(); got != "INTERNAL_ERROR: query failed (caused by: connection reset)" {
		t.Errorf("Error() = %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Internal("wrapper", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if Validation("x").Unwrap() != nil {
		t.Error("Unwrap on a plain error should be nil")
	}
}

func TestCodeAndIs(t *testing.T) {
	err := NotFound("booking not found")
	if Code(err) != CodeNotFound {
		t.Errorf("Code() = %s, want %s", Code(err), CodeNotFound)
	}
	if !Is(err, CodeNotFound) || Is(err, CodeConflict) {
		t.Error("Is() mismatched the error code")
	}

	// AppErrors stay recognizable through fmt wrapping.
	wrapped := fmt.Errorf("handling request: %w", Conflict("overlap"))
	if Code(wrapped) != CodeConflict {
		t.Errorf("Code(wrapped) = %s, want %s", Code(wrapped), CodeConflict)
	}

	if Code(errors.New("plain")) != CodeInternal {
		t.Error("non-AppError should map to CodeInternal")
	}
	if Code(nil) != CodeInternal {
		t.Error("nil should map to CodeInternal")
	}
}

func TestWithDetails(t *testing.T) {
	err := Validation("bad slot").WithDetails(map[string]any{"field": "start_time"})
	if err.Details["field"] != "start_time" {
		t.Error("WithDetails did not attach the details map")
	}
}
