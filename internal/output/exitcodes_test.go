package output

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitError(t *testing.T) {
	tests := []struct {
		name        string
		err         *ExitError
		wantCode    int
		wantMessage string
	}{
		{
			name:        "user error",
			err:         NewUserError(`icon "2fa.svg" does not derive a valid component name`),
			wantCode:    ExitUserError,
			wantMessage: `icon "2fa.svg" does not derive a valid component name`,
		},
		{
			name:        "system error",
			err:         NewSystemError("cannot reset output directory"),
			wantCode:    ExitSystemError,
			wantMessage: "cannot reset output directory",
		},
		{
			name:        "conflict error",
			err:         NewConflictError("ArrowLeft is produced by two sources"),
			wantCode:    ExitConflict,
			wantMessage: "ArrowLeft is produced by two sources",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Error() != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.wantMessage)
			}
		})
	}
}

func TestNewSystemErrorWithCause(t *testing.T) {
	underlying := errors.New("permission denied")
	err := NewSystemErrorWithCause("failed to write ArrowLeft.svelte", underlying)

	if err.Code != ExitSystemError {
		t.Errorf("Code = %d, want %d", err.Code, ExitSystemError)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}
	if err.Error() != "failed to write ArrowLeft.svelte: permission denied" {
		t.Errorf("Error() = %q", err.Error())
	}

	bare := NewSystemErrorWithCause("no cause", nil)
	if bare.Error() != "no cause" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "no cause")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: ExitSuccess},
		{name: "user", err: NewUserError("bad input"), expected: ExitUserError},
		{name: "system", err: NewSystemError("disk full"), expected: ExitSystemError},
		{name: "conflict", err: NewConflictError("duplicate"), expected: ExitConflict},
		{name: "wrapped conflict", err: fmt.Errorf("generate: %w", NewConflictError("dup")), expected: ExitConflict},
		{name: "regular error defaults to user error", err: errors.New("some error"), expected: ExitUserError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}
