package errors

import (
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrNotFound, ExitUser),
			want: "resource not found",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(Wrap(ErrInvalidConfig, "loading settings"), ExitUser),
			want: "loading settings: invalid configuration",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitSystem),
			want: "exit code 2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	err := NewUserError(fmt.Errorf("lookup: %w", ErrNotFound), "Run: cec platforms")
	if !Is(err, ErrNotFound) {
		t.Error("expected ExitError to unwrap to ErrNotFound")
	}
	if Is(err, ErrInvalidConfig) {
		t.Error("did not expect ExitError to match ErrInvalidConfig")
	}
	if err.Suggestion != "Run: cec platforms" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", New("boom"), ExitUser},
		{"system error", NewSystemError(New("io"), ""), ExitSystem},
		{"wrapped exit error", Wrap(NewSystemError(New("io"), ""), "outer"), ExitSystem},
		{"config error", NewConfigError(ErrInvalidConfig), ExitUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
