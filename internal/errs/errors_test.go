package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrKindUnsupportedDialect, `unknown dialect "postgress"`),
			want: `[unsupported_dialect] unknown dialect "postgress"`,
		},
		{
			name: "with cause",
			err:  Wrap(ErrKindRender, "tokenize firebird output", errors.New("unterminated string")),
			want: "[render_error] tokenize firebird output: unterminated string",
		},
		{
			name: "formatted",
			err:  Newf(ErrKindInvalidConnectionConfig, "firebird: %s is required", "host"),
			want: "[invalid_connection_config] firebird: host is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestPredicates_TraverseWrapping(t *testing.T) {
	base := New(ErrKindInvalidConnectionConfig, "bigquery: project id is required")
	wrapped := fmt.Errorf("set connection: %w", base)

	assert.True(t, IsInvalidConnectionConfig(wrapped))
	assert.False(t, IsRender(wrapped))
	assert.False(t, IsUnsupportedDialect(wrapped))
	assert.Equal(t, ErrKindInvalidConnectionConfig, KindOf(wrapped))
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, ErrKindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, ErrKindUnknown, KindOf(nil))
}

func TestUnwrap_ExposesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ErrKindConnectionFailed, "put object", cause)
	assert.ErrorIs(t, err, cause)
}

func TestErrKind_String(t *testing.T) {
	kinds := map[ErrKind]string{
		ErrKindUnknown:                 "unknown",
		ErrKindUnsupportedDialect:      "unsupported_dialect",
		ErrKindInvalidConnectionConfig: "invalid_connection_config",
		ErrKindRender:                  "render_error",
		ErrKindInvalidInput:            "invalid_input",
		ErrKindNotFound:                "not_found",
		ErrKindConnectionFailed:        "connection_failed",
		ErrKindTimeout:                 "timeout",
		ErrKindPermissionDenied:        "permission_denied",
	}
	for k, want := range kinds {
		assert.Equal(t, want, k.String())
	}
}
