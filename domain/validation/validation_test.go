package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "non-blank", value: "Alice", wantErr: false},
		{name: "padded", value: "  Alice ", wantErr: false},
		{name: "empty", value: "", wantErr: true},
		{name: "whitespace only", value: " \t\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Required("user", "first name", tt.value)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalid)

			var verr *Error
			assert.True(t, errors.As(err, &verr))
			assert.Equal(t, "user", verr.Entity)
			assert.Equal(t, "first name", verr.Field)
			assert.Equal(t, "user first name cannot be empty", err.Error())
		})
	}
}

func TestError_Reason(t *testing.T) {
	err := &Error{Entity: "task", Field: "status", Reason: `"Done" is not a known status`}

	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, `task status "Done" is not a known status`, err.Error())
}
