package apperr

import (
	"errors"
	"testing"
)

func TestErrorKindsWrap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"validation", Validationf("bad range %d", 3), ErrValidation},
		{"conflict", Conflictf("car busy"), ErrConflict},
		{"unauthorized", Unauthorizedf("not yours"), ErrUnauthorized},
		{"not found", NotFoundf("no car %s", "abc"), ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.kind)
			}
			if tt.err.Error() == tt.kind.Error() {
				t.Error("wrapped error should carry a message beyond the kind")
			}
		})
	}
}
