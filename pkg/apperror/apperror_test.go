package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFound("video", "42"), http.StatusNotFound},
		{"invalid", NewInvalidInput("bad id", nil), http.StatusBadRequest},
		{"unauthenticated", NewUnauthenticated("missing header"), http.StatusUnauthorized},
		{"forbidden", NewPermissionDenied("owner mismatch"), http.StatusForbidden},
		{"conflict", NewConflict("user", "email", "a@b.c"), http.StatusConflict},
		{"wrapped", fmt.Errorf("repo: %w", NewNotFound("video", "1")), http.StatusNotFound},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToHTTPStatus(tc.err))
		})
	}
}

func TestFrom_PassesThroughUnderlyingMessage(t *testing.T) {
	appErr := From(errors.New("connection reset"))

	assert.ErrorIs(t, appErr, ErrInternal)
	body := appErr.ToJSON()
	assert.Equal(t, "internal server error", body["error"])
	assert.Contains(t, body["details"], "connection reset")
}

func TestFrom_KeepsAppError(t *testing.T) {
	orig := NewPermissionDenied("not yours")
	assert.Same(t, orig, From(fmt.Errorf("wrap: %w", orig)))
}
