package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrConflict, http.StatusConflict},
		{ErrValidation, http.StatusUnprocessableEntity},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrRateLimitExceeded, http.StatusTooManyRequests},
		{errors.New("anything else"), http.StatusInternalServerError},
		{NotFound("post not found"), http.StatusNotFound},
		{Conflict("email already registered"), http.StatusConflict},
		{Forbidden("not yours"), http.StatusForbidden},
		{New(http.StatusServiceUnavailable, "search is down", nil), http.StatusServiceUnavailable},
		// Wrapped sentinels still map.
		{fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
	}

	for _, tc := range cases {
		if got := MapErrorToStatus(tc.err); got != tc.want {
			t.Errorf("MapErrorToStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestAppErrorMessageAndUnwrap(t *testing.T) {
	err := Conflict("username already taken")
	if err.Error() != "username already taken" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Conflict should unwrap to ErrConflict")
	}

	bare := New(http.StatusBadRequest, "", ErrBadRequest)
	if bare.Error() != ErrBadRequest.Error() {
		t.Fatalf("empty message should fall back to wrapped error, got %q", bare.Error())
	}
}
