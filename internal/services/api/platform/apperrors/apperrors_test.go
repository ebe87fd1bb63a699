package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/pitchsideapp/pitchside/internal/services/directory"
	"github.com/pitchsideapp/pitchside/internal/services/identity"
	"github.com/pitchsideapp/pitchside/internal/services/requests"
)

func TestClassifyServiceSentinels(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "validation", err: fmt.Errorf("%w: player id is required", requests.ErrValidation), want: KindInvalid},
		{name: "forbidden", err: requests.ErrForbidden, want: KindForbidden},
		{name: "not found", err: requests.ErrNotFound, want: KindNotFound},
		{name: "invalid transition", err: requests.ErrInvalidTransition, want: KindConflict},
		{name: "duplicate pending", err: requests.ErrAlreadyRequested, want: KindConflict},
		{name: "directory not found", err: directory.ErrNotFound, want: KindNotFound},
		{name: "duplicate email", err: identity.ErrConflict, want: KindConflict},
		{name: "expired token", err: identity.ErrTokenExpired, want: KindUnauthorized},
		{name: "unknown error", err: errors.New("disk on fire"), want: KindInternal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.err)
			if got.Kind != tc.want {
				t.Fatalf("Classify(%v).Kind = %q, want %q", tc.err, got.Kind, tc.want)
			}
			if !errors.Is(got, tc.err) {
				t.Fatalf("classified error does not wrap %v", tc.err)
			}
		})
	}
}

func TestClassifyPassesThroughClassifiedErrors(t *testing.T) {
	original := New(KindForbidden, "insufficient role")
	wrapped := fmt.Errorf("handle request: %w", original)
	if got := Classify(wrapped); got != original {
		t.Fatalf("Classify() = %+v, want the original classified error", got)
	}
}

func TestClassifyNil(t *testing.T) {
	if got := Classify(nil); got != nil {
		t.Fatalf("Classify(nil) = %+v, want nil", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindInvalid, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
		{Kind("unmapped"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.kind); got != tc.want {
			t.Fatalf("HTTPStatus(%q) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != KindInternal {
		t.Fatalf("KindOf(plain) = %q, want %q", got, KindInternal)
	}
	if got := KindOf(New(KindNotFound, "missing")); got != KindNotFound {
		t.Fatalf("KindOf(classified) = %q, want %q", got, KindNotFound)
	}
}
