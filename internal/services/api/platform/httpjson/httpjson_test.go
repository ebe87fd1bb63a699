package httpjson

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pitchsideapp/pitchside/internal/services/api/platform/apperrors"
	"github.com/pitchsideapp/pitchside/internal/services/requests"
)

type samplePayload struct {
	Name string `json:"name"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"ada"}`},
		{name: "empty body", body: "", wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
		{name: "unknown field", body: `{"name":"ada","extra":true}`, wantErr: true},
		{name: "trailing document", body: `{"name":"ada"}{"name":"bob"}`, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			var dst samplePayload
			err := Decode(w, r, &dst)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Decode(%q) succeeded, want error", tc.body)
				}
				if apperrors.KindOf(err) != apperrors.KindInvalid {
					t.Fatalf("Decode(%q) kind = %q, want invalid", tc.body, apperrors.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", tc.body, err)
			}
			if dst.Name != "ada" {
				t.Fatalf("decoded name = %q, want ada", dst.Name)
			}
		})
	}
}

func TestWriteHeadersOnly(t *testing.T) {
	w := httptest.NewRecorder()
	Write(w, http.StatusNoContent, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("body = %q, want empty", w.Body.String())
	}
}

func TestWriteErrorEnvelope(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/v1/requests/abc/accept", nil)
	w := httptest.NewRecorder()
	WriteError(w, r, requests.ErrInvalidTransition)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusConflict)
	}
	var body struct {
		Error struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if body.Error.Kind != "conflict" {
		t.Fatalf("kind = %q, want conflict", body.Error.Kind)
	}
	if body.Error.Message == "" {
		t.Fatal("expected a localized message")
	}
}

func TestWriteErrorLocalizesMessage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/players/x", nil)
	r.Header.Set("Accept-Language", "pt-BR")
	w := httptest.NewRecorder()
	WriteError(w, r, requests.ErrNotFound)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if !strings.Contains(w.Body.String(), "não foi encontrado") {
		t.Fatalf("expected Portuguese message, got %q", w.Body.String())
	}
}
