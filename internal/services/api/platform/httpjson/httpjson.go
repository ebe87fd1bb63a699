// Package httpjson carries JSON request decoding and response encoding for
// the HTTP API.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/pitchsideapp/pitchside/internal/platform/i18n"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/apperrors"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Decode reads a JSON request body into dst. Unknown fields are rejected.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.New(apperrors.KindInvalid, "request body is required")
		}
		return apperrors.Wrap(apperrors.KindInvalid, "malformed request body", err)
	}
	// Trailing content after the JSON document is malformed input.
	if decoder.More() {
		return apperrors.New(apperrors.KindInvalid, "request body must contain a single JSON document")
	}
	return nil
}

// Write encodes a JSON response with the given status code.
func Write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("httpjson: encode response: %v", err)
	}
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// WriteError classifies an error and writes a localized JSON error envelope.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.Classify(err)
	status := apperrors.HTTPStatus(appErr.Kind)
	if status >= http.StatusInternalServerError {
		log.Printf("httpjson: %s %s: %v", r.Method, r.URL.Path, err)
	}
	Write(w, status, errorBody{Error: errorDetail{
		Kind:    string(appErr.Kind),
		Message: i18n.Localize(r, apperrors.LocalizationKey(appErr.Kind)),
	}})
}
