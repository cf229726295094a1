// Package httpjson holds the small JSON request/response helpers shared by
// the API features. Every error response uses the same envelope:
//
//	{ "error": "a user with this email already exists", "code": "duplicate_email" }
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Write encodes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Error writes the error envelope.
func Error(w http.ResponseWriter, status int, code, message string) {
	Write(w, status, map[string]string{"error": message, "code": code})
}

// Decode reads a JSON body into v, rejecting unknown fields and bodies over
// 1 MiB.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)
		}
		return fmt.Errorf("malformed JSON body: %w", err)
	}
	return nil
}
