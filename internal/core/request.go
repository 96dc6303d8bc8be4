// AngelaMos | 2026
// request.go

package core

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

const MaxJSONBody = 1 << 20

// JSONDecoder reads the request body, refusing more than MaxJSONBody bytes.
func JSONDecoder(w http.ResponseWriter, r *http.Request) *json.Decoder {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxJSONBody))
}

// DecodeJSON reads the request body into dst. On failure it has already
// answered 400 and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := JSONDecoder(w, r).Decode(dst); err != nil {
		BadRequest(w, "invalid request body")
		return false
	}
	return true
}

// Bind decodes and validates dst, answering 400 with the first failing
// field when either step fails.
func Bind(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst any) bool {
	if !DecodeJSON(w, r, dst) {
		return false
	}
	if err := v.Struct(dst); err != nil {
		BadRequest(w, FormatValidationError(err))
		return false
	}
	return true
}
