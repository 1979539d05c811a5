package shared

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/serializer"
)

// MaxJSONBodyBytes bounds JSON request bodies.
const MaxJSONBodyBytes = 1 << 20

// DecodeJSON decodes the request body into the given struct. Malformed
// bodies are reported as domain.ErrBadRequest.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body", domain.ErrBadRequest)
	}
	return nil
}

// DecodeFields reads the request body as a JSON object of raw fields.
func DecodeFields(w http.ResponseWriter, r *http.Request) (serializer.Fields, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodyBytes)
	return serializer.DecodeFields(r.Body)
}

// ValidateRequest validates the given struct and returns field errors as
// domain.ValidationErrors.
func ValidateRequest(v interface{}) error {
	return serializer.Validate(v)
}
