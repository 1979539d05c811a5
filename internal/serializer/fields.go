package serializer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/adboard/adboard-api/internal/domain"
)

// Fields is a decoded JSON object whose values are kept raw until a typed
// accessor reads them.
type Fields map[string]json.RawMessage

// DecodeFields reads a JSON object from r. An empty body yields empty Fields.
// Malformed JSON or a non-object body is reported as domain.ErrBadRequest.
func DecodeFields(r io.Reader) (Fields, error) {
	var f Fields
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Fields{}, nil
		}
		return nil, fmt.Errorf("%w: malformed JSON body", domain.ErrBadRequest)
	}
	if f == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", domain.ErrBadRequest)
	}
	return f, nil
}

// Has reports whether key was submitted, including as null.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// IsNull reports whether key was submitted as JSON null.
func (f Fields) IsNull(key string) bool {
	raw, ok := f[key]
	return ok && isNull(raw)
}

// Without returns a copy of f without the given keys.
func (f Fields) Without(keys ...string) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func requiredError(key string) *domain.ValidationError {
	return domain.NewValidationError(key, domain.KindRequired, "this field is required")
}

func nullError(key string) *domain.ValidationError {
	return domain.NewValidationError(key, domain.KindRequired, "this field may not be null")
}

func mismatchError(key, want string) *domain.ValidationError {
	return domain.NewValidationError(key, domain.KindTypeMismatch, "must be "+want)
}

// lookup returns the raw value for key. ok is false when the key is absent
// and not required; a missing required key or a null value is an error.
func (f Fields) lookup(key string, required bool) (raw json.RawMessage, ok bool, err error) {
	raw, present := f[key]
	if !present {
		if required {
			return nil, false, requiredError(key)
		}
		return nil, false, nil
	}
	if isNull(raw) {
		return nil, false, nullError(key)
	}
	return raw, true, nil
}

// String reads a string value. It returns nil when key is absent and not required.
func (f Fields) String(key string, required bool) (*string, error) {
	raw, ok, err := f.lookup(key, required)
	if !ok {
		return nil, err
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, mismatchError(key, "a string")
	}
	return &s, nil
}

// Int reads an integer. Numeric strings such as "42" are accepted.
func (f Fields) Int(key string, required bool) (*int64, error) {
	raw, ok, err := f.lookup(key, required)
	if !ok {
		return nil, err
	}
	n, ok := parseInt(raw)
	if !ok {
		return nil, mismatchError(key, "an integer")
	}
	return &n, nil
}

// Float reads a number. Numeric strings are accepted.
func (f Fields) Float(key string, required bool) (*float64, error) {
	raw, ok, err := f.lookup(key, required)
	if !ok {
		return nil, err
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return nil, mismatchError(key, "a number")
	}
	v, err := strconv.ParseFloat(num.String(), 64)
	if err != nil {
		return nil, mismatchError(key, "a number")
	}
	return &v, nil
}

// Bool reads a JSON boolean.
func (f Fields) Bool(key string, required bool) (*bool, error) {
	raw, ok, err := f.lookup(key, required)
	if !ok {
		return nil, err
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, mismatchError(key, "a boolean")
	}
	return &b, nil
}

// IDs reads a list of integer ids.
func (f Fields) IDs(key string, required bool) (*[]int64, error) {
	raw, ok, err := f.lookup(key, required)
	if !ok {
		return nil, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, mismatchError(key, "a list of ids")
	}
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		id, ok := parseInt(item)
		if !ok {
			return nil, mismatchError(key, "a list of ids")
		}
		ids = append(ids, id)
	}
	return &ids, nil
}

// Strings reads a list of strings.
func (f Fields) Strings(key string, required bool) (*[]string, error) {
	raw, ok, err := f.lookup(key, required)
	if !ok {
		return nil, err
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, mismatchError(key, "a list of strings")
	}
	if out == nil {
		out = []string{}
	}
	return &out, nil
}

// NullableInt reads an optional integer that may be cleared with null.
// set reports whether the key was submitted at all.
func (f Fields) NullableInt(key string) (v *int64, set bool, err error) {
	if !f.Has(key) {
		return nil, false, nil
	}
	if f.IsNull(key) {
		return nil, true, nil
	}
	v, err = f.Int(key, true)
	return v, err == nil, err
}

// NullableFloat reads an optional number that may be cleared with null.
func (f Fields) NullableFloat(key string) (v *float64, set bool, err error) {
	if !f.Has(key) {
		return nil, false, nil
	}
	if f.IsNull(key) {
		return nil, true, nil
	}
	v, err = f.Float(key, true)
	return v, err == nil, err
}

func parseInt(raw json.RawMessage) (int64, bool) {
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(num.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// reader collects field errors while extracting values from Fields.
type reader struct {
	f    Fields
	errs domain.ValidationErrors
}

func (r *reader) add(err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		r.errs = append(r.errs, ve)
	}
}

func (r *reader) str(key string, required bool) *string {
	v, err := r.f.String(key, required)
	r.add(err)
	return v
}

func (r *reader) int(key string, required bool) *int64 {
	v, err := r.f.Int(key, required)
	r.add(err)
	return v
}

func (r *reader) bool(key string, required bool) *bool {
	v, err := r.f.Bool(key, required)
	r.add(err)
	return v
}

func (r *reader) ids(key string, required bool) *[]int64 {
	v, err := r.f.IDs(key, required)
	r.add(err)
	return v
}

func (r *reader) nullableInt(key string) (*int64, bool) {
	v, set, err := r.f.NullableInt(key)
	r.add(err)
	return v, set
}

func (r *reader) nullableFloat(key string) (*float64, bool) {
	v, set, err := r.f.NullableFloat(key)
	r.add(err)
	return v, set
}
