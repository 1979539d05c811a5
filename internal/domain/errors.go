package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when input or an entity fails validation.
	// ValidationError and ValidationErrors both match it with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrBadRequest is returned for requests that are well-formed but
	// semantically invalid.
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized is returned when an operation requires an authenticated
	// actor and none is present.
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden is returned when the actor is authenticated but not
	// permitted to perform the operation.
	ErrForbidden = errors.New("operation not permitted")

	// ErrPublishedOnCreate is returned when an ad is submitted as already
	// published. Ads are always created unpublished.
	ErrPublishedOnCreate = fmt.Errorf("%w: ad cannot be published at creation", ErrBadRequest)
)

// ValidationKind classifies a field validation failure.
type ValidationKind string

// Validation kinds.
const (
	KindRequired     ValidationKind = "required"
	KindNotFound     ValidationKind = "not_found"
	KindTypeMismatch ValidationKind = "type_mismatch"
	KindInvalid      ValidationKind = "invalid"
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Kind    ValidationKind
	Message string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field string, kind ValidationKind, message string) *ValidationError {
	return &ValidationError{Field: field, Kind: kind, Message: message}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ValidationErrors collects field errors from a single validation pass.
type ValidationErrors []*ValidationError

// Add appends a field error.
func (v *ValidationErrors) Add(field string, kind ValidationKind, message string) {
	*v = append(*v, NewValidationError(field, kind, message))
}

// Append merges err into v. ValidationError and ValidationErrors values are
// flattened; any other non-nil error is returned unchanged so the caller can
// abort.
func (v *ValidationErrors) Append(err error) error {
	if err == nil {
		return nil
	}
	var list ValidationErrors
	if errors.As(err, &list) {
		*v = append(*v, list...)
		return nil
	}
	var single *ValidationError
	if errors.As(err, &single) {
		*v = append(*v, single)
		return nil
	}
	return err
}

// Err returns nil when no field errors were collected.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (v ValidationErrors) Unwrap() error {
	return ErrValidation
}

// Fields returns field name to message. When a field failed more than once
// the first message wins.
func (v ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(v))
	for _, e := range v {
		if _, seen := out[e.Field]; !seen {
			out[e.Field] = e.Message
		}
	}
	return out
}

// FieldNames returns the sorted names of the invalid fields.
func (v ValidationErrors) FieldNames() []string {
	names := make([]string, 0, len(v))
	for field := range v.Fields() {
		names = append(names, field)
	}
	sort.Strings(names)
	return names
}

// AsValidationErrors extracts field errors from err, whether it is a single
// ValidationError or a ValidationErrors list.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var list ValidationErrors
	if errors.As(err, &list) {
		return list, true
	}
	var single *ValidationError
	if errors.As(err, &single) {
		return ValidationErrors{single}, true
	}
	return nil, false
}

// HasKind reports whether err carries a field error of the given kind.
func HasKind(err error, kind ValidationKind) bool {
	list, ok := AsValidationErrors(err)
	if !ok {
		return false
	}
	for _, e := range list {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
