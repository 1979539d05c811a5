// Package serializer maps between wire payloads and domain records.
//
// The read side renders domain values into the JSON views returned by the
// API. The write side decodes request bodies into Fields, so key presence
// stays explicit, then validates and resolves them in two steps: typed
// extraction with per-field errors, followed by struct-level rules checked
// with go-playground/validator. All field failures of one request are
// collected into a single domain.ValidationErrors.
package serializer
