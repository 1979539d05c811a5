// Package api exposes the classifieds HTTP surface: ads, categories,
// selections, locations, users and JWT token issuance. Handlers decode
// bodies through the serializer package, delegate to services or stores
// and map their errors to status codes in errors.go.
package api
