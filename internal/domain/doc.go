// Package domain contains the core business entities of the classifieds
// backend (users, locations, categories, ads, selections), their validation
// rules, and the error taxonomy shared by every layer above it.
package domain
