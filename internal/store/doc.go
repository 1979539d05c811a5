// Package store declares the persistence contracts for users, locations,
// categories, ads and selections, the sentinel errors every implementation
// reports, and the transaction helpers services use for multi-row writes.
package store
