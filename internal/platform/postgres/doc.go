// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in internal/store, along with the embedded schema
// migrations. Queries go through database/sql with the pgx stdlib driver;
// pgconn error codes are translated into store errors by MapError.
package postgres
