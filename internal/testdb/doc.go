// Package testdb provides helpers for PostgreSQL integration tests.
//
// Tests obtain a connection with GetTestDBWithT, which skips the test when
// no database URL is configured, migrate it once with SetupTestDatabaseSchema,
// and run each case inside WithTx so every change is rolled back:
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.SetupTestDatabaseSchema(t, db)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	    users := postgres.NewPostgresUserStore(tx, bcrypt.MinCost)
//	    ...
//	})
//
// The URL is read from DATABASE_URL, then ADBOARD_TEST_DB_URL.
package testdb
