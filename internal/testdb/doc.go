// Package testdb provides helpers for integration tests that need a real
// relational or document store.
//
// Relational tests run inside a transaction that is rolled back when the
// test finishes, so they can use t.Parallel() without interfering:
//
//	func TestOrderStore(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        s := postgres.NewPostgresOrderStore(tx, nil)
//	        // ...
//	    })
//	}
//
// Environment variables:
//
//   - SHOP_TEST_DB_URL: relational test database (falls back to DATABASE_URL)
//   - SHOP_TEST_MONGO_URI: document store used by mongo integration tests
//
// Tests are skipped when the relevant variable is unset.
package testdb
