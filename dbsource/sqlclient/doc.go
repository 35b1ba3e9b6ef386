// Package sqlclient binds resolved database sources to Go client
// libraries.
//
// This package is the connecting half of the library: given a source
// resolved by a dbsource.Sources store, it translates the source's
// parameters into the DSN form the matching Go driver expects, opens a
// live handle through database/sql, pgxpool or sqlx, and executes the
// source's post-connect statements before handing the connection back.
//
// Key features:
//   - Multiple client library support (database/sql, pgxpool, sqlx)
//   - Driver translation for PostgreSQL, SQLite and MySQL sources
//   - Post-connect statement execution (e.g. session search path)
//   - Pool sizing options for the pgxpool constructor
//
// Usage examples:
//
//	sources, _ := dbsource.New()
//
//	// database/sql handle
//	db, err := sqlclient.OpenSQLDB(ctx, sources, dbsource.Name("orders"))
//
//	// pgx pool with custom sizing
//	pool, err := sqlclient.OpenPGXPool(
//		ctx, sources, dbsource.Name("orders"),
//		sqlclient.WithMaxConns(16),
//		sqlclient.WithLogger(logger),
//	)
//
// Connection failures surface wrapped in ErrConnect and are never
// retried.
package sqlclient
