// Package adapters provides client adapter implementations for the
// sqlclient bindings.
//
// This package implements the adapter pattern to support multiple
// database client libraries: pgxpool.Pool, sql.DB and sqlx.DB. All
// adapters expose the one operation the bindings need, statement
// execution, through a common Client interface, so the post-connect
// setup loop works the same regardless of which client library a
// caller chose.
package adapters
