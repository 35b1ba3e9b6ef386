// Package dbsource resolves named database source definitions from
// INI-style configuration files into connection parameters: a DSN
// string, username and password, and post-connect setup statements.
//
// Sources are read from a list of search directories, by default
// /etc/databases/conf.d followed by $HOME/.databases, where earlier
// directories take priority in the merge. Each [section] of each
// eligible file names one source; its key = value lines define the
// connection fields. The one required field is "dbd", the driver
// identifier, which selects an ordered parameter list from the driver
// registry. Parameters may be known under several historical
// spellings (dbname, database, db); the first spelling present in the
// source wins and the canonical one is emitted.
//
// Key types:
//   - Sources: the lazily loaded store of named sources
//   - Source: one source's fields, a plain string map
//   - SourceRef: a Name to resolve or a Source used directly
//   - Param: one registry parameter, single key or alias group
//
// Common usage pattern:
//
//	sources, _ := dbsource.New()
//
//	dsn, err := sources.DSN(dbsource.Name("orders"))
//	if err != nil {
//		// handle error
//	}
//
//	args, _ := sources.ConnectArgs(dbsource.Name("orders"))
//	stmts, _ := sources.PostConnectStatements(dbsource.Name("orders"))
//
// The library opens no connections itself; the sqlclient subpackage
// binds resolved sources to database/sql, pgxpool and sqlx.
package dbsource
