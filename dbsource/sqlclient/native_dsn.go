package sqlclient

import (
	"fmt"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/confkit/database-sources-go/dbsource"
)

const (
	driverNamePostgres = "postgres"
	driverNameSQLite   = "sqlite"
	driverNameMySQL    = "mysql"
)

// databaseNameKeys are the historical spellings of the database name
// field, tried in order.
var databaseNameKeys = []string{"dbname", "database", "db"}

// nativeDSN translates a resolved source into the driver name and DSN
// form its Go client library expects: libpq keyword/value pairs for
// PostgreSQL, the database file path for SQLite, and the go-sql-driver
// DSN format for MySQL. Registered drivers without a Go client, such
// as CSV, fail with ErrUnsupportedDriver.
func nativeDSN(src dbsource.Source) (string, string, error) {
	params, err := dbsource.BuildParams(src)
	if err != nil {
		return "", "", err
	}

	switch strings.ToLower(src.Driver()) {
	case "pg":
		return driverNamePostgres, postgresKeywordDSN(src, params), nil

	case "sqlite":
		name, ok := src.Field(databaseNameKeys...)
		if !ok || name == "" {
			return "", "", fmt.Errorf("%w: %q", ErrMissingDatabaseName, src.Driver())
		}

		return driverNameSQLite, name, nil

	case "mysql":
		return driverNameMySQL, mysqlDSN(src), nil

	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, src.Driver())
	}
}

// postgresKeywordDSN turns the ";"-separated DSN parameters into the
// space-separated keyword/value form understood by libpq-compatible
// clients, appending the source's credentials. Values are passed
// through without quoting, like everywhere else in this library.
func postgresKeywordDSN(src dbsource.Source, params string) string {
	var parts []string

	if params != "" {
		parts = strings.Split(params, ";")
	}

	if user, ok := src.Field("username"); ok {
		parts = append(parts, "user="+user)
	}

	if password, ok := src.Field("password"); ok {
		parts = append(parts, "password="+password)
	}

	return strings.Join(parts, " ")
}

// mysqlDSN builds a go-sql-driver DSN from the source's fields. A
// mysql_socket field selects a unix socket connection; otherwise host
// and optional port select TCP.
func mysqlDSN(src dbsource.Source) string {
	cfg := mysql.NewConfig()
	cfg.User = src.Username()
	cfg.Passwd = src.Password()

	if name, ok := src.Field(databaseNameKeys...); ok {
		cfg.DBName = name
	}

	if socket, ok := src.Field("mysql_socket"); ok && socket != "" {
		cfg.Net = "unix"
		cfg.Addr = socket

		return cfg.FormatDSN()
	}

	if host, ok := src.Field("host"); ok && host != "" {
		cfg.Net = "tcp"
		cfg.Addr = host

		if port, ok := src.Field("port"); ok && port != "" {
			cfg.Addr = net.JoinHostPort(host, port)
		}
	}

	return cfg.FormatDSN()
}
