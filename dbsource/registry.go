package dbsource

import (
	"fmt"
	"strings"
)

// Param describes one connection parameter recognized by a driver:
// either a single key name or an ordered group of interchangeable
// aliases. The first name in the group is the canonical one used when
// emitting the parameter into a DSN.
type Param struct {
	keys []string
}

// Key declares a parameter with a single key name.
func Key(name string) Param {
	return Param{keys: []string{name}}
}

// Aliases declares a parameter with several interchangeable key names.
// The first name is canonical; the names are tried in the given order
// when resolving a value from a source.
func Aliases(names ...string) Param {
	return Param{keys: names}
}

// Canonical returns the name under which this parameter is emitted.
func (p Param) Canonical() string {
	return p.keys[0]
}

// Keys returns the key names tried when resolving this parameter,
// in declaration order.
func (p Param) Keys() []string {
	return p.keys
}

// drivers maps lowercased driver identifiers to their ordered parameter
// lists. The built-in table covers the drivers the library knows how to
// hand off to a client; hosts extend it via Register. The database name
// appears under three historical spellings everywhere, with "dbname"
// as the canonical form.
var drivers = map[string][]Param{
	driverPg: {
		Key("host"),
		Key("port"),
		Key("service"),
		Key("sslmode"),
		Key("options"),
		Aliases("dbname", "database", "db"),
	},
	driverSQLite: {
		Aliases("dbname", "database", "db"),
	},
	driverMySQL: {
		Key("host"),
		Key("port"),
		Key("mysql_socket"),
		Aliases("dbname", "database", "db"),
	},
	driverCSV: {
		Key("f_dir"),
		Key("f_ext"),
		Key("f_schema"),
		Key("csv_sep_char"),
		Key("csv_eol"),
	},
}

const (
	driverPg     = "pg"
	driverSQLite = "sqlite"
	driverMySQL  = "mysql"
	driverCSV    = "csv"
)

// Register adds or replaces a driver's parameter list in the process-wide
// registry. The driver identifier is matched case-insensitively. Register
// is meant to be called from an init function or during host startup,
// before any sources are resolved; the registry carries no locking.
// It panics if name is empty, mirroring the database/sql registry.
func Register(name string, params ...Param) {
	if name == "" {
		panic("dbsource: Register with empty driver name")
	}

	drivers[strings.ToLower(name)] = params
}

// ParamsFor returns the ordered parameter list for the given driver
// identifier, matched case-insensitively. It fails with ErrUnknownDriver
// for identifiers not present in the registry.
func ParamsFor(driver string) ([]Param, error) {
	params, ok := drivers[strings.ToLower(driver)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	return params, nil
}
