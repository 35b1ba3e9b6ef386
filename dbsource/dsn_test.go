package dbsource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confkit/database-sources-go/dbsource"
)

func Test_Sources_DSN_FromConfiguredSource(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "databases.conf", `
[test]
dbd = Pg
dbname = test
host = 127.0.0.1
`)

	sources := newStoreWithPaths(t, dir)

	dsn, err := sources.DSN(dbsource.Name("test"))

	require.NoError(t, err)
	assert.Equal(t, "dbi:Pg:host=127.0.0.1;dbname=test", dsn)
}

func Test_Sources_DSN_AcceptsResolvedRecordDirectly(t *testing.T) {
	sources := newStoreWithPaths(t, t.TempDir())

	dsn, err := sources.DSN(dbsource.Source{
		"dbd":      "SQLite",
		"database": "/var/lib/app/app.db",
	})

	require.NoError(t, err)
	assert.Equal(t, "dbi:SQLite:dbname=/var/lib/app/app.db", dsn)
}

func Test_Sources_DSN_UnknownSource(t *testing.T) {
	sources := newStoreWithPaths(t, t.TempDir())

	_, err := sources.DSN(dbsource.Name("missing"))

	require.Error(t, err)
	assert.ErrorIs(t, err, dbsource.ErrUnknownSource)
	assert.Contains(t, err.Error(), "missing")
}

func Test_Sources_DSN_UnknownDriver(t *testing.T) {
	sources := newStoreWithPaths(t, t.TempDir())

	_, err := sources.DSN(dbsource.Source{"dbd": "Informix"})

	assert.ErrorIs(t, err, dbsource.ErrUnknownDriver)
}

func Test_Sources_DSN_NilRef(t *testing.T) {
	sources := newStoreWithPaths(t, t.TempDir())

	_, err := sources.DSN(nil)

	assert.ErrorIs(t, err, dbsource.ErrUnknownSource)
}

func Test_Sources_Params_ByName(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "databases.conf", "[test]\ndbd = Pg\ndb = orders\nport = 5433\n")

	sources := newStoreWithPaths(t, dir)

	params, err := sources.Params(dbsource.Name("test"))

	require.NoError(t, err)
	assert.Equal(t, "port=5433;dbname=orders", params)
}

func Test_Sources_ConnectArgs(t *testing.T) {
	tests := []struct {
		name     string
		source   dbsource.Source
		expected dbsource.ConnectArgs
	}{
		{
			name: "credentials present",
			source: dbsource.Source{
				"dbd":      "Pg",
				"dbname":   "orders",
				"username": "app",
				"password": "secret",
			},
			expected: dbsource.ConnectArgs{
				DSN:      "dbi:Pg:dbname=orders",
				Username: "app",
				Password: "secret",
			},
		},
		{
			name: "credentials absent",
			source: dbsource.Source{
				"dbd":    "SQLite",
				"dbname": "/tmp/app.db",
			},
			expected: dbsource.ConnectArgs{
				DSN: "dbi:SQLite:dbname=/tmp/app.db",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sources := newStoreWithPaths(t, t.TempDir())

			args, err := sources.ConnectArgs(tc.source)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, args)
		})
	}
}

//nolint:funlen
func Test_Sources_PostConnectStatements(t *testing.T) {
	tests := []struct {
		name     string
		source   dbsource.Source
		expected []string
	}{
		{
			name: "postgres with search path yields exactly one statement",
			source: dbsource.Source{
				"dbd":                "Pg",
				"dbname":             "orders",
				"schema_search_path": "foo,public",
			},
			expected: []string{"SET search_path = 'foo,public'"},
		},
		{
			name: "lowercased driver spelling still counts as postgres",
			source: dbsource.Source{
				"dbd":                "pg",
				"schema_search_path": "app",
			},
			expected: []string{"SET search_path = 'app'"},
		},
		{
			name: "postgres with empty search path yields nothing",
			source: dbsource.Source{
				"dbd":                "Pg",
				"schema_search_path": "",
			},
			expected: nil,
		},
		{
			name: "postgres without search path yields nothing",
			source: dbsource.Source{
				"dbd":    "Pg",
				"dbname": "orders",
			},
			expected: nil,
		},
		{
			name: "non-postgres driver never yields the statement",
			source: dbsource.Source{
				"dbd":                "SQLite",
				"dbname":             "/tmp/app.db",
				"schema_search_path": "foo,public",
			},
			expected: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sources := newStoreWithPaths(t, t.TempDir())

			statements, err := sources.PostConnectStatements(tc.source)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, statements)
		})
	}
}

func Test_Sources_PostConnectStatements_UnknownDriver(t *testing.T) {
	sources := newStoreWithPaths(t, t.TempDir())

	_, err := sources.PostConnectStatements(dbsource.Source{"dbd": "Informix"})

	assert.ErrorIs(t, err, dbsource.ErrUnknownDriver)
}

func Test_Sources_Resolve(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "databases.conf", "[orders]\ndbd = Pg\n")

	sources := newStoreWithPaths(t, dir)

	byName, err := sources.Resolve(dbsource.Name("orders"))
	require.NoError(t, err)
	assert.Equal(t, "Pg", byName.Driver())

	record := dbsource.Source{"dbd": "SQLite"}
	byRecord, err := sources.Resolve(record)
	require.NoError(t, err)
	assert.Equal(t, record, byRecord)

	_, err = sources.Resolve(dbsource.Name("missing"))
	assert.ErrorIs(t, err, dbsource.ErrUnknownSource)
}
