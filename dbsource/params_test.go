package dbsource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confkit/database-sources-go/dbsource"
)

//nolint:funlen
func Test_BuildParams(t *testing.T) {
	tests := []struct {
		name     string
		source   dbsource.Source
		expected string
	}{
		{
			name: "pairs follow registry order regardless of source order",
			source: dbsource.Source{
				"dbd":     "Pg",
				"dbname":  "orders",
				"host":    "db.internal",
				"port":    "5433",
				"sslmode": "require",
			},
			expected: "host=db.internal;port=5433;sslmode=require;dbname=orders",
		},
		{
			name: "absent parameters are omitted",
			source: dbsource.Source{
				"dbd":    "Pg",
				"dbname": "orders",
			},
			expected: "dbname=orders",
		},
		{
			name: "alias resolves under canonical key name",
			source: dbsource.Source{
				"dbd": "Pg",
				"db":  "orders",
			},
			expected: "dbname=orders",
		},
		{
			name: "empty string value is emitted",
			source: dbsource.Source{
				"dbd":  "Pg",
				"host": "",
			},
			expected: "host=",
		},
		{
			name: "unrecognized keys are ignored",
			source: dbsource.Source{
				"dbd":      "SQLite",
				"database": "/var/lib/app/app.db",
				"host":     "not-a-sqlite-parameter",
			},
			expected: "dbname=/var/lib/app/app.db",
		},
		{
			name: "csv driver parameters",
			source: dbsource.Source{
				"dbd":          "CSV",
				"f_dir":        "/srv/exports",
				"csv_sep_char": ";",
			},
			expected: "f_dir=/srv/exports;csv_sep_char=;",
		},
		{
			name: "nothing resolves to an empty string",
			source: dbsource.Source{
				"dbd": "Pg",
			},
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params, err := dbsource.BuildParams(tc.source)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, params)
		})
	}
}

func Test_BuildParams_UnknownDriver(t *testing.T) {
	tests := []struct {
		name   string
		source dbsource.Source
	}{
		{name: "unregistered driver", source: dbsource.Source{"dbd": "Informix"}},
		{name: "missing dbd field", source: dbsource.Source{"dbname": "orders"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dbsource.BuildParams(tc.source)

			assert.ErrorIs(t, err, dbsource.ErrUnknownDriver)
		})
	}
}

func Test_Param_CanonicalIsFirstGroupMember(t *testing.T) {
	group := dbsource.Aliases("dbname", "database", "db")

	assert.Equal(t, "dbname", group.Canonical())

	single := dbsource.Key("host")

	assert.Equal(t, "host", single.Canonical())
	assert.Equal(t, []string{"host"}, single.Keys())
}
