package dbsource

// Source is a named set of connection fields describing one database
// endpoint, as read from a [section] of a configuration file. Keys are
// case-preserving identifiers; values are plain strings.
//
// The only required key is "dbd", the driver identifier. Conventional
// optional keys are "username", "password", "schema_search_path" and
// "dbic_schema"; drivers may define arbitrary additional keys.
type Source map[string]string

// sourceRef makes Source usable wherever a SourceRef is expected.
func (Source) sourceRef() {}

// Field returns the value of the first key present in the source, trying
// the given keys in order. Presence, not truthiness, governs the match:
// an existing key with an empty string value still counts as found.
func (s Source) Field(keys ...string) (string, bool) {
	for _, key := range keys {
		if value, ok := s[key]; ok {
			return value, true
		}
	}

	return "", false
}

// Driver returns the driver identifier from the "dbd" field, or the
// empty string if the field is absent.
func (s Source) Driver() string {
	value, _ := s.Field(keyDriver)
	return value
}

// Username returns the "username" field, or the empty string if absent.
func (s Source) Username() string {
	value, _ := s.Field(keyUsername)
	return value
}

// Password returns the "password" field, or the empty string if absent.
func (s Source) Password() string {
	value, _ := s.Field(keyPassword)
	return value
}

// SchemaSearchPath returns the "schema_search_path" field, or the empty
// string if absent.
func (s Source) SchemaSearchPath() string {
	value, _ := s.Field(keySchemaSearchPath)
	return value
}

// DBICSchema returns the "dbic_schema" field, an opaque ORM class name
// carried through for hosts that want it. It has no meaning to this
// library beyond storage and retrieval.
func (s Source) DBICSchema() string {
	value, _ := s.Field(keyDBICSchema)
	return value
}

// SourceRef identifies a database source at the boundary of every public
// operation that takes one: either a Name to be resolved against a
// Sources store, or an already resolved Source record used as-is.
type SourceRef interface {
	sourceRef()
}

// Name refers to a source by its configured name.
type Name string

func (Name) sourceRef() {}

const (
	keyDriver           = "dbd"
	keyUsername         = "username"
	keyPassword         = "password"
	keySchemaSearchPath = "schema_search_path"
	keyDBICSchema       = "dbic_schema"
)
