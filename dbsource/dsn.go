package dbsource

import (
	"fmt"
	"strings"
)

// dsnScheme is the fixed tag prefixed to every DSN this library builds.
const dsnScheme = "dbi"

// searchPathStatement is the post-connect statement template for
// PostgreSQL sources with a schema_search_path field.
const searchPathStatement = "SET search_path = '%s'"

// ConnectArgs carries everything a database client needs to open a
// connection to a source. Username and Password are empty when the
// source defines neither field.
type ConnectArgs struct {
	DSN      string
	Username string
	Password string
}

// Params resolves ref and builds its DSN parameter string, see
// BuildParams.
func (s *Sources) Params(ref SourceRef) (string, error) {
	src, err := s.Resolve(ref)
	if err != nil {
		return "", err
	}

	return BuildParams(src)
}

// DSN resolves ref and builds its full DSN in the form
// "dbi:<driver>:<params>". The driver identifier is emitted exactly as
// spelled in the source's "dbd" field.
func (s *Sources) DSN(ref SourceRef) (string, error) {
	src, err := s.Resolve(ref)
	if err != nil {
		return "", err
	}

	params, err := BuildParams(src)
	if err != nil {
		return "", err
	}

	return dsnScheme + ":" + src.Driver() + ":" + params, nil
}

// ConnectArgs resolves ref and returns the DSN together with the
// source's username and password fields.
func (s *Sources) ConnectArgs(ref SourceRef) (ConnectArgs, error) {
	src, err := s.Resolve(ref)
	if err != nil {
		return ConnectArgs{}, err
	}

	dsn, err := s.DSN(src)
	if err != nil {
		return ConnectArgs{}, err
	}

	return ConnectArgs{
		DSN:      dsn,
		Username: src.Username(),
		Password: src.Password(),
	}, nil
}

// PostConnectStatements resolves ref and returns the statements to
// execute on a fresh connection before normal use, in order. For a
// PostgreSQL source with a non-empty schema_search_path field this is
// exactly one statement setting the session search path to that literal
// value; the value is not quoted or escaped, that is the caller's
// responsibility. All other sources yield no statements.
//
// It fails with ErrUnknownDriver if the source's driver is not
// registered, even when no statements would apply.
func (s *Sources) PostConnectStatements(ref SourceRef) ([]string, error) {
	src, err := s.Resolve(ref)
	if err != nil {
		return nil, err
	}

	if _, err := ParamsFor(src.Driver()); err != nil {
		return nil, err
	}

	if !strings.EqualFold(src.Driver(), driverPg) {
		return nil, nil
	}

	searchPath, ok := src.Field(keySchemaSearchPath)
	if !ok || searchPath == "" {
		return nil, nil
	}

	return []string{fmt.Sprintf(searchPathStatement, searchPath)}, nil
}
