package dbsource

import (
	"strings"
)

const paramSeparator = ";"

// BuildParams builds the ordered DSN parameter string for the source's
// driver: one key=value pair per registry parameter that resolves to a
// value, joined with ";" in registry declaration order. Parameters with
// no resolvable value are omitted; alias groups emit their canonical
// key name regardless of which alias supplied the value. An empty
// result is legal when nothing resolves.
//
// It fails with ErrUnknownDriver if the source's "dbd" field does not
// name a registered driver.
func BuildParams(src Source) (string, error) {
	params, err := ParamsFor(src.Driver())
	if err != nil {
		return "", err
	}

	pairs := make([]string, 0, len(params))

	for _, param := range params {
		value, ok := src.Field(param.Keys()...)
		if !ok {
			continue
		}

		pairs = append(pairs, param.Canonical()+"="+value)
	}

	return strings.Join(pairs, paramSeparator), nil
}
