package dbsource

import (
	"errors"
)

var ErrUnknownDriver = errors.New("unknown database driver")
var ErrUnknownSource = errors.New("unknown database source")
var ErrEmptyNamespace = errors.New("empty namespace supplied")
var ErrNilParser = errors.New("nil config parser supplied")
