package adapters

import "context"

// Client defines the interface for executing post-connect statements
// against a freshly opened database handle.
type Client interface {
	Exec(ctx context.Context, statement string) error
}
