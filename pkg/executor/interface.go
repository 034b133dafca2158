package executor

import "context"

// Executor runs an external tool and returns what it printed on stdout.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	LookPath(name string) (string, error)
}
