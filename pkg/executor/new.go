package executor

type implExecutor struct{}

// New returns an Executor that runs commands in the current working directory.
func New() Executor {
	return &implExecutor{}
}
