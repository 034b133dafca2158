package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotFound is returned when the requested binary is not on PATH.
var ErrNotFound = errors.New("executable not found")

// CommandError reports a command that started but exited unsuccessfully.
type CommandError struct {
	Name   string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("command '%s' failed: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("command '%s' failed: %v\nstderr: %s", e.Name, e.Err, e.Stderr)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Execute runs name with args and returns its stdout. The process is killed
// when ctx is cancelled.
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	if _, err := e.LookPath(name); err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &CommandError{
			Name:   name,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	return stdout.String(), nil
}

// LookPath resolves name against PATH.
func (e *implExecutor) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return path, nil
}
