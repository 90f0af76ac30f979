package launch

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrRuntimeNotFound indicates the runtime binary could not be resolved.
var ErrRuntimeNotFound = errors.New("runtime binary not found")

// ExitError carries the exit status of a runtime that ran as a child.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("runtime exited with status %d", e.Code)
}

func lookPath(binary string) (string, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRuntimeNotFound, binary, err)
	}
	return path, nil
}
