package buildpipeline

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Runner executes the compiler. Output holds whatever the process wrote to
// stdout and stderr.
type Runner interface {
	Run(ctx context.Context, name string, args []string) (output []byte, exitCode int, err error)
}

// ExecRunner starts the compiler as a child process with an argument vector;
// no shell is involved, so paths with spaces or quotes pass through intact.
type ExecRunner struct {
	// Dir is the working directory of the child; empty means inherit.
	Dir string
}

// Run executes name with args and waits for it. A non-zero exit is reported
// through exitCode with a nil error only when the process could not be
// started or waited on.
func (r ExecRunner) Run(ctx context.Context, name string, args []string) ([]byte, int, error) {
	// #nosec G204 -- the compiler path is resolved by the locator and arguments are file paths
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	if err == nil {
		return out.Bytes(), 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			return out.Bytes(), code, err
		}
		return out.Bytes(), code, nil
	}
	return out.Bytes(), -1, err
}
