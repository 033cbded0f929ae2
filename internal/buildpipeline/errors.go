package buildpipeline

import (
	"errors"
	"fmt"
)

// CompileError reports a compiler invocation that exited with a non-zero
// status. ExitCode is -1 when the process did not exit normally.
type CompileError struct {
	File     string
	ExitCode int
	Output   string
	Err      error
}

func (e *CompileError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("compile %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("compile %s: exit status %d", e.File, e.ExitCode)
}

func (e *CompileError) Unwrap() error { return e.Err }

// AsCompileError extracts a CompileError from err.
func AsCompileError(err error) (*CompileError, bool) {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
