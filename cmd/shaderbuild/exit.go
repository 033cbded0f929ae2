package main

import (
	"errors"

	"fortio.org/safecast"

	"shaderbuild/internal/buildpipeline"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

// exitCode maps a command error to a process exit status. A compiler failure
// propagates the compiler's own status; a status that cannot be represented
// (a process killed by a signal reports -1) becomes exitFailure.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	ce, ok := buildpipeline.AsCompileError(err)
	if !ok {
		return exitFailure
	}
	code, convErr := safecast.Conv[uint32](ce.ExitCode)
	if convErr != nil || code == 0 {
		return exitFailure
	}
	return int(code)
}

// reportedError marks errors whose message was already printed as part of
// the progress output.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func isReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}
