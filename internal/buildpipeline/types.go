package buildpipeline

import (
	"time"

	"shaderbuild/internal/shader"
)

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageDiscover is the directory traversal.
	StageDiscover Stage = "discover"
	// StageCompile is the compiler invocation.
	StageCompile Stage = "compile"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file was discovered and waits for the compiler.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
	// StatusSkipped marks a planned invocation in a dry run.
	StatusSkipped Status = "skipped"
)

// Event reports progress for a file, or for a directory when Dir is set.
type Event struct {
	Stage    Stage
	Status   Status
	Dir      string
	File     string
	Entry    shader.Entry
	Args     []string
	Note     string
	Output   string
	ExitCode int
	Err      error
	Elapsed  time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use when Request.Jobs > 1.
type ProgressSink interface {
	OnEvent(Event)
}

// Summary counts discovered and successfully compiled files.
type Summary struct {
	Total   int
	Success int
}

// AllSucceeded reports whether at least one file was compiled and none failed.
func (s Summary) AllSucceeded() bool {
	return s.Total > 0 && s.Success == s.Total
}
