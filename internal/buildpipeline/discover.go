package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"shaderbuild/internal/shader"
	"shaderbuild/internal/trace"
)

// errStopWalk ends a walk early without reporting an error.
var errStopWalk = errors.New("stop walk")

// Discover walks root in lexical order and returns every shader source it
// finds. Directory and file events go to sink as they are visited. A root
// that does not exist yields no entries.
func Discover(ctx context.Context, root string, sink ProgressSink) ([]shader.Entry, error) {
	var entries []shader.Entry
	err := walk(ctx, root, sink, func(entry shader.Entry) error {
		entries = append(entries, entry)
		return nil
	})
	return entries, err
}

// walk calls visit for each shader source under root as the traversal
// reaches it. visit may return errStopWalk to end the traversal quietly.
func walk(ctx context.Context, root string, sink ProgressSink, visit func(shader.Entry) error) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			emit(sink, Event{Stage: StageDiscover, Status: StatusSkipped, Dir: root, Note: "directory not found"})
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", root)
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "discover", 0)

	files := 0
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			trace.Point(tracer, trace.ScopeDir, path, "", span.ID())
			emit(sink, Event{Stage: StageDiscover, Status: StatusWorking, Dir: path})
			return nil
		}
		entry, ok := shader.NewEntry(path)
		if !ok {
			return nil
		}
		files++
		emit(sink, Event{Stage: StageDiscover, Status: StatusQueued, File: path, Entry: entry})
		return visit(entry)
	})
	span.WithExtra("files", fmt.Sprint(files))
	switch {
	case walkErr == nil, errors.Is(walkErr, errStopWalk):
		span.End("")
		return nil
	case errors.Is(walkErr, context.Canceled), errors.Is(walkErr, context.DeadlineExceeded):
		span.End("canceled")
		return walkErr
	default:
		span.End("failed")
		if _, ok := AsCompileError(walkErr); ok {
			return walkErr
		}
		return fmt.Errorf("failed to scan %q: %w", root, walkErr)
	}
}
