// Package buildpipeline discovers shader sources and compiles them with
// glslangValidator.
package buildpipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"shaderbuild/internal/observ"
	"shaderbuild/internal/shader"
	"shaderbuild/internal/trace"
)

// Request configures a build run.
type Request struct {
	// Compiler is the resolved glslangValidator path.
	Compiler string
	// Root is the traversal root.
	Root string
	// Debug adds -g to every invocation.
	Debug bool
	// Jobs bounds concurrent invocations; values below 2 compile sequentially.
	Jobs int
	// DryRun reports the planned invocations without running them.
	DryRun bool

	Progress ProgressSink
	Runner   Runner
	Timer    *observ.Timer
}

// Result captures the outcome of a build.
type Result struct {
	Summary Summary
	// Entries lists the files reached before the run ended.
	Entries []shader.Entry
}

// Build walks req.Root and compiles each shader as the walk reaches it. The
// first failing invocation stops the run and is returned as a *CompileError.
func Build(ctx context.Context, req *Request) (Result, error) {
	var result Result
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	if req.Compiler == "" && !req.DryRun {
		return result, fmt.Errorf("missing compiler path")
	}
	reqCopy := *req
	req = &reqCopy
	if req.Runner == nil {
		req.Runner = ExecRunner{}
	}

	tracer := trace.FromContext(ctx)
	driver := trace.Begin(tracer, trace.ScopeDriver, "build", 0)
	defer driver.End("")

	idx := req.Timer.Begin(string(StageCompile))
	defer func() {
		req.Timer.End(idx, fmt.Sprintf("%d/%d ok", result.Summary.Success, result.Summary.Total))
	}()
	span := trace.Begin(tracer, trace.ScopePass, "compile", driver.ID())
	defer span.End("")

	var err error
	if req.Jobs > 1 {
		result, err = compileParallel(ctx, req, span.ID())
	} else {
		result, err = compileSequential(ctx, req, span.ID())
	}
	return result, err
}

// compileSequential compiles each file as soon as the walk reaches it.
func compileSequential(ctx context.Context, req *Request, parent uint64) (Result, error) {
	var res Result
	err := walk(ctx, req.Root, req.Progress, func(entry shader.Entry) error {
		res.Entries = append(res.Entries, entry)
		res.Summary.Total++
		ok, err := compileOne(ctx, req, entry, parent)
		if err != nil {
			return err
		}
		if ok {
			res.Summary.Success++
		}
		return nil
	})
	return res, err
}

type indexedFailure struct {
	index int
	err   error
}

// compileParallel runs up to req.Jobs invocations at once. Files are
// dispatched in discovery order and nothing is dispatched after a failure;
// dispatched invocations finish. The reported failure is the one earliest in
// discovery order.
func compileParallel(ctx context.Context, req *Request, parent uint64) (Result, error) {
	var (
		mu       sync.Mutex
		res      Result
		failures []indexedFailure
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(req.Jobs)

	walkErr := walk(ctx, req.Root, req.Progress, func(entry shader.Entry) error {
		if gctx.Err() != nil {
			return errStopWalk
		}
		mu.Lock()
		i := len(res.Entries)
		res.Entries = append(res.Entries, entry)
		mu.Unlock()

		// blocks until a worker slot is free
		g.Go(func() error {
			// a sibling may have failed while this one waited for a slot
			if gctx.Err() != nil {
				return nil
			}
			mu.Lock()
			res.Summary.Total++
			mu.Unlock()

			// the invocation uses ctx so that a sibling failure does not kill it
			ok, err := compileOne(ctx, req, entry, parent)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, indexedFailure{index: i, err: err})
				return err
			}
			if ok {
				res.Summary.Success++
			}
			return nil
		})
		return nil
	})
	groupErr := g.Wait()

	if len(failures) > 0 {
		first := failures[0]
		for _, f := range failures[1:] {
			if f.index < first.index {
				first = f
			}
		}
		return res, first.err
	}
	if walkErr != nil {
		return res, walkErr
	}
	if groupErr != nil {
		return res, groupErr
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

// compileOne invokes the compiler for a single entry. It reports false with
// a nil error only for dry runs.
func compileOne(ctx context.Context, req *Request, entry shader.Entry, parent uint64) (bool, error) {
	tracer := trace.FromContext(ctx)
	args := shader.Args(entry, req.Debug)
	note := shader.Describe(entry)

	span := trace.Begin(tracer, trace.ScopeFile, entry.Input, parent)
	emit(req.Progress, Event{
		Stage:  StageCompile,
		Status: StatusWorking,
		File:   entry.Input,
		Entry:  entry,
		Args:   args,
		Note:   note,
	})

	if req.DryRun {
		span.End("dry-run")
		emit(req.Progress, Event{Stage: StageCompile, Status: StatusSkipped, File: entry.Input, Entry: entry, Args: args})
		return false, nil
	}

	start := time.Now()
	output, code, runErr := req.Runner.Run(ctx, req.Compiler, args)
	elapsed := time.Since(start)

	if runErr == nil && code == 0 {
		span.WithExtra("exit", "0").End("ok")
		emit(req.Progress, Event{
			Stage:   StageCompile,
			Status:  StatusDone,
			File:    entry.Input,
			Entry:   entry,
			Output:  string(output),
			Elapsed: elapsed,
		})
		return true, nil
	}

	if runErr != nil && ctx.Err() != nil {
		span.End("canceled")
		return false, ctx.Err()
	}

	cerr := &CompileError{File: entry.Input, ExitCode: code, Output: string(output), Err: runErr}
	span.WithExtra("exit", strconv.Itoa(code)).End("failed")
	trace.Point(tracer, trace.ScopeError, filepath.Base(entry.Input), cerr.Error(), parent)
	emit(req.Progress, Event{
		Stage:    StageCompile,
		Status:   StatusError,
		File:     entry.Input,
		Entry:    entry,
		Output:   string(output),
		ExitCode: code,
		Err:      cerr,
		Elapsed:  elapsed,
	})
	return false, cerr
}
