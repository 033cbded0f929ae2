// Package main implements the shaderbuild CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"shaderbuild/internal/buildpipeline"
	"shaderbuild/internal/locate"
	"shaderbuild/internal/observ"
	"shaderbuild/internal/trace"
)

func buildExecution(cmd *cobra.Command, _ []string) error {
	opts, err := readBuildOptions(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	timer := observ.NewTimer()

	compiler, err := locateCompiler(cmd, out, opts, timer)
	if err != nil {
		return err
	}

	target := opts.targetDir()
	fmt.Fprintf(out, "%s root directory: %s\n", headingColor.Sprint("==>"), opts.root)
	if opts.config != "" {
		fmt.Fprintf(out, "%s config: %s\n", headingColor.Sprint("==>"), opts.config)
	}
	if opts.dir != "" {
		fmt.Fprintf(out, "%s --dir given, compiling only: %s\n", headingColor.Sprint("==>"), target)
	} else {
		fmt.Fprintf(out, "%s no --dir given, compiling the root directory and its subdirectories\n", headingColor.Sprint("==>"))
	}
	fmt.Fprintf(out, "\n%s scanning: %s\n", headingColor.Sprint("==>"), target)

	req := buildpipeline.Request{
		Compiler: compiler,
		Root:     target,
		Debug:    opts.debug,
		Jobs:     opts.jobs,
		DryRun:   opts.dryRun,
		Runner:   buildpipeline.ExecRunner{},
		Timer:    timer,
	}

	var res buildpipeline.Result
	useTUI := shouldUseTUI(opts.ui)
	if useTUI {
		res, err = runBuildWithUI(ctx, out, "shaderbuild", &req)
	} else {
		req.Progress = &lineReporter{out: out, compiler: compiler, debug: opts.debug, quiet: opts.quiet}
		res, err = buildpipeline.Build(ctx, &req)
	}
	if opts.timings {
		fmt.Fprint(out, timer.Summary())
	}
	if err != nil {
		if ce, ok := buildpipeline.AsCompileError(err); ok {
			if useTUI {
				printFailure(out, ce)
			}
			return reportedError{err: err}
		}
		return err
	}

	printSummary(out, res.Summary, opts.dryRun)
	return nil
}

// locateCompiler resolves glslangValidator once. A dry run may proceed
// without it.
func locateCompiler(cmd *cobra.Command, out io.Writer, opts buildOptions, timer *observ.Timer) (string, error) {
	fmt.Fprintf(out, "%s looking for %s...\n", headingColor.Sprint("==>"), locate.BaseName)

	idx := timer.Begin("locate")
	span := trace.Begin(trace.FromContext(cmd.Context()), trace.ScopePass, "locate", 0)
	res, err := locate.Resolve(locate.Request{Explicit: opts.glslang, SearchPath: os.Getenv("PATH")})
	span.End(res.Path)
	timer.End(idx, res.Path)

	switch {
	case err == nil && res.Explicit:
		fmt.Fprintf(out, "%s using --glslang: %s\n", headingColor.Sprint("==>"), res.Path)
	case err == nil:
		fmt.Fprintf(out, "%s found %s on PATH: %s\n", headingColor.Sprint("==>"), locate.BaseName, res.Path)
	case errors.Is(err, locate.ErrExecutableNotFound) && opts.dryRun:
		fmt.Fprintf(out, "%s %v; dry run continues\n", headingColor.Sprint("==>"), err)
		return locate.BaseName, nil
	default:
		return "", err
	}
	return res.Path, nil
}

func printFailure(out io.Writer, ce *buildpipeline.CompileError) {
	writeIndented(out, ce.Output)
	fmt.Fprintf(out, "%s %v\n", failColor.Sprint("✗"), ce)
}
