package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"

	"shaderbuild/internal/buildpipeline"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	okColor      = color.New(color.FgGreen)
	failColor    = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)
)

// lineReporter prints pipeline events as progress lines. It is safe for
// concurrent use.
type lineReporter struct {
	mu       sync.Mutex
	out      io.Writer
	compiler string
	debug    bool
	quiet    bool
}

func (r *lineReporter) OnEvent(ev buildpipeline.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case ev.Stage == buildpipeline.StageDiscover && ev.Dir != "" && ev.Status == buildpipeline.StatusSkipped:
		fmt.Fprintf(r.out, "--> %s: %s\n", ev.Note, ev.Dir)
	case ev.Stage == buildpipeline.StageDiscover && ev.Dir != "":
		if !r.quiet {
			fmt.Fprintf(r.out, "--> entering directory: %s\n", ev.Dir)
		}
	case ev.Stage == buildpipeline.StageDiscover && ev.Status == buildpipeline.StatusQueued:
		if !r.quiet {
			fmt.Fprintf(r.out, "   found shader: %s\n", filepath.Base(ev.File))
		}
	case ev.Stage == buildpipeline.StageCompile:
		r.onCompile(ev)
	}
}

func (r *lineReporter) onCompile(ev buildpipeline.Event) {
	name := filepath.Base(ev.File)
	switch ev.Status {
	case buildpipeline.StatusWorking:
		if r.quiet {
			return
		}
		fmt.Fprintf(r.out, "   input:  %s\n", ev.Entry.Input)
		fmt.Fprintf(r.out, "   output: %s\n", ev.Entry.Output)
		if r.debug {
			fmt.Fprintln(r.out, "   debug symbols enabled (-g)")
		}
		if ev.Note != "" {
			fmt.Fprintf(r.out, "   %s\n", ev.Note)
		}
		fmt.Fprintf(r.out, "   command: %s\n", dimColor.Sprint(formatCommand(r.compiler, ev.Args)))
	case buildpipeline.StatusSkipped:
		if !r.quiet {
			fmt.Fprintf(r.out, "   - skipped (%s, dry run)\n", name)
		}
	case buildpipeline.StatusDone:
		if !r.quiet {
			writeIndented(r.out, ev.Output)
			fmt.Fprintf(r.out, "   %s (%s)\n", okColor.Sprint("✓ compiled"), name)
		}
	case buildpipeline.StatusError:
		writeIndented(r.out, ev.Output)
		detail := "exit code: " + strconv.Itoa(ev.ExitCode)
		if ev.ExitCode < 0 {
			detail = fmt.Sprint(ev.Err)
		}
		fmt.Fprintf(r.out, "   %s (%s), %s\n", failColor.Sprint("✗ failed"), name, detail)
	}
}

func writeIndented(out io.Writer, text string) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(out, "     %s\n", line)
	}
}

// formatCommand renders an argument vector for display, quoting arguments
// that a shell would split.
func formatCommand(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, a := range append([]string{name}, args...) {
		if a == "" || strings.ContainsAny(a, " \t\"'\\$`") {
			a = strconv.Quote(a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// printSummary writes the final count and, when everything compiled, the
// success line.
func printSummary(out io.Writer, sum buildpipeline.Summary, dryRun bool) {
	if dryRun {
		fmt.Fprintf(out, "\n%s dry run: %d files would be compiled\n", headingColor.Sprint("==>"), sum.Total)
		return
	}
	fmt.Fprintf(out, "\n%s done: %d of %d files compiled\n", headingColor.Sprint("==>"), sum.Success, sum.Total)
	if sum.AllSucceeded() {
		fmt.Fprintf(out, "%s %s\n", headingColor.Sprint("==>"), okColor.Sprint("all shaders compiled successfully!"))
	}
}
