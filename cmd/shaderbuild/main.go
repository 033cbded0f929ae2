package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"shaderbuild/internal/version"
)

// newRootCmd builds the command tree. The root command runs the build.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shaderbuild [flags]",
		Short: "Compile every GLSL shader under a directory to SPIR-V",
		Long: `shaderbuild finds glslangValidator, walks a directory tree for shader
sources (.vert .frag .comp .geom .tesc .tese .rgen .rchit .rmiss .mesh .task)
and compiles each one to <file>.spv, stopping at the first failure.`,
		Args:          cobra.NoArgs,
		RunE:          buildExecution,
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       version.Version,
	}

	rootCmd.Flags().String("glslang", "", "path to the glslangValidator executable")
	rootCmd.Flags().Bool("g", false, "compile with debug symbols")
	rootCmd.Flags().String("dir", "", "compile only this subdirectory of the root")
	rootCmd.Flags().String("root", "", "root directory (default: directory of the shaderbuild executable)")
	rootCmd.Flags().Int("jobs", 1, "max parallel compiler invocations")
	rootCmd.Flags().Bool("dry-run", false, "print the compiler invocations without running them")
	rootCmd.Flags().String("config", "", "path to a shaderbuild.toml (default: <root>/shaderbuild.toml when present)")
	rootCmd.Flags().String("ui", "off", "user interface (auto|on|off)")

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress per-file progress lines")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return applyColorMode(cmd)
	}

	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// main runs the CLI and exits with the status derived from the returned error:
// a failing compiler's own status, or 1 for any other error.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !isReported(err) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
