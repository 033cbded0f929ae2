package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// buildOptions is the resolved configuration of one run: flags first, then
// shaderbuild.toml, then defaults.
type buildOptions struct {
	glslang string
	debug   bool
	dir     string
	root    string
	jobs    int
	dryRun  bool
	ui      uiMode
	quiet   bool
	timings bool
	config  string
}

func readBuildOptions(cmd *cobra.Command) (buildOptions, error) {
	var opts buildOptions
	flags := cmd.Flags()

	glslang, err := flags.GetString("glslang")
	if err != nil {
		return opts, err
	}
	debug, err := flags.GetBool("g")
	if err != nil {
		return opts, err
	}
	dir, err := flags.GetString("dir")
	if err != nil {
		return opts, err
	}
	root, err := flags.GetString("root")
	if err != nil {
		return opts, err
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return opts, err
	}
	dryRun, err := flags.GetBool("dry-run")
	if err != nil {
		return opts, err
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return opts, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return opts, err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}

	if jobs < 1 {
		return opts, fmt.Errorf("--jobs must be at least 1")
	}
	opts.ui, err = readUIMode(uiValue)
	if err != nil {
		return opts, err
	}

	if root == "" {
		root, err = executableDir()
		if err != nil {
			return opts, err
		}
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return opts, fmt.Errorf("failed to resolve root: %w", err)
	}

	opts.glslang = glslang
	opts.debug = debug
	opts.dir = dir
	opts.root = root
	opts.jobs = jobs
	opts.dryRun = dryRun
	opts.quiet = quiet
	opts.timings = timings

	cfgPath, found, err := findConfig(configPath, root)
	if err != nil {
		return opts, err
	}
	if !found {
		return opts, nil
	}
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return opts, err
	}
	opts.config = cfg.Path
	if !flags.Changed("glslang") && cfg.has("compiler", "path") {
		opts.glslang = cfg.Config.Compiler.Path
	}
	if !flags.Changed("g") && cfg.has("compiler", "debug") {
		opts.debug = cfg.Config.Compiler.Debug
	}
	if !flags.Changed("dir") && cfg.has("build", "dir") {
		opts.dir = cfg.Config.Build.Dir
	}
	if !flags.Changed("jobs") && cfg.has("build", "jobs") && cfg.Config.Build.Jobs > 0 {
		opts.jobs = cfg.Config.Build.Jobs
	}
	return opts, nil
}

// targetDir is the traversal root: the root itself or its --dir child.
func (o buildOptions) targetDir() string {
	if o.dir == "" {
		return o.root
	}
	return filepath.Join(o.root, filepath.FromSlash(o.dir))
}

// executableDir is the directory holding the running binary, symlinks resolved.
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate shaderbuild executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
