package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"shaderbuild/internal/shader"
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [dir]",
		Short: "Remove compiled .spv files",
		Long:  "Remove every <shader>" + shader.OutputSuffix + " whose shader source sits next to it.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runClean,
	}
	cmd.Flags().String("root", "", "root directory (default: directory of the shaderbuild executable)")
	cmd.Flags().Bool("dry-run", false, "list files without removing them")
	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	root, err := cmd.Flags().GetString("root")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	if root == "" {
		root, err = executableDir()
		if err != nil {
			return err
		}
	}
	target := root
	if len(args) > 0 && args[0] != "" {
		target = filepath.Join(root, filepath.FromSlash(args[0]))
	}

	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(cmd.OutOrStdout(), "directory not found: %s\n", target)
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", target, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	artifacts, err := findArtifacts(target)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, path := range artifacts {
		if dryRun {
			fmt.Fprintf(out, "would remove %s\n", path)
			continue
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %q: %w", path, err)
		}
		fmt.Fprintf(out, "removed %s\n", path)
	}
	fmt.Fprintf(out, "%d artifacts\n", len(artifacts))
	return nil
}

// findArtifacts lists compiled outputs whose source still exists, so
// unrelated .spv files are left alone.
func findArtifacts(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, shader.OutputSuffix) {
			return nil
		}
		source := strings.TrimSuffix(path, shader.OutputSuffix)
		if _, ok := shader.Match(source); !ok {
			return nil
		}
		if _, statErr := os.Stat(source); statErr != nil {
			return nil
		}
		found = append(found, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %q: %w", root, err)
	}
	return found, nil
}
