// Package locate resolves the path of the glslangValidator executable.
package locate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// BaseName is the compiler executable name without platform suffix.
const BaseName = "glslangValidator"

// lowerName is how some Linux distributions package the compiler.
const lowerName = "glslangvalidator"

// ErrExecutableNotFound reports that neither the explicit override nor PATH
// yielded an executable compiler.
var ErrExecutableNotFound = errors.New("could not find glslangValidator via --glslang or PATH")

// Request describes where to look for the compiler.
type Request struct {
	// Explicit is the user supplied path (--glslang). Empty means none.
	Explicit string
	// SearchPath is the raw PATH value.
	SearchPath string
	// GOOS selects the executable name; defaults to runtime.GOOS.
	GOOS string
}

// Result tells where the compiler was found.
type Result struct {
	Path     string
	Explicit bool
}

// ExecutableName returns the compiler file name for goos.
func ExecutableName(goos string) string {
	if goos == "windows" {
		return BaseName + ".exe"
	}
	return BaseName
}

// ExecutableNames returns the file names tried in each PATH directory, in
// order of preference.
func ExecutableNames(goos string) []string {
	if goos == "windows" {
		// the filesystem is case-insensitive
		return []string{ExecutableName(goos)}
	}
	return []string{BaseName, lowerName}
}

// Resolve returns the first usable compiler: the explicit path when it is
// executable, otherwise the first PATH entry holding the executable.
func Resolve(req Request) (Result, error) {
	if req.Explicit != "" && IsExecutable(req.Explicit) {
		return Result{Path: req.Explicit, Explicit: true}, nil
	}
	goos := req.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	names := ExecutableNames(goos)
	for _, dir := range filepath.SplitList(req.SearchPath) {
		if dir == "" {
			dir = "."
		}
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if IsExecutable(candidate) {
				return Result{Path: candidate}, nil
			}
		}
	}
	if req.Explicit != "" {
		return Result{}, fmt.Errorf("%w (%q is not an executable file)", ErrExecutableNotFound, req.Explicit)
	}
	return Result{}, ErrExecutableNotFound
}

// IsExecutable reports whether path names a regular file the current user
// may execute.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return canExecute(path, info)
}
