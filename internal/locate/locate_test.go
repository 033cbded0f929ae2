package locate

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), mode); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestExecutableName(t *testing.T) {
	cases := []struct {
		goos string
		want string
	}{
		{"linux", "glslangValidator"},
		{"darwin", "glslangValidator"},
		{"windows", "glslangValidator.exe"},
	}
	for _, tc := range cases {
		if got := ExecutableName(tc.goos); got != tc.want {
			t.Fatalf("ExecutableName(%q) = %q, want %q", tc.goos, got, tc.want)
		}
	}
}

func TestResolveExplicit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	dir := t.TempDir()
	explicit := filepath.Join(dir, "custom", "glslang")
	writeFile(t, explicit, 0o700)

	res, err := Resolve(Request{Explicit: explicit, SearchPath: ""})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Path != explicit || !res.Explicit {
		t.Fatalf("Resolve = %+v, want explicit %q", res, explicit)
	}
}

func TestResolveSearchPathOrder(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	root := t.TempDir()
	first := filepath.Join(root, "first")
	second := filepath.Join(root, "second")
	third := filepath.Join(root, "third")
	// first holds a non-executable file with the right name
	writeFile(t, filepath.Join(first, BaseName), 0o600)
	writeFile(t, filepath.Join(second, BaseName), 0o700)
	writeFile(t, filepath.Join(third, BaseName), 0o700)

	searchPath := strings.Join([]string{first, second, third}, string(os.PathListSeparator))
	res, err := Resolve(Request{SearchPath: searchPath, GOOS: "linux"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := filepath.Join(second, BaseName)
	if res.Path != want {
		t.Fatalf("Resolve path = %q, want %q", res.Path, want)
	}
	if res.Explicit {
		t.Fatalf("Resolve marked PATH hit as explicit")
	}
}

func TestResolveLowercaseName(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("needs a case-sensitive filesystem")
	}
	root := t.TempDir()
	first := filepath.Join(root, "first")
	second := filepath.Join(root, "second")
	writeFile(t, filepath.Join(first, "glslangvalidator"), 0o700)
	writeFile(t, filepath.Join(second, BaseName), 0o700)

	searchPath := strings.Join([]string{first, second}, string(os.PathListSeparator))
	res, err := Resolve(Request{SearchPath: searchPath, GOOS: "linux"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// PATH order wins over name preference
	if want := filepath.Join(first, "glslangvalidator"); res.Path != want {
		t.Fatalf("Resolve path = %q, want %q", res.Path, want)
	}

	writeFile(t, filepath.Join(first, BaseName), 0o700)
	res, err = Resolve(Request{SearchPath: searchPath, GOOS: "linux"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := filepath.Join(first, BaseName); res.Path != want {
		t.Fatalf("Resolve path = %q, want %q", res.Path, want)
	}
}

func TestExecutableNames(t *testing.T) {
	if got := ExecutableNames("windows"); len(got) != 1 || got[0] != "glslangValidator.exe" {
		t.Fatalf("ExecutableNames(windows) = %v", got)
	}
	if got := ExecutableNames("linux"); len(got) != 2 || got[0] != BaseName || got[1] != "glslangvalidator" {
		t.Fatalf("ExecutableNames(linux) = %v", got)
	}
}

func TestResolveExplicitFallsBackToSearchPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	root := t.TempDir()
	bad := filepath.Join(root, "not-exec")
	writeFile(t, bad, 0o600)
	binDir := filepath.Join(root, "bin")
	writeFile(t, filepath.Join(binDir, BaseName), 0o700)

	res, err := Resolve(Request{Explicit: bad, SearchPath: binDir, GOOS: "linux"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Path != filepath.Join(binDir, BaseName) {
		t.Fatalf("Resolve path = %q", res.Path)
	}
}

func TestResolveNotFound(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	root := t.TempDir()
	bad := filepath.Join(root, "glslang.txt")
	writeFile(t, bad, 0o600)

	_, err := Resolve(Request{Explicit: bad, SearchPath: filepath.Join(root, "missing")})
	if !errors.Is(err, ErrExecutableNotFound) {
		t.Fatalf("Resolve err = %v, want ErrExecutableNotFound", err)
	}
	if !strings.Contains(err.Error(), bad) {
		t.Fatalf("error %q does not mention explicit path", err)
	}

	_, err = Resolve(Request{SearchPath: ""})
	if !errors.Is(err, ErrExecutableNotFound) {
		t.Fatalf("Resolve err = %v, want ErrExecutableNotFound", err)
	}
}

func TestIsExecutableRejectsDirectories(t *testing.T) {
	dir := t.TempDir()
	if IsExecutable(dir) {
		t.Fatalf("directory reported as executable")
	}
	if IsExecutable(filepath.Join(dir, "missing")) {
		t.Fatalf("missing file reported as executable")
	}
}
