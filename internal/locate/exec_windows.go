//go:build windows

package locate

import (
	"io/fs"
	"path/filepath"
	"strings"
)

func canExecute(path string, _ fs.FileInfo) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".exe", ".com", ".bat", ".cmd":
		return true
	default:
		return false
	}
}
