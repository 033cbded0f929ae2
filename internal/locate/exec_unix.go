//go:build !windows

package locate

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

func canExecute(path string, _ fs.FileInfo) bool {
	return unix.Access(path, unix.X_OK) == nil
}
