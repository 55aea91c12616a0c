package fileutil

import (
	"errors"
	"io/fs"
	"os"
)

// renameChecked refuses to rename onto an existing path. The check and the
// rename are two steps, so this only holds for a single writer.
func renameChecked(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(src, dst)
}
