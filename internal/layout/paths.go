package layout

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DateLayout is the reference layout for date folders.
const DateLayout = "2006-01-02"

// maxSuffixAttempts bounds the collision search so a misbehaving existence
// check cannot spin forever.
const maxSuffixAttempts = 100000

// SplitName separates a file name into base and extension (including the
// dot). Leading dots never start an extension, so ".profile" and "..x" have
// none.
func SplitName(name string) (base, ext string) {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || strings.TrimLeft(name[:idx], ".") == "" {
		return name, ""
	}
	return name[:idx], name[idx:]
}

// Extension returns the text after the last dot of name, without the dot.
// A trailing dot yields an empty extension.
func Extension(name string) string {
	_, ext := SplitName(name)
	return strings.TrimPrefix(ext, ".")
}

// DateFolder formats t in the local time zone as YYYY-MM-DD.
func DateFolder(t time.Time) string {
	return t.In(time.Local).Format(DateLayout)
}

// TargetDir joins dest, the date folder for t, and category.
func TargetDir(dest string, t time.Time, category string) string {
	return filepath.Join(dest, DateFolder(t), category)
}

// NextAvailablePath returns dir/base+ext when exists reports it free, else the
// first free dir/base_N+ext for N = 1, 2, ...
func NextAvailablePath(dir, base, ext string, exists func(string) bool) (string, error) {
	if exists == nil {
		exists = PathExists
	}
	candidate := filepath.Join(dir, base+ext)
	for n := 1; exists(candidate); n++ {
		if n > maxSuffixAttempts {
			return "", fmt.Errorf("exhausted file name slots for %s%s in %s", base, ext, dir)
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, n, ext))
	}
	return candidate, nil
}

// PathExists reports whether anything occupies path. Dangling symlinks count
// as occupied, and so does any path whose state cannot be determined.
func PathExists(path string) bool {
	_, err := os.Lstat(path)
	if err == nil {
		return true
	}
	return !errors.Is(err, fs.ErrNotExist)
}
