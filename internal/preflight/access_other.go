//go:build !unix

package preflight

import "os"

type accessMode uint32

const (
	accessRead accessMode = iota
	accessWrite
)

// checkAccess falls back to opening the directory; write permission is only
// discovered when the run creates files.
func checkAccess(path string, _ accessMode) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
