package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// Skip reasons reported in Result.Skipped.
const (
	ReasonHidden     = "hidden"
	ReasonExcluded   = "excluded"
	ReasonNotRegular = "not a regular file"
)

// Entry is a regular file found under the scanned root.
type Entry struct {
	Path    string
	RelPath string
	Name    string
	Size    int64
	ModTime time.Time
	Info    fs.FileInfo
}

// Skipped records an entry the walk passed over on purpose.
type Skipped struct {
	Path   string
	Reason string
}

// Result is the outcome of a walk. Errors holds per-entry failures (for
// example unreadable subdirectories) that did not stop the walk.
type Result struct {
	Entries []Entry
	Skipped []Skipped
	Errors  []error
}

// Options tunes the walk.
type Options struct {
	// Exclude holds doublestar patterns matched against slash-separated
	// paths relative to the root.
	Exclude []string
	// PruneDirs lists absolute directories whose subtrees are not visited.
	PruneDirs []string
}

// ValidatePatterns reports the first malformed exclude pattern.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}

// Walk scans root. Only an unreadable root is returned as an error. A
// symlinked root is followed; entry paths are reported under its target.
func Walk(root string, opts Options) (Result, error) {
	if err := ValidatePatterns(opts.Exclude); err != nil {
		return Result{}, err
	}
	root, err := filepath.EvalSymlinks(filepath.Clean(root))
	if err != nil {
		return Result{}, err
	}
	pruned := cleanAll(opts.PruneDirs)

	var res Result
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			res.Errors = append(res.Errors, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if isPruned(path, pruned) {
				return filepath.SkipDir
			}
			if rel, ok := relSlash(root, path); ok && matchesAny(opts.Exclude, rel) {
				res.Skipped = append(res.Skipped, Skipped{Path: path, Reason: ReasonExcluded})
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") {
			res.Skipped = append(res.Skipped, Skipped{Path: path, Reason: ReasonHidden})
			return nil
		}
		rel, _ := relSlash(root, path)
		if matchesAny(opts.Exclude, rel) {
			res.Skipped = append(res.Skipped, Skipped{Path: path, Reason: ReasonExcluded})
			return nil
		}
		if !d.Type().IsRegular() {
			res.Skipped = append(res.Skipped, Skipped{Path: path, Reason: ReasonNotRegular})
			return nil
		}

		info, err := d.Info()
		if err != nil {
			res.Errors = append(res.Errors, &fs.PathError{Op: "stat", Path: path, Err: err})
			return nil
		}
		res.Entries = append(res.Entries, Entry{
			Path:    path,
			RelPath: filepath.FromSlash(rel),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Info:    info,
		})
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	sort.Slice(res.Entries, func(i, j int) bool { return res.Entries[i].RelPath < res.Entries[j].RelPath })
	return res, nil
}

// Resolve returns path with symlinks evaluated. Trailing components that do
// not exist yet are joined unchanged onto their resolved parent.
func Resolve(path string) (string, error) {
	path = filepath.Clean(path)
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	parent := filepath.Dir(path)
	if parent == path {
		return path, nil
	}
	base, err := Resolve(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, filepath.Base(path)), nil
}

// IsUnder reports whether path equals base or lies inside it.
func IsUnder(path, base string) bool {
	path = filepath.Clean(path)
	base = filepath.Clean(base)
	if path == base {
		return true
	}
	sep := string(filepath.Separator)
	if strings.HasSuffix(base, sep) {
		return strings.HasPrefix(path, base)
	}
	return strings.HasPrefix(path, base+sep)
}

func relSlash(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func matchesAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func cleanAll(dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if resolved, err := Resolve(d); err == nil {
			d = resolved
		}
		out = append(out, filepath.Clean(d))
	}
	sort.Strings(out)
	return out
}

func isPruned(path string, pruned []string) bool {
	for _, base := range pruned {
		if IsUnder(path, base) {
			return true
		}
	}
	return false
}
