// Package scan walks a source tree and returns the files eligible for
// organization.
//
// Only regular files are returned. Names starting with a dot are skipped
// (hidden directories are still descended), doublestar exclude patterns are
// matched against source-relative slash paths, and whole subtrees can be
// pruned, which keeps a nested destination out of its own source walk. The
// walk is a snapshot: callers may rearrange the tree afterwards without the
// scan revisiting what they placed.
package scan
