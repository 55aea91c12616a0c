// Package preflight checks that the source and destination of a run are
// usable before any file is touched.
//
// The organize command runs RunAll ahead of every run and refuses to start
// when a check fails; "organize config validate" prints the same results as a
// table.
package preflight
