// Package organizer sorts the files of a source tree into a destination tree
// laid out as <dest>/<YYYY-MM-DD>/<CATEGORY>/<name>.
//
// A run snapshots the source file list first, then places each file in turn:
// it resolves the best available timestamp, classifies the extension, picks
// a collision-free name and copies or moves the file. Failures on one file are
// logged and counted; they never stop the run. Only problems that make the
// whole run meaningless (a missing source, a locked destination) are returned
// as errors.
//
// Callers observe progress through an Observer callback and receive a Summary
// when the run ends.
package organizer
