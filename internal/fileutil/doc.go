// Package fileutil copies and moves files without ever replacing an existing
// destination.
//
// Copies keep permission bits and access/modification times. Moves use a
// no-replace rename (renameat2 with RENAME_NOREPLACE on Linux) and fall back
// to a verified copy plus source removal when the destination lives on a
// different filesystem.
package fileutil
