// Package filetime resolves the best available timestamp for a file.
//
// Creation (birth) time is preferred where the platform exposes it: statx on
// Linux, the Stat_t birth field on Darwin, and CreationTime on Windows. When
// the platform or filesystem cannot report it, the modification time is used
// instead. Stamp.Source records which clock was chosen.
package filetime
