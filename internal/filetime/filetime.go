package filetime

import (
	"io/fs"
	"os"
	"time"
)

// Source names the clock a Stamp was taken from.
type Source string

const (
	SourceBirth    Source = "birth"
	SourceModified Source = "modified"
)

// Stamp is a resolved file timestamp.
type Stamp struct {
	Time   time.Time
	Source Source
}

// Best stats path and returns its creation time, falling back to the
// modification time.
func Best(path string) (Stamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Stamp{}, err
	}
	return FromInfo(path, info), nil
}

// FromInfo resolves the timestamp for an already-stat'ed file. Platforms that
// need a second syscall for birth time use path; failures there fall back to
// info.ModTime().
func FromInfo(path string, info fs.FileInfo) Stamp {
	if info == nil {
		return Stamp{}
	}
	if birth, ok := birthTime(path, info); ok && !birth.IsZero() {
		return Stamp{Time: birth, Source: SourceBirth}
	}
	return Stamp{Time: info.ModTime(), Source: SourceModified}
}

// unixBirth converts a platform birth timestamp. Filesystems that do not
// record birth time leave it at the epoch, which is reported as unset.
func unixBirth(sec, nsec int64) (time.Time, bool) {
	if sec == 0 && nsec == 0 {
		return time.Time{}, false
	}
	return time.Unix(sec, nsec), true
}

// AccessTime returns the last access time recorded in info, or the
// modification time where the platform does not expose it.
func AccessTime(info fs.FileInfo) time.Time {
	if info == nil {
		return time.Time{}
	}
	if atime, ok := accessTime(info); ok {
		return atime
	}
	return info.ModTime()
}
