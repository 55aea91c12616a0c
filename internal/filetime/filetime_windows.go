//go:build windows

package filetime

import (
	"io/fs"
	"syscall"
	"time"
)

func birthTime(_ string, info fs.FileInfo) (time.Time, bool) {
	attrs, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok || attrs == nil {
		return time.Time{}, false
	}
	if attrs.CreationTime.HighDateTime == 0 && attrs.CreationTime.LowDateTime == 0 {
		return time.Time{}, false
	}
	return time.Unix(0, attrs.CreationTime.Nanoseconds()), true
}

func accessTime(info fs.FileInfo) (time.Time, bool) {
	attrs, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok || attrs == nil {
		return time.Time{}, false
	}
	return time.Unix(0, attrs.LastAccessTime.Nanoseconds()), true
}
