package layout

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	defaultRawDir         = "RAW"
	defaultOriginalsDir   = "Originals"
	defaultNoExtensionDir = "NO_EXTENSION"
)

// Rules controls how extensions map to category folders.
type Rules struct {
	RawExtensions   []string
	VideoExtensions []string
	RawDir          string
	OriginalsDir    string
	NoExtensionDir  string
}

// DefaultRules returns the built-in classification rules.
func DefaultRules() Rules {
	return Rules{
		RawExtensions:   []string{"CR3", "ARW", "NEF", "DNG", "RAF"},
		VideoExtensions: []string{"MP4", "MOV", "AVI", "MKV"},
		RawDir:          defaultRawDir,
		OriginalsDir:    defaultOriginalsDir,
		NoExtensionDir:  defaultNoExtensionDir,
	}
}

// NormalizeExt strips a leading dot and uppercases the extension using full
// Unicode case mapping.
func NormalizeExt(ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return ""
	}
	return cases.Upper(language.Und).String(ext)
}

// Category returns the relative folder for a file with the given extension.
// The extension may carry a leading dot and any case.
func (r Rules) Category(ext string) string {
	r = r.withDefaults()
	upper := NormalizeExt(ext)
	switch {
	case upper == "":
		return r.NoExtensionDir
	case containsExt(r.RawExtensions, upper):
		return r.RawDir
	case containsExt(r.VideoExtensions, upper):
		return filepath.Join(upper, r.OriginalsDir)
	default:
		return upper
	}
}

func (r Rules) withDefaults() Rules {
	if strings.TrimSpace(r.RawDir) == "" {
		r.RawDir = defaultRawDir
	}
	if strings.TrimSpace(r.OriginalsDir) == "" {
		r.OriginalsDir = defaultOriginalsDir
	}
	if strings.TrimSpace(r.NoExtensionDir) == "" {
		r.NoExtensionDir = defaultNoExtensionDir
	}
	return r
}

func containsExt(list []string, upper string) bool {
	if upper == "" {
		return false
	}
	for _, candidate := range list {
		if NormalizeExt(candidate) == upper {
			return true
		}
	}
	return false
}
