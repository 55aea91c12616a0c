package layout

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCategory(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		ext  string
		want string
	}{
		{ext: "CR3", want: "RAW"},
		{ext: "cr3", want: "RAW"},
		{ext: ".Arw", want: "RAW"},
		{ext: "nef", want: "RAW"},
		{ext: "DNG", want: "RAW"},
		{ext: "raf", want: "RAW"},
		{ext: "mp4", want: filepath.Join("MP4", "Originals")},
		{ext: "MOV", want: filepath.Join("MOV", "Originals")},
		{ext: ".avi", want: filepath.Join("AVI", "Originals")},
		{ext: "mkv", want: filepath.Join("MKV", "Originals")},
		{ext: "jpg", want: "JPG"},
		{ext: "Jpeg", want: "JPEG"},
		{ext: "tar.gz", want: "TAR.GZ"},
		{ext: "", want: "NO_EXTENSION"},
		{ext: ".", want: "NO_EXTENSION"},
		{ext: "straße", want: "STRASSE"},
	}
	for _, tc := range tests {
		if got := rules.Category(tc.ext); got != tc.want {
			t.Fatalf("Category(%q) = %q, want %q", tc.ext, got, tc.want)
		}
	}
}

func TestCategoryCustomRules(t *testing.T) {
	rules := Rules{
		RawExtensions:   []string{"orf"},
		VideoExtensions: []string{".webm"},
		OriginalsDir:    "Source",
	}
	if got := rules.Category("ORF"); got != "RAW" {
		t.Fatalf("expected RAW for custom raw set, got %q", got)
	}
	if got := rules.Category("webm"); got != filepath.Join("WEBM", "Source") {
		t.Fatalf("unexpected video category %q", got)
	}
	if got := rules.Category("cr3"); got != "CR3" {
		t.Fatalf("expected CR3 to fall through to default, got %q", got)
	}
	if got := rules.Category(""); got != "NO_EXTENSION" {
		t.Fatalf("expected default no-extension folder, got %q", got)
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name, base, ext string
	}{
		{"photo.CR3", "photo", ".CR3"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"notes", "notes", ""},
		{".profile", ".profile", ""},
		{"..x", "..x", ""},
		{"name.", "name", "."},
		{".hidden.jpg", ".hidden", ".jpg"},
	}
	for _, tc := range tests {
		base, ext := SplitName(tc.name)
		if base != tc.base || ext != tc.ext {
			t.Fatalf("SplitName(%q) = (%q, %q), want (%q, %q)", tc.name, base, ext, tc.base, tc.ext)
		}
	}
	if got := Extension("name."); got != "" {
		t.Fatalf("expected empty extension for trailing dot, got %q", got)
	}
	if got := Extension("clip.mp4"); got != "mp4" {
		t.Fatalf("unexpected extension %q", got)
	}
}

func TestTargetDir(t *testing.T) {
	stamp := time.Date(2023, 5, 1, 12, 0, 0, 0, time.Local)
	got := TargetDir("/dest", stamp, DefaultRules().Category("CR3"))
	want := filepath.Join("/dest", "2023-05-01", "RAW")
	if got != want {
		t.Fatalf("TargetDir = %q, want %q", got, want)
	}
	got = TargetDir("/dest", stamp, DefaultRules().Category("mp4"))
	want = filepath.Join("/dest", "2023-05-01", "MP4", "Originals")
	if got != want {
		t.Fatalf("TargetDir = %q, want %q", got, want)
	}
}

func TestNextAvailablePath(t *testing.T) {
	taken := map[string]bool{}
	exists := func(p string) bool { return taken[p] }

	dir := filepath.Join("/dest", "2023-05-01", "JPG")
	first, err := NextAvailablePath(dir, "a", ".jpg", exists)
	if err != nil {
		t.Fatalf("NextAvailablePath: %v", err)
	}
	if first != filepath.Join(dir, "a.jpg") {
		t.Fatalf("unexpected first path %q", first)
	}
	taken[first] = true

	second, err := NextAvailablePath(dir, "a", ".jpg", exists)
	if err != nil {
		t.Fatalf("NextAvailablePath: %v", err)
	}
	if second != filepath.Join(dir, "a_1.jpg") {
		t.Fatalf("unexpected second path %q", second)
	}
	taken[second] = true

	third, err := NextAvailablePath(dir, "a", ".jpg", exists)
	if err != nil {
		t.Fatalf("NextAvailablePath: %v", err)
	}
	if third != filepath.Join(dir, "a_2.jpg") {
		t.Fatalf("unexpected third path %q", third)
	}

	noExt, err := NextAvailablePath(dir, "notes", "", func(p string) bool { return p == filepath.Join(dir, "notes") })
	if err != nil {
		t.Fatalf("NextAvailablePath: %v", err)
	}
	if noExt != filepath.Join(dir, "notes_1") {
		t.Fatalf("unexpected suffix for extensionless file %q", noExt)
	}
}

func TestNextAvailablePathGivesUp(t *testing.T) {
	if _, err := NextAvailablePath("/dest", "a", ".jpg", func(string) bool { return true }); err == nil {
		t.Fatal("expected error when every slot is taken")
	}
}

func TestPathExists(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(present, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !PathExists(present) {
		t.Fatal("expected existing file to be reported")
	}
	if PathExists(filepath.Join(dir, "missing.txt")) {
		t.Fatal("expected missing file to be free")
	}
	dangling := filepath.Join(dir, "dangling")
	if err := os.Symlink(filepath.Join(dir, "nowhere"), dangling); err == nil {
		if !PathExists(dangling) {
			t.Fatal("expected dangling symlink to count as occupied")
		}
	}
}
