package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetPathInfo(t *testing.T) {
	dir := t.TempDir()
	full, parent, err := GetPathInfo(filepath.Join(dir, "sub", "..", "prog.as"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if full != filepath.Join(dir, "prog.as") {
		t.Errorf("expected full path %q, got %q", filepath.Join(dir, "prog.as"), full)
	}
	if parent != dir {
		t.Errorf("expected parent %q, got %q", dir, parent)
	}
}

func TestReadSourceNormalisesNewlines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.as")
	if err := os.WriteFile(path, []byte("dim x %;\r\nx as 1;\rend\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadSource(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "dim x %;\nx as 1;\nend\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestReadSourceMissingFile(t *testing.T) {
	if _, err := ReadSource(filepath.Join(t.TempDir(), "missing.as")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReplaceExt(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"prog.as", "prog.ir"},
		{"dir/prog", "dir/prog.ir"},
		{"dir.v2/prog.txt", "dir.v2/prog.ir"},
	}
	for _, tc := range tests {
		if got := ReplaceExt(tc.path, ".ir"); got != tc.want {
			t.Errorf("ReplaceExt(%q) = %q; want %q", tc.path, got, tc.want)
		}
	}
}
