package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWithExtension(t *testing.T) {
	tests := []struct {
		path, ext, want string
	}{
		{"/media/a_encoded.avi", "mkv", "/media/a_encoded.mkv"},
		{"/media/a_encoded.avi", ".mp4", "/media/a_encoded.mp4"},
		{"clip", "webm", "clip.webm"},
		{"/media/a.b.c.mov", "gif", "/media/a.b.c.gif"},
		{"/media/a.mov", "", "/media/a"},
	}
	for _, tt := range tests {
		if got := WithExtension(tt.path, tt.ext); got != tt.want {
			t.Errorf("WithExtension(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
		}
	}
}

func TestWithExtensionIsIdempotent(t *testing.T) {
	once := WithExtension("/media/a_encoded.avi", "mkv")
	if twice := WithExtension(once, "mkv"); twice != once {
		t.Fatalf("second rewrite changed path: %q -> %q", once, twice)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		input, suffix, want string
	}{
		{"/media/movie.mkv", "_encoded", "/media/movie_encoded.mkv"},
		{"clip.mp4", "_encoded", "clip_encoded.mp4"},
		{"/media/noext", "_out", "/media/noext_out"},
	}
	for _, tt := range tests {
		if got := DefaultOutputPath(tt.input, tt.suffix); got != tt.want {
			t.Errorf("DefaultOutputPath(%q, %q) = %q, want %q", tt.input, tt.suffix, got, tt.want)
		}
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.mp4")
	if Exists(path) {
		t.Fatal("expected missing file")
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !Exists(path) {
		t.Fatal("expected file to exist")
	}
}
