// Package fileutil derives output paths for encoder jobs.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// WithExtension replaces the extension of path with ext. A leading dot on ext
// is optional; an empty ext strips the extension.
func WithExtension(path, ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if ext == "" {
		return base
	}
	return base + "." + ext
}

// DefaultOutputPath places the output next to input as <stem><suffix>.<ext>,
// keeping the input's extension.
func DefaultOutputPath(input, suffix string) string {
	dir := filepath.Dir(input)
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+suffix+ext)
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
