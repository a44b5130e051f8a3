package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type FileSystem struct {
	baseDir string
}

func NewFileSystem(baseDir string) *FileSystem {
	return &FileSystem{baseDir: baseDir}
}

// sanitizePath rejects traversal and absolute paths so a report name
// can never escape the base directory.
func (fs *FileSystem) sanitizePath(path string) (string, error) {
	cleaned := filepath.Clean(path)
	if strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid path: contains parent directory reference")
	}
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid path: absolute paths not allowed")
	}
	full := filepath.Join(fs.baseDir, cleaned)
	if !strings.HasPrefix(full, fs.baseDir+string(filepath.Separator)) && full != fs.baseDir {
		return "", fmt.Errorf("invalid path: outside base directory")
	}
	return full, nil
}

func (fs *FileSystem) Save(ctx context.Context, path string, data []byte) error {
	full, err := fs.sanitizePath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

func (fs *FileSystem) Load(ctx context.Context, path string) ([]byte, error) {
	full, err := fs.sanitizePath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

func (fs *FileSystem) List(ctx context.Context, pattern string) ([]string, error) {
	cleaned := filepath.Clean(pattern)
	if strings.Contains(cleaned, "..") || filepath.IsAbs(cleaned) {
		return nil, fmt.Errorf("invalid pattern")
	}
	matches, err := filepath.Glob(filepath.Join(fs.baseDir, cleaned))
	if err != nil {
		return nil, fmt.Errorf("listing %q: %w", pattern, err)
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		rel, err := filepath.Rel(fs.baseDir, m)
		if err != nil {
			continue
		}
		out = append(out, rel)
	}
	return out, nil
}
