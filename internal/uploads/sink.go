package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Sink implements catalog.FileSink using a flat directory on the
// filesystem. Stored files are never renamed, moved or deleted.
type Sink struct {
	dir string
	mu  sync.Mutex
}

// New creates a sink writing into dir
func New(dir string) *Sink {
	return &Sink{dir: dir}
}

// Store writes content under a collision-free name derived from
// originalName and returns the name actually used. Directory components
// in originalName are discarded, so the file always lands directly
// inside the upload directory. The mutex covers the existence probe and
// the create together, closing the check-then-create gap for concurrent
// uploads within this process.
func (s *Sink) Store(originalName string, content io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := s.uniqueName(sanitize(originalName))
	path := filepath.Join(s.dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		// Clean up the partial file if the copy fails
		os.Remove(path)
		return "", fmt.Errorf("failed to write file content: %w", err)
	}

	return name, nil
}

// sanitize reduces a client-supplied filename to a safe leaf name
func sanitize(name string) string {
	name = filepath.Base(name)
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "upload"
	}
	return name
}

// uniqueName returns name if no such file exists yet, otherwise the
// first free name of the form stem_1.ext, stem_2.ext, ... The counter
// is unbounded.
func (s *Sink) uniqueName(name string) string {
	if !s.exists(name) {
		return name
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if !s.exists(candidate) {
			return candidate
		}
	}
}

func (s *Sink) exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}
