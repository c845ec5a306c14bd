package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Session is one job's isolated working area:
//
//	<workdir>/<session-id>/input/      uploaded source document
//	<workdir>/<session-id>/parsed/     converted markdown
//	<workdir>/<session-id>/extracted/  per-kind extraction markdown
//	<workdir>/<session-id>/excel/      per-kind and combined workbooks
//
// Concurrent sessions never share paths.
type Session struct {
	ID   string
	Root string
}

// NewSession creates the session tree under workDir.
func NewSession(workDir string) (*Session, error) {
	s := &Session{ID: uuid.New().String()}
	s.Root = filepath.Join(workDir, s.ID)
	for _, dir := range []string{s.InputDir(), s.ParsedDir(), s.ExtractedDir(), s.ExcelDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create session dir %s: %w", dir, err)
		}
	}
	return s, nil
}

func (s *Session) InputDir() string     { return filepath.Join(s.Root, "input") }
func (s *Session) ParsedDir() string    { return filepath.Join(s.Root, "parsed") }
func (s *Session) ExtractedDir() string { return filepath.Join(s.Root, "extracted") }
func (s *Session) ExcelDir() string     { return filepath.Join(s.Root, "excel") }

// Cleanup removes the whole session tree.
func (s *Session) Cleanup() error {
	return os.RemoveAll(s.Root)
}
