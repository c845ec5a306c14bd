package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/constants"
)

// Sink receives the raw markdown a task produced, keyed by extraction kind.
// Tasks write their output before signalling success.
type Sink interface {
	Put(ctx context.Context, kind constants.ExtractionKind, content string) error
}

// DirSink writes each extraction to its canonical filename inside a
// session's extracted/ directory.
type DirSink struct {
	Dir string
}

func NewDirSink(dir string) *DirSink { return &DirSink{Dir: dir} }

func (s *DirSink) Put(_ context.Context, kind constants.ExtractionKind, content string) error {
	name, ok := constants.MarkdownFilenames[kind]
	if !ok {
		return fmt.Errorf("no markdown filename for kind %s", kind)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create sink dir: %w", err)
	}
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// MapSink collects extractions in memory. Safe for concurrent writers.
type MapSink struct {
	mu sync.Mutex
	m  map[constants.ExtractionKind]string
}

func NewMapSink() *MapSink {
	return &MapSink{m: make(map[constants.ExtractionKind]string)}
}

func (s *MapSink) Put(_ context.Context, kind constants.ExtractionKind, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[kind] = content
	return nil
}

// Get returns the stored content for kind, if any.
func (s *MapSink) Get(kind constants.ExtractionKind) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[kind]
	return v, ok
}
