package excel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/constants"
)

// Service projects extracted markdown documents into styled workbooks.
// Projection and rendering are synchronous and can be sizeable for
// multi-hundred-page RFPs, so concurrent callers share a bounded worker
// budget.
type Service struct {
	logger *slog.Logger
	sem    *semaphore.Weighted
}

func NewService(logger *slog.Logger, workers int) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = 4
	}
	return &Service{logger: logger, sem: semaphore.NewWeighted(int64(workers))}
}

// ProjectToFile projects content under the kind's layout policy and writes
// a single-sheet workbook to path.
func (s *Service) ProjectToFile(ctx context.Context, kind constants.ExtractionKind, content, path string) (Layout, error) {
	policy, ok := PolicyFor(kind)
	if !ok {
		return Layout{}, fmt.Errorf("no layout policy for kind %s", kind)
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return Layout{}, fmt.Errorf("acquire projection worker: %w", err)
	}
	defer s.sem.Release(1)

	start := time.Now()
	layout := Project(content, policy)
	if err := RenderToFile(layout, path); err != nil {
		s.logger.Error("project.xlsx.failed",
			"kind", kind,
			"path", path,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return layout, err
	}

	s.logger.Info("project.xlsx.ok",
		"kind", kind,
		"path", path,
		"bands", len(layout.Bands),
		"dropped_rows", layout.DroppedRows,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return layout, nil
}

// CombineDir merges the per-kind workbooks in dir into outPath.
func (s *Service) CombineDir(_ context.Context, dir, outPath string) ([]string, error) {
	start := time.Now()
	sheets, err := Combine(dir, outPath)
	if err != nil {
		s.logger.Error("combine.xlsx.failed", "dir", dir, "error", err)
		return nil, err
	}
	s.logger.Info("combine.xlsx.ok",
		"path", outPath,
		"sheets", len(sheets),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return sheets, nil
}
