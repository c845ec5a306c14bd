package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/common"
)

// FSStore keeps results under a local directory, one subdirectory per job.
type FSStore struct {
	baseDir string
	log     *slog.Logger
}

func NewFSStore(baseDir string, logger *slog.Logger) (*FSStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir results dir: %w", err)
	}
	return &FSStore{baseDir: baseDir, log: logger.With("component", "fs_store")}, nil
}

func (s *FSStore) Store(ctx context.Context, jobID, filename, srcPath string) (Ref, error) {
	if err := ctx.Err(); err != nil {
		return Ref{}, err
	}

	dstDir := filepath.Join(s.baseDir, jobID)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return Ref{}, common.NewAppError("STORE_FAILED", "cannot create result dir", err)
	}
	dst := filepath.Join(dstDir, filename)
	if err := copyFile(srcPath, dst); err != nil {
		return Ref{}, common.NewAppError("STORE_FAILED", "cannot copy result", err)
	}

	s.log.Info("storage.fs.stored", "job_id", jobID, "path", dst)
	return Ref{Location: dst}, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
