package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/common"
)

// BlobStore uploads results to an Azure Blob container. The returned refs
// are blob URLs, so the download endpoint redirects instead of streaming.
type BlobStore struct {
	client    *azblob.Client
	container string
	log       *slog.Logger
}

func NewBlobStore(connectionString, container string, logger *slog.Logger) (*BlobStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if connectionString == "" || container == "" {
		return nil, common.NewAppError("BLOB_CONFIG_MISSING", "blob connection string and container are required", common.ErrInvalidInput)
	}
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, common.NewAppError("BLOB_CLIENT_FAILED", "cannot create blob client", err)
	}
	return &BlobStore{
		client:    client,
		container: container,
		log:       logger.With("component", "blob_store"),
	}, nil
}

func (s *BlobStore) Store(ctx context.Context, jobID, filename, srcPath string) (Ref, error) {
	start := time.Now()
	blobName := fmt.Sprintf("%s/%s", jobID, filename)

	f, err := os.Open(srcPath)
	if err != nil {
		return Ref{}, common.NewAppError("STORE_FAILED", "cannot open result file", err)
	}
	defer f.Close()

	if _, err := s.client.UploadFile(ctx, s.container, blobName, f, nil); err != nil {
		s.log.Error("storage.blob.upload_failed", "job_id", jobID, "blob", blobName, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return Ref{}, common.NewAppError("STORE_FAILED", "blob upload failed", err)
	}

	url := fmt.Sprintf("%s%s/%s", ensureSlash(s.client.URL()), s.container, blobName)
	s.log.Info("storage.blob.stored",
		"job_id", jobID,
		"blob", blobName,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Ref{Location: url, Remote: true}, nil
}

func ensureSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
