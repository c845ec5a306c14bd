package storage

import "context"

// Ref locates a stored result. Remote refs are URLs the download endpoint
// can redirect to; local refs are paths it can serve directly.
type Ref struct {
	Location string
	Remote   bool
}

// ResultStore persists a finished job's workbook outside the session
// working area, which is removed once the job completes.
type ResultStore interface {
	// Store uploads the file at srcPath under the job's name and returns
	// where it ended up.
	Store(ctx context.Context, jobID, filename, srcPath string) (Ref, error)
}
