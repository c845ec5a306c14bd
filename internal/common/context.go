package common

import (
	"context"
)

type contextKey string

const contextKeyJobID contextKey = "job_id"

// WithJobID tags the context with the job being processed; log lines derived
// from the context carry it.
func WithJobID(ctx context.Context, jobID string) context.Context {
	return context.WithValue(ctx, contextKeyJobID, jobID)
}

// JobIDFromContext extracts the job ID from context, if any.
func JobIDFromContext(ctx context.Context) string {
	if jobID, ok := ctx.Value(contextKeyJobID).(string); ok {
		return jobID
	}
	return ""
}
