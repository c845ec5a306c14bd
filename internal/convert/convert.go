package convert

import "context"

// DocumentConverter turns a source document on disk into markdown text the
// extraction layer can prompt with. Implementations are stateless; a failed
// conversion fails the whole session.
type DocumentConverter interface {
	Convert(ctx context.Context, path string) (string, error)
}
