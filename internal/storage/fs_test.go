package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_Store(t *testing.T) {
	src := filepath.Join(t.TempDir(), "combined.xlsx")
	require.NoError(t, os.WriteFile(src, []byte("workbook bytes"), 0o644))

	base := t.TempDir()
	s, err := NewFSStore(base, nil)
	require.NoError(t, err)

	ref, err := s.Store(context.Background(), "job-1", "combined.xlsx", src)
	require.NoError(t, err)
	assert.False(t, ref.Remote)
	assert.Equal(t, filepath.Join(base, "job-1", "combined.xlsx"), ref.Location)

	data, err := os.ReadFile(ref.Location)
	require.NoError(t, err)
	assert.Equal(t, "workbook bytes", string(data))
}

func TestFSStore_MissingSource(t *testing.T) {
	s, err := NewFSStore(t.TempDir(), nil)
	require.NoError(t, err)

	_, err = s.Store(context.Background(), "job-1", "combined.xlsx", filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.Error(t, err)
}
