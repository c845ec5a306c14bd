package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/constants"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/llm"
)

// fakeGenerator returns canned content per system prompt, or an error for
// kinds listed in failSystems.
type fakeGenerator struct {
	mu    sync.Mutex
	calls int
	fail  map[string]error // matched by substring of the system prompt
}

func (f *fakeGenerator) Generate(_ context.Context, req llm.GenerateRequest) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	for marker, err := range f.fail {
		if strings.Contains(req.System, marker) {
			return "", err
		}
	}
	return "# Extracted\n\ncontent for: " + req.System[:20], nil
}

func TestOrchestrator_AllSucceed(t *testing.T) {
	gen := &fakeGenerator{}
	sink := NewMapSink()

	results := NewOrchestrator(gen, nil).Run(context.Background(), "rfp text", sink)

	require.Len(t, results, 5)
	for _, kind := range constants.AllKinds {
		res, ok := results[kind]
		require.True(t, ok, "missing result for %s", kind)
		assert.True(t, res.Succeeded)
		assert.NoError(t, res.Err)
		_, stored := sink.Get(kind)
		assert.True(t, stored, "sink missing %s", kind)
	}
	assert.Equal(t, 5, gen.calls)
}

func TestOrchestrator_PartialFailure(t *testing.T) {
	// The TQ task fails with an external-service error; the other four must
	// still succeed and the failure must be recorded, not propagated.
	gen := &fakeGenerator{fail: map[string]error{
		"SCORING/EVALUATION": errors.New("status 503: upstream unavailable"),
	}}
	sink := NewMapSink()

	results := NewOrchestrator(gen, nil).Run(context.Background(), "rfp text", sink)

	require.Len(t, results, 5)
	tq := results[constants.KindTQ]
	assert.False(t, tq.Succeeded)
	require.Error(t, tq.Err)
	assert.Contains(t, tq.Err.Error(), "upstream unavailable")
	_, stored := sink.Get(constants.KindTQ)
	assert.False(t, stored)

	for _, kind := range []constants.ExtractionKind{
		constants.KindBOQ, constants.KindPQ, constants.KindSummary, constants.KindPayment,
	} {
		assert.True(t, results[kind].Succeeded, "kind %s should have succeeded", kind)
	}
}

func TestTask_WritesSinkBeforeSuccess(t *testing.T) {
	dir := t.TempDir()
	gen := &fakeGenerator{}
	spec, ok := SpecFor(constants.KindBOQ)
	require.True(t, ok)

	res := NewTask(spec, gen, nil).Run(context.Background(), "doc", NewDirSink(dir))

	require.True(t, res.Succeeded)
	data, err := os.ReadFile(filepath.Join(dir, constants.MarkdownFilenames[constants.KindBOQ]))
	require.NoError(t, err)
	assert.Equal(t, res.Content, string(data))
}

func TestTask_SinkFailureIsTaskFailure(t *testing.T) {
	gen := &fakeGenerator{}
	spec, _ := SpecFor(constants.KindSummary)
	// A file where a directory is expected makes DirSink fail.
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	res := NewTask(spec, gen, nil).Run(context.Background(), "doc", NewDirSink(filepath.Join(file, "sub")))

	assert.False(t, res.Succeeded)
	assert.Error(t, res.Err)
}

func TestSpecs_CoverAllKindsWithSkeletons(t *testing.T) {
	specs := Specs()
	require.Len(t, specs, len(constants.AllKinds))

	skeletons := map[constants.ExtractionKind][]string{
		constants.KindBOQ:     {"## 1. BOQ Table(s)", "## 2. BOQ Notes / Instructions"},
		constants.KindPQ:      {"## 1. General Notes", "## 5. Deadlines"},
		constants.KindTQ:      {"## Technical Qualification Scoring Table"},
		constants.KindSummary: {"| Key Detail | Information |", "## Scope of Work"},
		constants.KindPayment: {"## 1. Payment Schedule / Milestones", "## 5. Other Payment-Linked Conditions"},
	}
	for _, s := range specs {
		assert.Contains(t, s.UserTemplate, "%s")
		for _, want := range skeletons[s.Kind] {
			assert.Contains(t, s.System, want, "kind %s missing skeleton %q", s.Kind, want)
		}
	}
}
