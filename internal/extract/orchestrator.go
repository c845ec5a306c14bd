package extract

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/constants"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/llm"
)

// Orchestrator runs the five extraction tasks concurrently against one
// document. Tasks are fully independent: failures are recorded per kind and
// never abort siblings. No retries, no overall timeout beyond what the
// caller's context and each call's own timeout impose.
type Orchestrator struct {
	gen    llm.TextGenerator
	specs  []Spec
	logger *slog.Logger
}

func NewOrchestrator(gen llm.TextGenerator, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{gen: gen, specs: Specs(), logger: logger}
}

// Run launches every task, awaits all of them, and returns one Result per
// kind. The postcondition is mechanically checkable: len(results) equals
// the number of specs, with Succeeded/Err enumerating each outcome.
func (o *Orchestrator) Run(ctx context.Context, document string, sink Sink) map[constants.ExtractionKind]Result {
	start := time.Now()
	o.logger.Info("extract.orchestrator.start",
		"tasks", len(o.specs),
		"document_len", len(document),
	)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[constants.ExtractionKind]Result, len(o.specs))
	)
	for _, spec := range o.specs {
		wg.Add(1)
		go func(spec Spec) {
			defer wg.Done()
			res := NewTask(spec, o.gen, o.logger).Run(ctx, document, sink)
			mu.Lock()
			results[spec.Kind] = res
			mu.Unlock()
		}(spec)
	}
	wg.Wait()

	succeeded := 0
	for _, r := range results {
		if r.Succeeded {
			succeeded++
		}
	}
	o.logger.Info("extract.orchestrator.done",
		"succeeded", succeeded,
		"failed", len(results)-succeeded,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return results
}
