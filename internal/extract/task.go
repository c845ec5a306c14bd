package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/constants"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/common"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/llm"
)

// Result is the outcome of one extraction task — the ExtractedDocument.
// Never mutated after creation.
type Result struct {
	Kind      constants.ExtractionKind
	Content   string
	Succeeded bool
	Err       error
}

// Task pairs one extraction spec with a text generator. Stateless and
// side-effect-free apart from writing its output to the provided sink.
type Task struct {
	Spec   Spec
	Gen    llm.TextGenerator
	Logger *slog.Logger
}

func NewTask(spec Spec, gen llm.TextGenerator, logger *slog.Logger) *Task {
	if logger == nil {
		logger = slog.Default()
	}
	return &Task{Spec: spec, Gen: gen, Logger: logger}
}

// Run performs exactly one generation call for the task's kind and writes
// the raw markdown to sink on success. Every failure is converted into a
// Result carrying a tagged reason; Run never panics and never retries.
func (t *Task) Run(ctx context.Context, document string, sink Sink) Result {
	start := time.Now()
	t.Logger.Info("extract.task.start",
		"kind", t.Spec.Kind,
		"name", t.Spec.Name,
		"document_len", len(document),
	)

	content, err := t.Gen.Generate(ctx, llm.GenerateRequest{
		System: t.Spec.System,
		User:   t.Spec.UserPrompt(document),
	})
	if err != nil {
		t.Logger.Error("extract.task.failed",
			"kind", t.Spec.Kind,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Result{
			Kind: t.Spec.Kind,
			Err:  common.NewAppError("EXTRACTION_FAILED", t.Spec.Name+" extraction failed", err),
		}
	}

	if err := sink.Put(ctx, t.Spec.Kind, content); err != nil {
		t.Logger.Error("extract.task.sink_failed",
			"kind", t.Spec.Kind,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Result{
			Kind: t.Spec.Kind,
			Err:  common.NewAppError("EXTRACTION_SINK_FAILED", t.Spec.Name+" output could not be stored", err),
		}
	}

	t.Logger.Info("extract.task.ok",
		"kind", t.Spec.Kind,
		"content_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Result{Kind: t.Spec.Kind, Content: content, Succeeded: true}
}
