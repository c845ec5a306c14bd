package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/constants"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/common"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/convert"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/excel"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/extract"
)

// CombinedFilename is the combined workbook's name inside a session's
// excel/ directory and in result storage.
const CombinedFilename = "rfp_analysis.xlsx"

// ParsedFilename is the converted markdown's name inside parsed/.
const ParsedFilename = "document.md"

// extractor runs the concurrent extraction fan-out against one document.
type extractor interface {
	Run(ctx context.Context, document string, sink extract.Sink) map[constants.ExtractionKind]extract.Result
}

// projector turns extracted markdown into workbooks.
type projector interface {
	ProjectToFile(ctx context.Context, kind constants.ExtractionKind, content, path string) (excel.Layout, error)
	CombineDir(ctx context.Context, dir, outPath string) ([]string, error)
}

// Outcome is what one pipeline run produced. Partial extraction success is
// first-class: Kinds enumerates every extraction with its own status, and
// the combined workbook holds whichever sheets succeeded.
type Outcome struct {
	Session      *Session
	WorkbookPath string
	Sheets       []string
	Kinds        map[constants.ExtractionKind]extract.Result
	DroppedRows  int
}

// Processor runs the whole pipeline for one source document inside a fresh
// session: convert to markdown, extract all kinds concurrently, project each
// successful extraction, combine.
type Processor struct {
	conv          convert.DocumentConverter
	orch          extractor
	xlsx          projector
	workDir       string
	keepOnFailure bool
	log           *slog.Logger
}

func NewProcessor(conv convert.DocumentConverter, orch extractor, xlsx projector, cfg common.PipelineConfig, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		conv:          conv,
		orch:          orch,
		xlsx:          xlsx,
		workDir:       cfg.WorkDir,
		keepOnFailure: cfg.KeepOnFailure,
		log:           logger.With("component", "pipeline"),
	}
}

// Process runs the pipeline on the document at srcPath. On error the
// session tree is removed unless keep-on-failure is set; on success the
// caller owns the session and cleans it up after storing the workbook.
func (p *Processor) Process(ctx context.Context, srcPath string) (*Outcome, error) {
	start := time.Now()

	session, err := NewSession(p.workDir)
	if err != nil {
		return nil, common.NewAppError("SESSION_CREATE_FAILED", "cannot create session working area", err)
	}
	log := p.log.With("session_id", session.ID)
	if jobID := common.JobIDFromContext(ctx); jobID != "" {
		log = log.With("job_id", jobID)
	}
	log.Info("pipeline.start", "source", srcPath)

	outcome, err := p.run(ctx, session, srcPath, log)
	if err != nil {
		log.Error("pipeline.failed", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		if p.keepOnFailure {
			log.Info("pipeline.session_kept", "root", session.Root)
		} else if cleanupErr := session.Cleanup(); cleanupErr != nil {
			log.Warn("pipeline.cleanup_failed", "error", cleanupErr)
		}
		return nil, err
	}

	log.Info("pipeline.ok",
		"workbook", outcome.WorkbookPath,
		"sheets", len(outcome.Sheets),
		"dropped_rows", outcome.DroppedRows,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return outcome, nil
}

func (p *Processor) run(ctx context.Context, session *Session, srcPath string, log *slog.Logger) (*Outcome, error) {
	inputPath := filepath.Join(session.InputDir(), filepath.Base(srcPath))
	if err := copyFile(srcPath, inputPath); err != nil {
		return nil, common.NewAppError("SESSION_INPUT_FAILED", "cannot stage input document", err)
	}

	document, err := p.conv.Convert(ctx, inputPath)
	if err != nil {
		return nil, err
	}
	parsedPath := filepath.Join(session.ParsedDir(), ParsedFilename)
	if err := os.WriteFile(parsedPath, []byte(document), 0o644); err != nil {
		return nil, common.NewAppError("SESSION_PARSED_FAILED", "cannot store parsed markdown", err)
	}

	results := p.orch.Run(ctx, document, extract.NewDirSink(session.ExtractedDir()))
	if succeededCount(results) == 0 {
		return nil, common.NewAppError("EXTRACTION_ALL_FAILED", "every extraction failed", firstError(results))
	}

	outcome := &Outcome{Session: session, Kinds: results}

	// Project every successful extraction; the projection service bounds
	// actual parallelism with its worker budget. A failed projection demotes
	// that kind to failed instead of aborting the session.
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for kind, res := range results {
		if !res.Succeeded {
			continue
		}
		wg.Add(1)
		go func(kind constants.ExtractionKind, content string) {
			defer wg.Done()
			path := filepath.Join(session.ExcelDir(), constants.ExcelFilenames[kind])
			layout, err := p.xlsx.ProjectToFile(ctx, kind, content, path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				outcome.Kinds[kind] = extract.Result{
					Kind: kind,
					Err:  common.NewAppError("PROJECTION_FAILED", string(kind)+" projection failed", err),
				}
				return
			}
			outcome.DroppedRows += layout.DroppedRows
		}(kind, res.Content)
	}
	wg.Wait()

	if succeededCount(outcome.Kinds) == 0 {
		return nil, common.NewAppError("PROJECTION_ALL_FAILED", "every projection failed", firstError(outcome.Kinds))
	}

	outcome.WorkbookPath = filepath.Join(session.ExcelDir(), CombinedFilename)
	sheets, err := p.xlsx.CombineDir(ctx, session.ExcelDir(), outcome.WorkbookPath)
	if err != nil {
		return nil, common.NewAppError("COMBINE_FAILED", "cannot combine workbooks", err)
	}
	outcome.Sheets = sheets

	for kind, res := range outcome.Kinds {
		if !res.Succeeded {
			log.Warn("pipeline.kind_failed", "kind", kind, "error", res.Err)
		}
	}
	return outcome, nil
}

func succeededCount(results map[constants.ExtractionKind]extract.Result) int {
	n := 0
	for _, r := range results {
		if r.Succeeded {
			n++
		}
	}
	return n
}

func firstError(results map[constants.ExtractionKind]extract.Result) error {
	for _, kind := range constants.AllKinds {
		if r, ok := results[kind]; ok && r.Err != nil {
			return r.Err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
