package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/constants"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/common"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/convert"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/excel"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/extract"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/llm/openai"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/pipeline"
)

// printError prints to stderr, falling back to stdout if stderr fails.
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		file = flag.String("file", "", "RFP PDF to process (required)")
		out  = flag.String("out", "", "output XLSX path (defaults next to the input)")
		keep = flag.Bool("keep", false, "keep the session working area on failure")
	)
	flag.Parse()

	if *file == "" {
		printError("Error: --file is required\n")
		os.Exit(1)
	}
	if *out == "" {
		base := strings.TrimSuffix(filepath.Base(*file), filepath.Ext(*file))
		*out = filepath.Join(filepath.Dir(*file), base+"_analysis.xlsx")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	cfg.Pipeline.KeepOnFailure = cfg.Pipeline.KeepOnFailure || *keep

	llmClient := openai.NewClient(openai.Config{
		Endpoint:            cfg.LLM.Endpoint,
		Deployment:          cfg.LLM.Deployment,
		APIVersion:          cfg.LLM.APIVersion,
		APIKey:              cfg.LLM.APIKey,
		Timeout:             cfg.LLM.Timeout,
		MaxCompletionTokens: cfg.LLM.MaxCompletionTokens,
	}, logger)

	processor := pipeline.NewProcessor(
		convert.NewPDFConverter(logger),
		extract.NewOrchestrator(llmClient, logger),
		excel.NewService(logger, cfg.Pipeline.ProjectionWorkers),
		cfg.Pipeline,
		logger,
	)

	ctx := context.Background()
	outcome, err := processor.Process(ctx, *file)
	if err != nil {
		logger.Error("pipeline failed", "file", *file, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := outcome.Session.Cleanup(); err != nil {
			logger.Warn("session cleanup failed", "error", err)
		}
	}()

	if err := copyFile(outcome.WorkbookPath, *out); err != nil {
		logger.Error("cannot write output workbook", "path", *out, "error", err)
		os.Exit(1)
	}

	for _, kind := range constants.AllKinds {
		res, ok := outcome.Kinds[kind]
		if !ok {
			continue
		}
		if res.Succeeded {
			fmt.Printf("  %-8s ok\n", kind)
		} else {
			fmt.Printf("  %-8s FAILED: %v\n", kind, res.Err)
		}
	}
	fmt.Printf("Workbook written to %s (%d sheets", *out, len(outcome.Sheets))
	if outcome.DroppedRows > 0 {
		fmt.Printf(", %d malformed table rows dropped", outcome.DroppedRows)
	}
	fmt.Println(")")
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
