package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/constants"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/common"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/excel"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/extract"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/llm/openai"
)

func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

// rfp-extract runs a single extraction against an already-converted markdown
// document, for prompt debugging without the whole pipeline.
func main() {
	var (
		file     = flag.String("file", "", "parsed RFP markdown file (required)")
		kindFlag = flag.String("kind", "", "extraction kind: BOQ, PQ, TQ, SUMMARY or PAYMENT (required)")
		out      = flag.String("out", "", "output markdown path (defaults to stdout)")
		xlsx     = flag.String("xlsx", "", "also project the extraction to this XLSX path")
	)
	flag.Parse()

	if *file == "" || *kindFlag == "" {
		printError("Error: --file and --kind are required\n")
		os.Exit(1)
	}
	kind := constants.ExtractionKind(strings.ToUpper(*kindFlag))
	spec, ok := extract.SpecFor(kind)
	if !ok {
		printError("Error: unknown kind %q\n", *kindFlag)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	document, err := os.ReadFile(*file)
	if err != nil {
		logger.Error("cannot read input", "file", *file, "error", err)
		os.Exit(1)
	}

	llmClient := openai.NewClient(openai.Config{
		Endpoint:            cfg.LLM.Endpoint,
		Deployment:          cfg.LLM.Deployment,
		APIVersion:          cfg.LLM.APIVersion,
		APIKey:              cfg.LLM.APIKey,
		Timeout:             cfg.LLM.Timeout,
		MaxCompletionTokens: cfg.LLM.MaxCompletionTokens,
	}, logger)

	sink := extract.NewMapSink()
	result := extract.NewTask(spec, llmClient, logger).Run(context.Background(), string(document), sink)
	if !result.Succeeded {
		logger.Error("extraction failed", "kind", kind, "error", result.Err)
		os.Exit(1)
	}

	if *out == "" {
		fmt.Println(result.Content)
	} else if err := os.WriteFile(*out, []byte(result.Content), 0o644); err != nil {
		logger.Error("cannot write output", "path", *out, "error", err)
		os.Exit(1)
	}

	if *xlsx != "" {
		if _, err := excel.NewService(logger, 1).ProjectToFile(context.Background(), kind, result.Content, *xlsx); err != nil {
			logger.Error("projection failed", "path", *xlsx, "error", err)
			os.Exit(1)
		}
	}
}
