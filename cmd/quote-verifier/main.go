package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/omarvelez-pr/quote-verifier/constants"
	"github.com/omarvelez-pr/quote-verifier/internal/ocr"
	"github.com/omarvelez-pr/quote-verifier/internal/pdf"
	"github.com/omarvelez-pr/quote-verifier/internal/pipeline"
	"github.com/omarvelez-pr/quote-verifier/internal/signature"
)

// quote-verifier analyzes a single already-recognized PDF and writes its
// report next to it, without touching the pipeline folder tree.
func main() {
	var (
		input  = flag.String("input", "", "recognized (searchable) PDF to verify (required)")
		outDir = flag.String("output-dir", "", "directory for the report files (defaults to the input's directory)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: --input is required")
		flag.Usage()
		os.Exit(1)
	}
	if *outDir == "" {
		*outDir = filepath.Dir(*input)
	}

	recognizer := ocr.NewRecognizer(ocr.Config{}, pdf.NewMerger(), logger)
	analyzer := pipeline.NewAnalyzer(recognizer, &signature.Detector{})

	rep, err := analyzer.BuildReport(context.Background(), *input)
	if err != nil {
		logger.Error("verification failed", "input", *input, "error", err)
		os.Exit(1)
	}

	base := strings.TrimSuffix(filepath.Base(*input), filepath.Ext(*input))
	jsonPath := filepath.Join(*outDir, base+"_resultado.json")
	txtPath := filepath.Join(*outDir, base+"_resultado.txt")
	if err := rep.WriteFiles(jsonPath, txtPath); err != nil {
		logger.Error("failed to write report", "error", err)
		os.Exit(1)
	}

	logger.Info("verification complete",
		"input", *input,
		"verdict", rep.ResumenValidacion,
		"json", jsonPath,
	)
	if rep.ResumenValidacion != constants.VerdictApproved {
		os.Exit(2)
	}
}
