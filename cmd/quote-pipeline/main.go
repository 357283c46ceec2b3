package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/omarvelez-pr/quote-verifier/internal/common"
	"github.com/omarvelez-pr/quote-verifier/internal/export"
	"github.com/omarvelez-pr/quote-verifier/internal/ocr"
	"github.com/omarvelez-pr/quote-verifier/internal/pdf"
	"github.com/omarvelez-pr/quote-verifier/internal/pipeline"
	"github.com/omarvelez-pr/quote-verifier/internal/proclog"
	"github.com/omarvelez-pr/quote-verifier/internal/signature"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		baseDir    = flag.String("base-dir", ".", "root of the pipeline folder tree")
		initOnly   = flag.Bool("init", false, "create the folder tree, sweep loose PDFs into the inbox, and exit")
		skipOCR    = flag.Bool("skip-ocr", false, "reuse recognized PDFs already present in the working folder")
		exportXLSX = flag.String("export-xlsx", "", "write an XLSX summary of finished reports to this path and exit")
		logLevel   = flag.String("log-level", "info", "log level: debug|info|warn|error")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(*logLevel),
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig(*baseDir)
	cfg.Pipeline.SkipOCR = *skipOCR
	if err := cfg.Validate(); err != nil {
		printError("Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if *exportXLSX != "" {
		svc := export.NewService(cfg.Folders.DoneJSON, logger)
		data, err := svc.ExportSummaryXLSX()
		if err != nil {
			logger.Error("export failed", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*exportXLSX, data, 0o644); err != nil {
			logger.Error("failed to write xlsx", "path", *exportXLSX, "error", err)
			os.Exit(1)
		}
		logger.Info("summary exported", "path", *exportXLSX)
		return
	}

	ctx := context.Background()

	procLog, err := proclog.Open(cfg.Log.Backend, filepath.Join(cfg.Folders.Logs, cfg.Log.FileName))
	if err != nil {
		logger.Error("cannot open processing log", "error", err)
		os.Exit(1)
	}
	defer procLog.Close()

	merger := pdf.NewMerger()
	recognizer := ocr.NewRecognizer(ocr.Config{
		Pdftotext: cfg.OCR.Pdftotext,
		Pdftoppm:  cfg.OCR.Pdftoppm,
		Tesseract: cfg.OCR.Tesseract,
		Languages: cfg.OCR.Languages,
		DPI:       cfg.OCR.DPI,
	}, merger, logger)
	detector := &signature.Detector{}

	p := pipeline.New(cfg, procLog, merger, recognizer, detector, logger)

	if *initOnly {
		if err := p.Bootstrap(*baseDir); err != nil {
			logger.Error("bootstrap failed", "error", err)
			os.Exit(1)
		}
		logger.Info("folder tree ready", "base", *baseDir)
		return
	}

	if !cfg.Pipeline.SkipOCR {
		if err := recognizer.Probe(); err != nil {
			logger.Error("missing OCR binaries", "error", err)
			os.Exit(1)
		}
	}

	sum, err := p.Run(ctx)
	if err != nil {
		logger.Error("pipeline run failed", "error", err)
		os.Exit(1)
	}
	if sum.Errors > 0 {
		os.Exit(2)
	}
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
