package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/omarvelez-pr/quote-verifier/internal/pdf"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Languages string // tesseract -l value, default "spa+eng"
	DPI       int    // rasterization DPI for scanned pages, default 300
}

// Recognizer turns scanned package PDFs into searchable ones and exposes the
// recognized per-page text.
type Recognizer struct {
	cfg    Config
	runner Runner
	merger pdf.Merger
	logger *slog.Logger
}

func NewRecognizer(cfg Config, merger pdf.Merger, logger *slog.Logger) *Recognizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Languages == "" {
		cfg.Languages = "spa+eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Recognizer{cfg: cfg, runner: execRunner{}, merger: merger, logger: logger}
}

// Probe verifies the external binaries are reachable so a run fails before
// any package is touched rather than mid-pipeline.
func (r *Recognizer) Probe() error {
	for _, bin := range []string{r.cfg.Pdftoppm, r.cfg.Pdftotext, r.cfg.Tesseract} {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("required binary %q not found: %w", bin, err)
		}
	}
	return nil
}

// Recognize rasterizes every page of in, OCRs each page into a single-page
// searchable PDF and merges them into out. The input file is left untouched.
func (r *Recognizer) Recognize(ctx context.Context, in, out string) error {
	start := time.Now()

	tmpDir, err := os.MkdirTemp("", "qv-ocr-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			r.logger.Warn("failed to remove ocr temp dir", "dir", tmpDir, "error", rmErr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := r.runner.Run(ctx, r.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", r.cfg.DPI), "-png", in, prefix)
	if err != nil {
		return fmt.Errorf("pdftoppm on %s: %w (%s)", in, err, truncate(string(errb), 512))
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	images, _ := filepath.Glob(prefix + "-*.png")
	sortByPageNumber(images)
	if len(images) == 0 {
		return fmt.Errorf("pdftoppm produced no images for %s", in)
	}

	pagePDFs := make([]string, 0, len(images))
	for i, img := range images {
		base := filepath.Join(tmpDir, fmt.Sprintf("ocr-%04d", i+1))
		// tesseract <img> <base> -l <langs> pdf
		if _, errb, err := r.runner.Run(ctx, r.cfg.Tesseract, img, base, "-l", r.cfg.Languages, "pdf"); err != nil {
			return fmt.Errorf("tesseract on page %d of %s: %w (%s)", i+1, in, err, truncate(string(errb), 512))
		}
		pagePDFs = append(pagePDFs, base+".pdf")
	}

	if err := r.merger.Merge(ctx, pagePDFs, out); err != nil {
		return fmt.Errorf("merging ocr pages of %s: %w", in, err)
	}

	r.logger.Info("ocr complete",
		"input", in,
		"pages", len(images),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// PageTexts extracts the embedded text layer of a searchable PDF, one string
// per page. pdftotext separates pages with a form feed.
func (r *Recognizer) PageTexts(ctx context.Context, path string) ([]string, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := r.runner.Run(ctx, r.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext on %s: %w (%s)", path, err, truncate(string(errb), 512))
	}
	pages := strings.Split(string(out), "\f")
	// pdftotext emits a trailing \f after the last page.
	if n := len(pages); n > 0 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	return pages, nil
}

// sortByPageNumber orders pdftoppm outputs numerically. Lexical order breaks
// past page 9 when pdftoppm does not zero-pad ("page-10.png" < "page-2.png").
func sortByPageNumber(files []string) {
	pageNum := func(f string) int {
		base := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		idx := strings.LastIndex(base, "-")
		if idx < 0 {
			return 0
		}
		n := 0
		for _, c := range base[idx+1:] {
			if c < '0' || c > '9' {
				return 0
			}
			n = n*10 + int(c-'0')
		}
		return n
	}
	sort.Slice(files, func(i, j int) bool { return pageNum(files[i]) < pageNum(files[j]) })
}
