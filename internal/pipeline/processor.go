package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/omarvelez-pr/quote-verifier/constants"
	"github.com/omarvelez-pr/quote-verifier/internal/classify"
	"github.com/omarvelez-pr/quote-verifier/internal/common"
	"github.com/omarvelez-pr/quote-verifier/internal/fields"
	"github.com/omarvelez-pr/quote-verifier/internal/pdf"
	"github.com/omarvelez-pr/quote-verifier/internal/proclog"
	"github.com/omarvelez-pr/quote-verifier/internal/registry"
	"github.com/omarvelez-pr/quote-verifier/internal/report"
	"github.com/omarvelez-pr/quote-verifier/internal/signature"
	"github.com/omarvelez-pr/quote-verifier/internal/validate"
)

// Recognizer is the OCR collaborator: it produces a searchable PDF from a
// scanned one and exposes the recognized per-page text.
type Recognizer interface {
	Recognize(ctx context.Context, in, out string) error
	PageTexts(ctx context.Context, path string) ([]string, error)
}

// Analyzer turns one recognized PDF into a full report. It carries no folder
// state, so the one-shot verifier command can use it directly.
type Analyzer struct {
	recognizer Recognizer
	classifier *classify.Classifier
	detector   *signature.Detector
	specs      []registry.Spec
}

func NewAnalyzer(recognizer Recognizer, detector *signature.Detector) *Analyzer {
	specs := registry.Default()
	return &Analyzer{
		recognizer: recognizer,
		classifier: classify.New(specs),
		detector:   detector,
		specs:      specs,
	}
}

// Pipeline drives packages through merge, recognition, extraction and
// archival. One package at a time; the filesystem is the only durable state
// besides the processing log.
type Pipeline struct {
	*Analyzer

	cfg    *common.Config
	log    proclog.Log
	merger pdf.Merger
	logger *slog.Logger
}

func New(cfg *common.Config, log proclog.Log, merger pdf.Merger, recognizer Recognizer, detector *signature.Detector, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		Analyzer: NewAnalyzer(recognizer, detector),
		cfg:      cfg,
		log:      log,
		merger:   merger,
		logger:   logger,
	}
}

// ProcessGroup runs one package through the full state machine and returns
// the recorded outcome. Source files are only removed after the report has
// been renamed into place and the recognized PDF archived.
func (p *Pipeline) ProcessGroup(ctx context.Context, groupKey string, members []string) constants.Outcome {
	log := p.logger.With("group", groupKey, "files", len(members))

	mergedPath := filepath.Join(p.cfg.Folders.OCRWork, groupKey+"_merged.pdf")
	ocrPath := filepath.Join(p.cfg.Folders.OCRWork, groupKey+"_OCR.pdf")
	jsonPath := filepath.Join(p.cfg.Folders.DoneJSON, groupKey+".json")
	txtPath := filepath.Join(p.cfg.Folders.DoneTXT, groupKey+".txt")
	historyPath := filepath.Join(p.cfg.Folders.History, groupKey+".pdf")

	// A finished report makes the whole package a no-op; never recompute.
	if _, err := os.Stat(jsonPath); err == nil {
		log.Info("report already exists, skipping package", "state", constants.StatePending)
		return constants.OutcomeIgnored
	}

	// Error ceiling check happens before any stage runs.
	errCount, err := p.log.CountErrors(groupKey)
	if err != nil {
		log.Error("cannot read processing log", "error", err)
		return constants.OutcomeError
	}
	if errCount >= p.cfg.Pipeline.MaxErrors {
		log.Warn("error limit reached, quarantining package",
			"errors", errCount, "state", constants.StateQuarantined)
		for _, m := range members {
			dst := filepath.Join(p.cfg.Folders.Quarantine, filepath.Base(m))
			if err := moveFile(m, dst); err != nil {
				log.Error("failed to quarantine member", "file", m, "error", err)
			}
		}
		p.appendLog(groupKey, constants.StageMoved, constants.OutcomeLimit,
			fmt.Sprintf("%d errores acumulados", errCount), errCount)
		return constants.OutcomeLimit
	}
	attempt := errCount + 1

	fail := func(stage constants.Stage, err error) constants.Outcome {
		log.Error("stage failed", "stage", stage, "state", constants.StateFailed, "error", err)
		p.appendLog(groupKey, stage, constants.OutcomeError, err.Error(), attempt)
		os.Remove(mergedPath)
		return constants.OutcomeError
	}

	log.Info("processing package", "state", constants.StateMerging)
	if err := p.merger.Merge(ctx, members, mergedPath); err != nil {
		return fail(constants.StageMerge, err)
	}

	if p.cfg.Pipeline.SkipOCR {
		if _, err := os.Stat(ocrPath); err != nil {
			// Without a prior recognized PDF the merged copy has to stand
			// in; native-text packages still extract fine.
			if err := moveFile(mergedPath, ocrPath); err != nil {
				return fail(constants.StageOCR, err)
			}
		}
	} else {
		log.Info("recognizing package", "state", constants.StateOCRing)
		if err := p.recognizer.Recognize(ctx, mergedPath, ocrPath); err != nil {
			return fail(constants.StageOCR, err)
		}
	}

	log.Info("extracting package", "state", constants.StateExtracting)
	rep, err := p.BuildReport(ctx, ocrPath)
	if err != nil {
		return fail(constants.StageReport, err)
	}
	if err := rep.WriteFiles(jsonPath, txtPath); err != nil {
		return fail(constants.StageReport, err)
	}
	log.Info("report written", "state", constants.StateValidated, "verdict", rep.ResumenValidacion)

	if err := moveFile(ocrPath, historyPath); err != nil {
		return fail(constants.StageArchive, err)
	}

	for _, m := range members {
		if err := os.Remove(m); err != nil {
			log.Warn("failed to remove inbox member", "file", m, "error", err)
		}
	}
	if err := os.Remove(mergedPath); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to remove merged temp", "file", mergedPath, "error", err)
	}

	p.appendLog(groupKey, constants.StageDone, constants.OutcomeOK,
		fmt.Sprintf("%d PDFs procesados", len(members)), attempt)
	log.Info("package complete", "state", constants.StateArchived)
	return constants.OutcomeOK
}

// BuildReport classifies and extracts a recognized PDF into a full report.
func (a *Analyzer) BuildReport(ctx context.Context, ocrPath string) (*report.Report, error) {
	pageTexts, err := a.recognizer.PageTexts(ctx, ocrPath)
	if err != nil {
		return nil, err
	}
	if len(pageTexts) == 0 {
		return nil, fmt.Errorf("no pages extracted from %s", ocrPath)
	}

	pages := a.classifier.ClassifyPackage(pageTexts)
	docs := make(map[string]report.Document, len(pages.ByType))

	for _, typeName := range pages.TypesInOrder() {
		indices := pages.ByType[typeName]
		spec, _ := registry.ByName(a.specs, typeName)

		parts := make([]string, 0, len(indices))
		for _, idx := range indices {
			parts = append(parts, pageTexts[idx])
		}
		combined := strings.Join(parts, "\n")

		var contText string
		if spec.IncludeContinuations {
			contText = pages.Continuations[typeName]
		}

		doc := report.Document{
			Paginas: oneIndexed(indices),
			Datos:   fields.Extract(combined, contText, spec),
		}
		if spec.RequiresSignature {
			res := a.detector.Detect(ctx, combined, ocrPath, indices[0])
			doc.Firma = &res
		}
		docs[typeName] = doc
	}

	val, alerts := validate.Validate(docs)
	return report.Build(filepath.Base(ocrPath), docs, len(pageTexts), val, alerts), nil
}

func (p *Pipeline) appendLog(groupKey string, stage constants.Stage, outcome constants.Outcome, msg string, attempt int) {
	entry := proclog.Entry{
		PackageID: groupKey,
		Stage:     stage,
		Outcome:   outcome,
		Timestamp: time.Now(),
		Message:   msg,
		Attempt:   attempt,
	}
	if err := p.log.Append(entry); err != nil {
		p.logger.Error("failed to append processing log", "group", groupKey, "error", err)
	}
}

func oneIndexed(indices []int) []int {
	out := make([]int, len(indices))
	for i, v := range indices {
		out[i] = v + 1
	}
	return out
}

// moveFile renames across the tree, falling back to copy+remove when the
// folders sit on different filesystems.
func moveFile(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		if err := os.Remove(dst); err != nil {
			return err
		}
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, in, 0o644); err != nil {
		return err
	}
	return os.Remove(src)
}
