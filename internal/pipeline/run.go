package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/omarvelez-pr/quote-verifier/constants"
)

// Summary counts package outcomes for one pipeline run.
type Summary struct {
	OK      int
	Errors  int
	Ignored int
	Limit   int
}

// Run executes one full pass: folder bootstrap, orphan cleanup, grouping and
// sequential package processing. It assumes no concurrent run shares the
// folder tree.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	runID := uuid.NewString()
	log := p.logger.With("run_id", runID)
	start := time.Now()

	if err := p.ensureFolders(); err != nil {
		return Summary{}, err
	}
	p.cleanOrphanTemps(log)

	pdfs, err := p.scanInbox()
	if err != nil {
		return Summary{}, err
	}
	sort.Strings(pdfs)
	if len(pdfs) == 0 {
		log.Info("inbox empty, nothing to do", "inbox", p.cfg.Folders.Inbox)
		return Summary{}, nil
	}

	groups := GroupFiles(pdfs)
	log.Info("inbox grouped", "pdfs", len(pdfs), "groups", len(groups))

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sum Summary
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		switch p.ProcessGroup(ctx, key, groups[key]) {
		case constants.OutcomeOK:
			sum.OK++
		case constants.OutcomeError:
			sum.Errors++
		case constants.OutcomeIgnored:
			sum.Ignored++
		case constants.OutcomeLimit:
			sum.Limit++
		}
	}

	log.Info("run complete",
		"ok", sum.OK,
		"errors", sum.Errors,
		"ignored", sum.Ignored,
		"limit", sum.Limit,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return sum, nil
}

// Bootstrap creates the folder tree and sweeps any loose PDFs sitting at the
// base directory into the inbox, so a fresh drop location becomes a working
// tree in one step.
func (p *Pipeline) Bootstrap(baseDir string) error {
	if err := p.ensureFolders(); err != nil {
		return err
	}
	loose, err := filepath.Glob(filepath.Join(baseDir, "*.pdf"))
	if err != nil {
		return err
	}
	for _, src := range loose {
		dst := filepath.Join(p.cfg.Folders.Inbox, filepath.Base(src))
		if err := moveFile(src, dst); err != nil {
			return err
		}
		p.logger.Info("swept loose pdf into inbox", "file", filepath.Base(src))
	}
	return nil
}

// scanInbox lists the inbox files with an allowed extension. Scanners name
// files inconsistently, so the extension check is case-insensitive.
func (p *Pipeline) scanInbox() ([]string, error) {
	entries, err := os.ReadDir(p.cfg.Folders.Inbox)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := constants.NormalizeExt(filepath.Ext(e.Name()))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			continue
		}
		paths = append(paths, filepath.Join(p.cfg.Folders.Inbox, e.Name()))
	}
	return paths, nil
}

func (p *Pipeline) ensureFolders() error {
	folders := []string{
		p.cfg.Folders.Inbox,
		p.cfg.Folders.OCRWork,
		p.cfg.Folders.DoneJSON,
		p.cfg.Folders.DoneTXT,
		p.cfg.Folders.Quarantine,
		p.cfg.Folders.History,
		p.cfg.Folders.Logs,
	}
	for _, dir := range folders {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// cleanOrphanTemps removes stale .tmp files a crashed run left behind in the
// report folders. Young temps are left alone in case a writer is mid-flight.
func (p *Pipeline) cleanOrphanTemps(log *slog.Logger) {
	cutoff := time.Now().Add(-p.cfg.Pipeline.OrphanTmp)
	for _, dir := range []string{p.cfg.Folders.DoneJSON, p.cfg.Folders.DoneTXT} {
		temps, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
		for _, tmp := range temps {
			info, err := os.Stat(tmp)
			if err != nil || info.ModTime().After(cutoff) {
				continue
			}
			if err := os.Remove(tmp); err == nil {
				log.Info("removed orphan temp file", "file", tmp)
			}
		}
	}
}
