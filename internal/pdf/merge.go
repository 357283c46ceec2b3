package pdf

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Merger combines the page files of one package into a single working PDF.
type Merger interface {
	Merge(ctx context.Context, inputs []string, output string) error
	PageCount(path string) (int, error)
}

type pdfcpuMerger struct {
	conf *model.Configuration
}

// NewMerger returns a Merger backed by pdfcpu with relaxed validation, since
// scanned uploads routinely carry minor structural defects.
func NewMerger() Merger {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &pdfcpuMerger{conf: conf}
}

func (m *pdfcpuMerger) Merge(ctx context.Context, inputs []string, output string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("merge: no input files")
	}
	if len(inputs) == 1 {
		// A single-page package still gets its own working copy so the
		// inbox file is never touched by later stages.
		return copyFile(inputs[0], output)
	}
	if err := api.MergeCreateFile(inputs, output, false, m.conf); err != nil {
		return fmt.Errorf("merge %d files into %s: %w", len(inputs), output, err)
	}
	return nil
}

func (m *pdfcpuMerger) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("page count of %s: %w", path, err)
	}
	return n, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
