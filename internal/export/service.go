// Package export turns finished package reports into an XLSX summary for
// reviewers who work from spreadsheets rather than the JSON.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/omarvelez-pr/quote-verifier/internal/report"
)

// Service reads done-JSON reports and produces XLSX bytes.
type Service struct {
	doneJSONDir string
	logger      *slog.Logger
}

func NewService(doneJSONDir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{doneJSONDir: doneJSONDir, logger: logger}
}

// ExportSummaryXLSX returns a workbook with one row per finished package.
func (s *Service) ExportSummaryXLSX() ([]byte, error) {
	start := time.Now()

	paths, err := filepath.Glob(filepath.Join(s.doneJSONDir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	f := excelize.NewFile()
	const sheet = "Paquetes"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Archivo",
		"Veredicto",
		"Páginas",
		"Documentos",
		"Nombre Consistente",
		"Número Consistente",
		"Firmas Completas",
		"Alertas",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	loaded := 0
	for _, path := range paths {
		rep, err := loadReport(path)
		if err != nil {
			s.logger.Warn("skipping unreadable report", "path", path, "error", err)
			continue
		}
		loaded++

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		types := make([]string, 0, len(rep.DocumentosDetectados))
		for t := range rep.DocumentosDetectados {
			types = append(types, t)
		}
		sort.Strings(types)

		write(1, rep.Archivo)
		write(2, string(rep.ResumenValidacion))
		write(3, rep.TotalPaginas)
		write(4, strings.Join(types, ", "))
		write(5, triState(rep.Validaciones.NombreConsistente))
		write(6, triState(rep.Validaciones.NumeroSolicitudConsistente))
		write(7, triState(rep.Validaciones.FirmasCompletas))
		write(8, strings.Join(rep.Alertas, " | "))
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 36)
	_ = f.SetColWidth(sheet, "B", "B", 20)
	_ = f.SetColWidth(sheet, "C", "C", 10)
	_ = f.SetColWidth(sheet, "D", "D", 48)
	_ = f.SetColWidth(sheet, "E", "G", 18)
	_ = f.SetColWidth(sheet, "H", "H", 72)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"reports", loaded,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func loadReport(path string) (*report.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &rep, nil
}

func triState(b *bool) string {
	switch {
	case b == nil:
		return "indeterminado"
	case *b:
		return "sí"
	default:
		return "no"
	}
}
