package export

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/omarvelez-pr/quote-verifier/constants"
	"github.com/omarvelez-pr/quote-verifier/internal/report"
)

func writeReport(t *testing.T, dir, name string, r *report.Report) {
	t.Helper()
	data, err := r.MarshalIndentedJSON()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func TestExportSummaryXLSX(t *testing.T) {
	dir := t.TempDir()
	yes := true

	writeReport(t, dir, "123456.json", &report.Report{
		Archivo:           "123456_OCR.pdf",
		TotalPaginas:      6,
		ResumenValidacion: constants.VerdictApproved,
		DocumentosDetectados: map[string]report.Document{
			constants.DocCartaSolicitud: {Paginas: []int{1}, Datos: map[string]string{}},
			constants.DocEstudioTitulo:  {Paginas: []int{2}, Datos: map[string]string{}},
		},
		Validaciones: report.Validations{
			NombreConsistente:          &yes,
			NumeroSolicitudConsistente: &yes,
			FirmasCompletas:            &yes,
		},
		Alertas: []string{},
	})
	writeReport(t, dir, "654321.json", &report.Report{
		Archivo:              "654321_OCR.pdf",
		TotalPaginas:         2,
		ResumenValidacion:    constants.VerdictNeedsReview,
		DocumentosDetectados: map[string]report.Document{},
		Alertas:              []string{"alerta uno", "alerta dos"},
	})
	// Garbage files are skipped, not fatal.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{nope"), 0o644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	data, err := NewService(dir, logger).ExportSummaryXLSX()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Paquetes")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Archivo", rows[0][0])
	assert.Equal(t, "123456_OCR.pdf", rows[1][0])
	assert.Equal(t, "APPROVED", rows[1][1])
	assert.Equal(t, "6", rows[1][2])
	assert.Equal(t, constants.DocCartaSolicitud+", "+constants.DocEstudioTitulo, rows[1][3])
	assert.Equal(t, "sí", rows[1][4])

	assert.Equal(t, "654321_OCR.pdf", rows[2][0])
	assert.Equal(t, "indeterminado", rows[2][4])
	assert.Equal(t, "alerta uno | alerta dos", rows[2][7])
}

func TestExportSummaryXLSXEmptyDir(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	data, err := NewService(t.TempDir(), logger).ExportSummaryXLSX()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Paquetes")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
