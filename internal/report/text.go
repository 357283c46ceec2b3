package report

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// PlainText renders the human-readable mirror of the report. Section order is
// fixed; the file is meant for manual review, not reparsing.
func (r *Report) PlainText() string {
	return r.plainTextAt(time.Now())
}

func (r *Report) plainTextAt(now time.Time) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString("REPORTE DE VERIFICACIÓN DE PRÉSTAMOS\n")
	fmt.Fprintf(&b, "Fecha: %s\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString(rule + "\n\n")

	fmt.Fprintf(&b, "Archivo: %s\n", r.Archivo)
	fmt.Fprintf(&b, "Estado: %s\n", r.ResumenValidacion)
	fmt.Fprintf(&b, "Páginas: %d\n\n", r.TotalPaginas)

	b.WriteString("DOCUMENTOS DETECTADOS:\n")
	for _, tipo := range sortedKeys(r.DocumentosDetectados) {
		doc := r.DocumentosDetectados[tipo]
		fmt.Fprintf(&b, "  %s (Páginas %v):\n", tipo, doc.Paginas)
		for _, campo := range sortedStringKeys(doc.Datos) {
			fmt.Fprintf(&b, "    %s: %s\n", campo, doc.Datos[campo])
		}
		if doc.Firma != nil {
			fmt.Fprintf(&b, "    firma: %s\n", formatFirma(doc.Firma.Kind, doc.Firma.Detail, doc.Firma.Present))
		}
		b.WriteString("\n")
	}

	b.WriteString("VALIDACIONES:\n")
	fmt.Fprintf(&b, "  nombre_consistente: %s\n", triState(r.Validaciones.NombreConsistente))
	fmt.Fprintf(&b, "  numero_solicitud_consistente: %s\n", triState(r.Validaciones.NumeroSolicitudConsistente))
	fmt.Fprintf(&b, "  firmas_completas: %s\n", triState(r.Validaciones.FirmasCompletas))

	if len(r.Alertas) > 0 {
		b.WriteString("\nALERTAS:\n")
		for _, a := range r.Alertas {
			fmt.Fprintf(&b, "  ! %s\n", a)
		}
	}

	b.WriteString("\n" + rule + "\n")
	return b.String()
}

func formatFirma(kind, detail string, present *bool) string {
	s := fmt.Sprintf("%s [presente: %s]", kind, triState(present))
	if detail != "" {
		s += " " + detail
	}
	return s
}

func triState(b *bool) string {
	switch {
	case b == nil:
		return "indeterminado"
	case *b:
		return "true"
	default:
		return "false"
	}
}

func sortedKeys(m map[string]Document) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedStringKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
