package validate

import (
	"fmt"
	"strings"

	"github.com/omarvelez-pr/quote-verifier/constants"
	"github.com/omarvelez-pr/quote-verifier/internal/registry"
	"github.com/omarvelez-pr/quote-verifier/internal/report"
)

// nameTokenOverlap is the fraction of the shorter name's tokens that must
// appear in the longer name for the two to count as the same person. OCR
// drops middle names and second surnames often enough that exact equality
// rejects valid packages.
const nameTokenOverlap = 0.70

// requestNumberSources lists the document types whose extracted request
// number participates in the consistency check, when present.
var requestNumberSources = []string{
	constants.DocAutorizacionSeguros,
	constants.DocDivulgacionesTitulo,
	constants.DocDivulgacionesProductos,
}

// signatureRequired returns the document types whose registry spec demands a
// detected signature for the package to pass the completeness check.
func signatureRequired() []string {
	var types []string
	for _, s := range registry.Default() {
		if s.RequiresSignature {
			types = append(types, s.Name)
		}
	}
	return types
}

// Validate runs the cross-document checks over the detected documents and
// returns the tri-state results plus any alerts raised along the way.
func Validate(docs map[string]report.Document) (report.Validations, []report.Alert) {
	var val report.Validations
	var alerts []report.Alert

	val.NombreConsistente, alerts = checkNames(docs, alerts)
	val.NumeroSolicitudConsistente, alerts = checkRequestNumbers(docs, alerts)
	val.FirmasCompletas, alerts = checkSignatures(docs, alerts)

	return val, alerts
}

// checkNames compares the applicant name from the request letter against the
// one from the insurance authorization. With only one name found the check
// passes trivially; with none it stays indeterminate.
func checkNames(docs map[string]report.Document, alerts []report.Alert) (*bool, []report.Alert) {
	var names []string
	for _, tipo := range []string{constants.DocCartaSolicitud, constants.DocAutorizacionSeguros} {
		doc, ok := docs[tipo]
		if !ok {
			continue
		}
		if n := doc.Datos["nombre_solicitante"]; n != "" && n != constants.NotFound {
			names = append(names, n)
		}
	}

	switch len(names) {
	case 0:
		alerts = append(alerts, report.Alert{
			Text: "No se pudo verificar consistencia de nombres (no se extrajo ningún nombre)",
		})
		return nil, alerts
	case 1:
		return boolPtr(true), alerts
	}

	if namesMatch(names[0], names[1]) {
		return boolPtr(true), alerts
	}
	alerts = append(alerts, report.Alert{
		Text: fmt.Sprintf("Nombres inconsistentes entre documentos: '%s' vs '%s'", names[0], names[1]),
	})
	return boolPtr(false), alerts
}

// namesMatch reports whether enough of the shorter name's tokens appear in
// the longer one. Comparison is case-insensitive on whitespace tokens.
func namesMatch(a, b string) bool {
	ta := strings.Fields(strings.ToUpper(a))
	tb := strings.Fields(strings.ToUpper(b))
	if len(ta) == 0 || len(tb) == 0 {
		return false
	}
	shorter, longer := ta, tb
	if len(tb) < len(ta) {
		shorter, longer = tb, ta
	}
	set := make(map[string]struct{}, len(longer))
	for _, t := range longer {
		set[t] = struct{}{}
	}
	matched := 0
	for _, t := range shorter {
		if _, ok := set[t]; ok {
			matched++
		}
	}
	return float64(matched)/float64(len(shorter)) >= nameTokenOverlap
}

// checkRequestNumbers verifies that every document that extracted a request
// number extracted the same one.
func checkRequestNumbers(docs map[string]report.Document, alerts []report.Alert) (*bool, []report.Alert) {
	var numbers []string
	for _, tipo := range requestNumberSources {
		doc, ok := docs[tipo]
		if !ok {
			continue
		}
		if n := doc.Datos["num_solicitud"]; n != "" && n != constants.NotFound {
			numbers = append(numbers, n)
		}
	}

	if len(numbers) == 0 {
		alerts = append(alerts, report.Alert{
			Text: "No se pudo verificar el número de solicitud (no se extrajo en ningún documento)",
		})
		return nil, alerts
	}

	first := numbers[0]
	for _, n := range numbers[1:] {
		if n != first {
			alerts = append(alerts, report.Alert{
				Text: fmt.Sprintf("Números de solicitud inconsistentes: '%s' vs '%s'", first, n),
			})
			return boolPtr(false), alerts
		}
	}
	return boolPtr(true), alerts
}

// checkSignatures requires a positively detected signature on every document
// type that demands one. A missing or absent signature is a red flag. If any
// required document resolved to an indeterminate visual check, the overall
// result is indeterminate rather than false.
func checkSignatures(docs map[string]report.Document, alerts []report.Alert) (*bool, []report.Alert) {
	indeterminate := false
	complete := true

	for _, tipo := range signatureRequired() {
		doc, ok := docs[tipo]
		if !ok {
			// Absence of the document itself is reported by the
			// detection stage, not here.
			continue
		}
		switch {
		case doc.Firma == nil || doc.Firma.Present == nil:
			indeterminate = true
			alerts = append(alerts, report.Alert{
				Text: fmt.Sprintf("Firma indeterminada en %s (requiere revisión manual)", tipo),
			})
		case !*doc.Firma.Present:
			complete = false
			alerts = append(alerts, report.Alert{
				Text:    fmt.Sprintf("Falta firma en %s", tipo),
				RedFlag: true,
			})
		}
	}

	if !complete {
		return boolPtr(false), alerts
	}
	if indeterminate {
		return nil, alerts
	}
	return boolPtr(true), alerts
}

func boolPtr(b bool) *bool { return &b }
