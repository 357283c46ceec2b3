// Package signature detects signature presence on recognized page text, with
// an optional visual collaborator for handwritten strokes.
package signature

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Kinds reported by Detect.
const (
	KindTimestamp         = "Firma Electronica (Timestamp)"
	KindElectronic        = "Firma Electronica"
	KindXMark             = "Firma con Marca X"
	KindHandwritten       = "Firma Manuscrita"
	KindMaybeHandwritten  = "Posible Firma Manuscrita"
	KindEmptyArea         = "Area de firma vacia"
	KindIndeterminateArea = "Area de firma detectada"
	KindNotFound          = "No encontrada"
)

// Result is the outcome of signature detection for one document.
// Present is nil when presence could not be verified (signature area found
// but no visual collaborator available).
type Result struct {
	Present *bool  `json:"presente"`
	Kind    string `json:"tipo"`
	Detail  string `json:"detalle,omitempty"`
}

// Keywords marking a signature area, any document type.
var areaKeywords = []string{
	"Firma del Solicitante",
	"Firma del Cliente",
	"Firma del Deudor",
	"Firma del Comprador",
	"Firma del Vendedor",
	"Firma del Propietario",
	"Firma del Representante",
	"Firma",
	"Signature",
	"Signed",
	"Firmado por",
	"Firmado",
}

// Keywords preceding an electronic signature.
var certKeywords = []string{
	"Certifico",
	"Certify",
	"Declaro",
	"Declare",
	"Acepto",
	"Accept",
	"Autorizo",
	"Authorize",
	"Confirmo",
	"Confirm",
}

// Words that disqualify a name candidate: they belong to the form, not a person.
var nameDenylist = []string{
	"DOCUMENTO", "SEGURO", "TITULO", "BANCO", "NUMERO", "FECHA", "PAGINA",
	"DIVULGACIONES", "PRESENTADAS",
}

var (
	spaceRun = regexp.MustCompile(`\s+`)

	// "JUAN PEREZ GARCIA 10/10/2025 7:29 AM PDT"
	timestampWithName = regexp.MustCompile(`(?i)([A-ZÁÉÍÓÚÑ][A-Za-záéíóúñÁÉÍÓÚÑ\s]{3,40}?)\s*(\d{1,2}/\d{1,2}/\d{4})\s+(\d{1,2}:\d{2}\s*(?:AM|PM)?(?:\s*(?:PDT|PST|EST|CST|MST|UTC)?)?)`)

	bareTimestamp = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}\s+\d{1,2}:\d{2}\s*(?:AM|PM)?(?:\s*(?:PDT|PST|EST|CST|MST|UTC)?)?`)

	xBeforeKeyword = regexp.MustCompile(`[xX]{1,3}\s*(?:Firma|Signature|___|---)`)
	keywordBeforeX = regexp.MustCompile(`(?:Firma|Signature)\s*[:\s]*[xX]{1,3}`)
)

// certNamePatterns is built once per certification keyword: a name-shaped
// token run following the keyword, terminated by a date, newline, or "Firma".
var certNamePatterns = buildCertNamePatterns()

func buildCertNamePatterns() []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(certKeywords))
	for _, kw := range certKeywords {
		out = append(out, regexp.MustCompile(
			`(?i)`+regexp.QuoteMeta(kw)+`[^A-Z]{0,100}([A-ZÁÉÍÓÚÑ][A-Za-záéíóúñÁÉÍÓÚÑ\s]{5,40}?)(?:\d{1,2}/|\n|Firma|$)`))
	}
	return out
}

// Detector runs the text rules and, when available, the visual collaborator.
type Detector struct {
	Visual RegionAnalyzer // nil -> visual checks degrade to indeterminate
}

// Detect applies the precedence rules to the document text. pdfPath and page
// locate the document for the visual collaborator; page is 0-based.
func (d *Detector) Detect(ctx context.Context, text, pdfPath string, page int) Result {
	norm := spaceRun.ReplaceAllString(text, " ")

	// 1. Name + date + time adjacent.
	if m := timestampWithName.FindStringSubmatch(norm); m != nil {
		name := strings.TrimSpace(m[1])
		if len([]rune(name)) > 5 && !deniedName(name) {
			return present(KindTimestamp, fmt.Sprintf("%s - %s %s", name, m[2], strings.TrimSpace(m[3])))
		}
	}

	// 2. Bare timestamp near any signature or certification keyword.
	if containsAnyFold(norm, areaKeywords) || containsAnyFold(norm, certKeywords) {
		if m := bareTimestamp.FindString(norm); m != "" {
			return present(KindTimestamp, strings.TrimSpace(m))
		}
	}

	// 3. Name following a certification keyword.
	for _, p := range certNamePatterns {
		m := p.FindStringSubmatch(norm)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if len([]rune(name)) > 5 && !deniedName(name) {
			return present(KindElectronic, name)
		}
	}

	// 4. "X" mark adjacent to a signature keyword, either order.
	if xBeforeKeyword.MatchString(text) || keywordBeforeX.MatchString(text) {
		return present(KindXMark, "Marca X detectada")
	}

	// 5/6. Signature area present: ask the visual collaborator, or report
	// indeterminate when none is wired.
	for _, kw := range areaKeywords {
		if !strings.Contains(strings.ToLower(text), strings.ToLower(kw)) {
			continue
		}
		if d.Visual == nil {
			return Result{Present: nil, Kind: KindIndeterminateArea,
				Detail: fmt.Sprintf("encontrado '%s', sin verificación visual disponible", kw)}
		}
		return d.detectVisual(ctx, pdfPath, page, kw)
	}

	// 7. Nothing signature-shaped at all.
	no := false
	return Result{Present: &no, Kind: KindNotFound}
}

func (d *Detector) detectVisual(ctx context.Context, pdfPath string, page int, keyword string) Result {
	stats, err := d.Visual.AnalyzeRegion(ctx, pdfPath, page, keyword)
	if err != nil {
		return Result{Present: nil, Kind: KindIndeterminateArea, Detail: err.Error()}
	}
	switch {
	case stats.InkPercent > 0.5 && stats.Contours >= 3:
		return present(KindHandwritten,
			fmt.Sprintf("%d trazos, %.1f%% tinta", stats.Contours, stats.InkPercent))
	case stats.InkPercent > 0.2 || stats.Contours >= 2:
		return present(KindMaybeHandwritten, fmt.Sprintf("%d trazos", stats.Contours))
	default:
		no := false
		return Result{Present: &no, Kind: KindEmptyArea,
			Detail: fmt.Sprintf("sin contenido cerca de '%s'", keyword)}
	}
}

func present(kind, detail string) Result {
	yes := true
	return Result{Present: &yes, Kind: kind, Detail: detail}
}

func deniedName(name string) bool {
	upper := strings.ToUpper(name)
	for _, w := range nameDenylist {
		if strings.Contains(upper, w) {
			return true
		}
	}
	return false
}

func containsAnyFold(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
