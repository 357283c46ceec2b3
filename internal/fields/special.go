package fields

import (
	"fmt"
	"regexp"
	"strings"
)

// Property type inference, keyword presence only. Apartment indicators are
// checked first: "propiedad horizontal" deeds also mention land terms.
var (
	apartmentIndicators = []string{
		"PROPIEDAD HORIZONTAL",
		"APARTAMENTO",
		"CONDOMINIO",
		"APT",
	}
	houseIndicators = []string{
		"SOLAR",
		"CASA",
		"TERRENO",
		"URBANIZACIÓN",
		"URBANA",
	}
)

// PropertyType reports CASA, APARTAMENTO, or INDETERMINADO from the study text.
func PropertyType(text string) string {
	upper := strings.ToUpper(text)
	for _, ind := range apartmentIndicators {
		if strings.Contains(upper, ind) {
			return "APARTAMENTO"
		}
	}
	for _, ind := range houseIndicators {
		if strings.Contains(upper, ind) {
			return "CASA"
		}
	}
	return "INDETERMINADO"
}

var (
	longFormDate = regexp.MustCompile(`(?i)(\d{1,2}\s+de\s+(?:enero|febrero|marzo|abril|mayo|junio|julio|agosto|septiembre|octubre|noviembre|diciembre)\s+de\s+\d{4})`)
	numericDate  = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`)
)

// LastLongFormDate returns the last "DD de MES de YYYY" date in text, which is
// typically the document date written after the notary's closing. Falls back
// to the last numeric date; empty string when neither appears.
func LastLongFormDate(text string) string {
	if m := longFormDate.FindAllString(text, -1); len(m) > 0 {
		return m[len(m)-1]
	}
	if m := numericDate.FindAllString(text, -1); len(m) > 0 {
		return m[len(m)-1]
	}
	return ""
}

// Blank-line verification for the insurance-rejection clause: the form asks
// the applicant to name any insurance they do NOT want the bank to arrange,
// so a blank line is the correct state.
var rejectionClausePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)que\s+no\s+desea\s+que\s+Popular[^:]*gestione[:\s]*([^\n]{0,100})`),
	regexp.MustCompile(`(?i)favor\s+indicar\s+el\s+seguro\s+que\s+no\s+desea[^:]*:[:\s]*([^\n]{0,100})`),
	regexp.MustCompile(`(?i)Insurance\s+gestione[:\s]*([^\n]{0,100})`),
}

var formBoilerplate = []string{
	"firma del solicitante", "firma del co-solicitante", "firma",
	"solicitante", "co-solicitante", "fecha", "mortg", "rev",
}

var fillerChars = regexp.MustCompile(`[_\-\.\s\n:]+`)

// BlankLineCheck locates the rejection clause and reports whether the line
// after it is blank (expected), contains real text (alert), or was not found.
func BlankLineCheck(text string) string {
	for _, p := range rejectionClausePatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		content := strings.TrimSpace(m[1])
		stripped := strings.ToLower(fillerChars.ReplaceAllString(content, ""))
		if len(stripped) < 3 {
			return "CORRECTO (Está en blanco)"
		}
		lower := strings.ToLower(content)
		for _, b := range formBoilerplate {
			if strings.Contains(lower, b) {
				return "CORRECTO (Está en blanco)"
			}
		}
		if r := []rune(content); len(r) > 50 {
			content = string(r[:50])
		}
		return fmt.Sprintf("ALERTA: Contiene texto ('%s')", content)
	}
	return "NO LOCALIZADO"
}
