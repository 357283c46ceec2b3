package fields

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/omarvelez-pr/quote-verifier/internal/registry"
	"github.com/omarvelez-pr/quote-verifier/internal/textnorm"
)

func postProcess(value string, kind registry.PostKind) string {
	switch kind {
	case registry.PostEmail:
		return CleanEmail(value)
	case registry.PostCurrency:
		return FormatCurrency(value)
	case registry.PostFreeText:
		return textnorm.CollapseSpaces(value)
	default:
		return value
	}
}

var emailPattern = regexp.MustCompile(`(?i)([\w.\-]+@[\w.\-]+\.[a-z]{2,})`)

// Domains OCR commonly glues straight onto the local part, dropping the "@".
var knownProviders = []string{"gmail.com", "hotmail.com", "yahoo.com", "outlook.com"}

// CleanEmail strips OCR noise from an email capture and lowercases it.
// When a known provider domain is glued to the local part the "@" is
// reinserted. Empty string when nothing address-shaped remains.
func CleanEmail(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.ReplaceAll(raw, "|", "")
	s = strings.Join(strings.Fields(s), "")
	if m := emailPattern.FindStringSubmatch(s); m != nil {
		return strings.ToLower(m[1])
	}
	lower := strings.ToLower(s)
	if !strings.Contains(lower, "@") {
		for _, prov := range knownProviders {
			if idx := strings.Index(lower, prov); idx > 0 {
				return lower[:idx] + "@" + prov
			}
		}
		return ""
	}
	return lower
}

// FormatCurrency normalizes a captured amount to a fixed "$#,###.##" string.
// Values that fail to parse, or are too small to be a price, are rejected.
func FormatCurrency(raw string) string {
	if raw == "" {
		return ""
	}
	clean := strings.NewReplacer(",", "", " ", "", "$", "").Replace(raw)
	num, err := strconv.ParseFloat(clean, 64)
	if err != nil || num <= 1000 {
		return ""
	}
	return "$" + groupThousands(num)
}

func groupThousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]
	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String() + frac
}

// parseCurrency is the inverse of FormatCurrency, used by the paired-amount
// heuristic to compare already-formatted values.
func parseCurrency(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	clean := strings.NewReplacer("$", "", ",", "").Replace(s)
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
