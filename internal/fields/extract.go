// Package fields turns the combined text of a classified document into a
// typed field map, driven by the registry's per-type rules.
package fields

import (
	"github.com/omarvelez-pr/quote-verifier/constants"
	"github.com/omarvelez-pr/quote-verifier/internal/registry"
	"github.com/omarvelez-pr/quote-verifier/internal/textnorm"
)

// Extract applies the type's field specs to combined (the concatenated text of
// every page assigned to the type). contText is the accumulated continuation
// text for the type, consumed only by the special extractors that opt in.
func Extract(combined, contText string, spec registry.Spec) map[string]string {
	out := make(map[string]string, len(spec.Fields))
	for _, f := range spec.Fields {
		switch f.Special {
		case registry.SpecialPropertyType:
			out[f.Name] = PropertyType(combined)
		case registry.SpecialLastStudyDate:
			scan := combined
			if spec.IncludeContinuations && contText != "" {
				scan = combined + "\n" + contText
			}
			out[f.Name] = lastDateOrNotFound(scan)
		case registry.SpecialBlankLine:
			out[f.Name] = BlankLineCheck(combined)
		default:
			out[f.Name] = matchField(combined, f)
		}
	}

	// Best-effort recovery for the paired monetary fields when the labeled
	// patterns came up empty.
	if _, hasLoan := out["cantidad_hipoteca"]; hasLoan {
		loan, price := DisambiguateAmounts(combined, out["cantidad_hipoteca"], out["precio_venta"])
		out["cantidad_hipoteca"] = loan
		out["precio_venta"] = price
	}
	return out
}

func matchField(text string, f registry.FieldSpec) string {
	for _, p := range f.Patterns {
		m := p.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		value := textnorm.CollapseSpaces(m[1])
		if value == "" {
			continue
		}
		if value = postProcess(value, f.Post); value != "" {
			return value
		}
	}
	return constants.NotFound
}

func lastDateOrNotFound(text string) string {
	if d := LastLongFormDate(text); d != "" {
		return d
	}
	return constants.NotFound
}
