// Package registry declares the document types the classifier and extractor
// operate on. Types are plain data: adding one means appending a table row.
package registry

import (
	"regexp"

	"github.com/omarvelez-pr/quote-verifier/constants"
)

// SpecialKind names a special-case extractor instead of a pattern list.
type SpecialKind string

const (
	SpecialNone          SpecialKind = ""
	SpecialPropertyType  SpecialKind = "property_type"
	SpecialLastStudyDate SpecialKind = "last_study_date"
	SpecialBlankLine     SpecialKind = "blank_line_check"
)

// PostKind selects the post-processor applied to a matched value.
type PostKind string

const (
	PostNone     PostKind = ""
	PostEmail    PostKind = "email"
	PostCurrency PostKind = "currency"
	PostFreeText PostKind = "free_text"
)

// FieldSpec maps a field name to either an ordered pattern list (first match
// wins) or a named special-case extractor.
type FieldSpec struct {
	Name     string
	Patterns []*regexp.Regexp
	Special  SpecialKind
	Post     PostKind
}

// Spec describes one document type.
type Spec struct {
	Name                 string
	Identifiers          []string // positive evidence, matched case-insensitively
	NegativeIdentifiers  []string // presence of any vetoes this type
	Fields               []FieldSpec
	RequiresSignature    bool
	ContinuationOf       string // pages of this type extend another type's text
	IncludeContinuations bool   // special extractors also scan continuation text
}

func pats(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// Default returns the declared-order type table. Order matters: the
// classifier returns the first type whose positive evidence holds without a
// negative veto, so more specific types come first.
func Default() []Spec {
	return []Spec{
		{
			Name: constants.DocAutorizacionSeguros,
			Identifiers: []string{
				"Autorización para referir los seguros",
				"Autorización para referir",
			},
			Fields: []FieldSpec{
				{
					Name: "nombre_solicitante",
					Patterns: pats(
						`(?im)Nombre\s+del\s+Solicitante[:\s]*([A-ZÁÉÍÓÚÑ][A-Za-záéíóúñÁÉÍÓÚÑ\s]+?)(?:\n|Nombre\s+del\s+Co|$)`,
					),
					Post: PostFreeText,
				},
				{
					Name: "num_solicitud",
					Patterns: pats(
						`(?im)N[uú]mero\s+de\s+Solicitud[:\s]*(\d{10})`,
					),
				},
				{Name: "linea_rechazo", Special: SpecialBlankLine},
			},
			RequiresSignature: true,
		},
		{
			Name: constants.DocDivulgacionesTitulo,
			Identifiers: []string{
				"Divulgaciones Seguro de Título",
				"Divulgaciones Seguro de Titulo",
			},
			Fields: []FieldSpec{
				{
					Name: "num_solicitud",
					Patterns: pats(
						`(?im)N[uú]mero\s+de\s+solicitud[:\s]*(\d{10})`,
						`(?im)N[uú]mero\s+de\s+pr[eé]stamo[:\s]*(\d{10})`,
					),
				},
			},
			RequiresSignature: true,
		},
		{
			Name: constants.DocDivulgacionesProductos,
			Identifiers: []string{
				"Divulgaciones relacionadas a los productos de seguro",
			},
			Fields: []FieldSpec{
				{
					Name: "num_solicitud",
					Patterns: pats(
						`(?im)N[uú]mero\s+de\s+pr[eé]stamo[:\s]*(\d{10})`,
						`(?im)N[uú]mero\s+de\s+solicitud[:\s]*(\d{10})`,
					),
				},
			},
			RequiresSignature: true,
		},
		{
			Name: constants.DocCartaSolicitud,
			Identifiers: []string{
				"Solicitud de Cotización Póliza de Título",
				"Solicitud de Cotización",
				"popularMortgage.com",
			},
			NegativeIdentifiers: []string{
				"Autorización para referir",
				"Divulgaciones",
			},
			Fields: []FieldSpec{
				{
					Name: "nombre_solicitante",
					Patterns: pats(
						`(?im)Nombre\s+del\s+Solicitante[:\s]*([A-ZÁÉÍÓÚÑ][A-Za-záéíóúñÁÉÍÓÚÑ\s]+?)(?:\n|Nombre\s+del\s+Co|$)`,
					),
					Post: PostFreeText,
				},
				{
					Name: "direccion_postal",
					Patterns: pats(
						`(?im)Direcci[oó]n\s+Postal[:\s]*([^\n]+(?:\n[^\n]*(?:PR|00\d{3}))?)`,
					),
					Post: PostFreeText,
				},
				{
					Name: "ssn",
					Patterns: pats(
						`(?im)N[uú]mero\s+de\s+Seguro\s+Social\s+del\s+Solicitante[:\s]*(\d{3}-\d{2}-\d{4})`,
						`(\d{3}-\d{2}-\d{4})`,
					),
				},
				{
					Name: "email",
					Patterns: pats(
						`(?im)Correo\s+Electr[oó]nico[:\s]*([^\n]+)`,
					),
					Post: PostEmail,
				},
				{
					Name: "cantidad_hipoteca",
					Patterns: pats(
						`(?im)Cantidad\s+de\s+la\s+Hipoteca[:\s]*\$?\s*([\d,]+\.?\d*)`,
						`(?im)(?:Base\s+|Total\s+)?(?:Loan|Mortgage|Principal)\s+Amount[:\s]*\$?\s*([\d,]+\.\d{2})`,
						`(?im)Hipoteca[:\s]*\$?\s*([\d,]+\.?\d*)`,
					),
					Post: PostCurrency,
				},
				{
					Name: "precio_venta",
					Patterns: pats(
						`(?im)Precio\s+de\s+Venta[:\s]*\$?\s*([\d,\s]+\.\d{2})`,
						`(?im)Precio\s+de\s+Venta[:\s]*\$?\s*([\d,]+\.?\d*)`,
						// OCR sometimes reads "Precio" as "(PARANA".
						`(?im)\(?PARANA\s*([\d,]+\.\d{2})`,
						`(?im)(?:Purchase|Sales|Contract)\s+Price[:\s]*\$?\s*([\d,\s]+\.\d{2})`,
					),
					Post: PostCurrency,
				},
				{
					Name: "tipo_prestamo",
					Patterns: pats(
						`(?im)Tipo\s+de\s+Pr[eé]stamo[:\s]*([^\n]+)`,
					),
					Post: PostFreeText,
				},
				{
					Name: "fecha_estimada_cierre",
					Patterns: pats(
						`(?im)Fecha\s+estimada\s+de\s+cierre[:\s]*(\d{1,2}/\d{1,2}/\d{4})`,
					),
				},
			},
		},
		{
			Name: constants.DocEstudioTitulo,
			Identifiers: []string{
				"ESTUDIO",
				"Capital Title",
			},
			NegativeIdentifiers: []string{
				"Divulgaciones Seguro de Título",
				"popularMortgage.com",
				// Continuation pages classify separately.
				"Continuación",
			},
			Fields: []FieldSpec{
				{
					Name: "finca",
					Patterns: pats(
						`(?im)FINCA\s*[:\s]*(?:N[uú]mero\s*)?([\d,]+)`,
						`(?im)Finca\s+n[uú]mero\s+([\d,]+)`,
					),
				},
				{Name: "tipo_propiedad", Special: SpecialPropertyType},
				{Name: "fecha_documento", Special: SpecialLastStudyDate},
			},
			IncludeContinuations: true,
		},
		{
			Name: constants.DocEstudioTituloContinuada,
			Identifiers: []string{
				"Continuación",
				"Continuacion",
			},
			NegativeIdentifiers: []string{
				"Autorización",
				"Divulgaciones",
			},
			// No fields of its own; its text feeds the study's date lookup.
			ContinuationOf: constants.DocEstudioTitulo,
		},
	}
}

// ByName returns the spec with the given name from specs, if declared.
func ByName(specs []Spec, name string) (Spec, bool) {
	for _, s := range specs {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}
