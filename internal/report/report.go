// Package report assembles the per-package verification report and writes it
// to disk atomically, as JSON plus a human-readable plaintext mirror.
package report

import (
	"path/filepath"

	"github.com/omarvelez-pr/quote-verifier/constants"
	"github.com/omarvelez-pr/quote-verifier/internal/signature"
)

// Document is the extraction result for one (package, document type) pair.
type Document struct {
	// Paginas lists the contributing pages, 1-indexed for the report.
	Paginas []int `json:"paginas"`
	// Datos maps field name to extracted value or the NOT_FOUND sentinel.
	Datos map[string]string `json:"datos"`
	// Firma is set only for types that require a signature.
	Firma *signature.Result `json:"firma,omitempty"`
}

// Validations holds the tri-state cross-document checks. nil means the check
// could not be decided from the documents present.
type Validations struct {
	NombreConsistente          *bool `json:"nombre_consistente"`
	NumeroSolicitudConsistente *bool `json:"numero_solicitud_consistente"`
	FirmasCompletas            *bool `json:"firmas_completas"`
}

// Alert is a finalized validation message. RedFlag alerts force rejection.
type Alert struct {
	Text    string
	RedFlag bool
}

// Report is the persisted artifact, one per package. JSON keys match the
// downstream automation contract.
type Report struct {
	Archivo              string              `json:"archivo"`
	TotalPaginas         int                 `json:"total_paginas"`
	ResumenValidacion    constants.Verdict   `json:"resumen_validacion"`
	DocumentosDetectados map[string]Document `json:"documentos_detectados"`
	Validaciones         Validations         `json:"validaciones"`
	Alertas              []string            `json:"alertas"`
}

// Build assembles a report and derives its verdict. The verdict is a decision
// table, first match wins, ties favoring the stricter classification:
//
//	all validations true          -> APPROVED
//	any red-flag alert            -> REJECTED_RED_FLAG
//	any alert                     -> NEEDS_REVIEW
//	otherwise                     -> INCOMPLETE
func Build(sourceFile string, docs map[string]Document, totalPages int, val Validations, alerts []Alert) *Report {
	texts := make([]string, 0, len(alerts))
	redFlag := false
	for _, a := range alerts {
		texts = append(texts, a.Text)
		if a.RedFlag {
			redFlag = true
		}
	}

	verdict := constants.VerdictIncomplete
	switch {
	case isTrue(val.NombreConsistente) && isTrue(val.NumeroSolicitudConsistente) && isTrue(val.FirmasCompletas):
		verdict = constants.VerdictApproved
	case redFlag:
		verdict = constants.VerdictRedFlag
	case len(texts) > 0:
		verdict = constants.VerdictNeedsReview
	}

	if docs == nil {
		docs = map[string]Document{}
	}
	if texts == nil {
		texts = []string{}
	}
	return &Report{
		Archivo:              filepath.Base(sourceFile),
		TotalPaginas:         totalPages,
		ResumenValidacion:    verdict,
		DocumentosDetectados: docs,
		Validaciones:         val,
		Alertas:              texts,
	}
}

func isTrue(b *bool) bool { return b != nil && *b }
