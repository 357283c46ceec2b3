package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarvelez-pr/quote-verifier/constants"
	"github.com/omarvelez-pr/quote-verifier/internal/registry"
)

func TestClassify(t *testing.T) {
	c := New(registry.Default())

	tests := []struct {
		name     string
		text     string
		wantType string
		wantOK   bool
	}{
		{
			name:     "insurance authorization",
			text:     "AUTORIZACIÓN PARA REFERIR LOS SEGUROS\nNombre del Solicitante: JUAN PEREZ",
			wantType: constants.DocAutorizacionSeguros,
			wantOK:   true,
		},
		{
			name:     "title disclosures",
			text:     "Divulgaciones Seguro de Título\nNúmero de solicitud: 1234567890",
			wantType: constants.DocDivulgacionesTitulo,
			wantOK:   true,
		},
		{
			name:     "request letter",
			text:     "Solicitud de Cotización Póliza de Título\npopularMortgage.com",
			wantType: constants.DocCartaSolicitud,
			wantOK:   true,
		},
		{
			name:     "case-insensitive containment",
			text:     "estudio de titulo realizado por CAPITAL TITLE",
			wantType: constants.DocEstudioTitulo,
			wantOK:   true,
		},
		{
			name:   "unclassified page",
			text:   "Página de fax sin contenido relevante",
			wantOK: false,
		},
		{
			name:   "empty page",
			text:   "",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Classify(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantType, got)
			}
		})
	}
}

func TestClassifySpecificityOrder(t *testing.T) {
	c := New(registry.Default())

	// Contains both the authorization identifier and the broader request
	// letter identifier: the more specific type, declared first, wins.
	text := "Autorización para referir los seguros\nSolicitud de Cotización"
	got, ok := c.Classify(text)
	require.True(t, ok)
	assert.Equal(t, constants.DocAutorizacionSeguros, got)
}

func TestClassifyNegativeVeto(t *testing.T) {
	c := New(registry.Default())

	// The request letter identifier is present, but "Divulgaciones" vetoes
	// CARTA_SOLICITUD, so the page falls through to the disclosure type.
	text := "Solicitud de Cotización\nDivulgaciones Seguro de Título"
	got, ok := c.Classify(text)
	require.True(t, ok)
	assert.Equal(t, constants.DocDivulgacionesTitulo, got)
}

func TestClassifyPackage(t *testing.T) {
	c := New(registry.Default())

	pages := []string{
		"Solicitud de Cotización Póliza de Título",            // 0
		"texto sin clasificar",                                // 1
		"ESTUDIO de título Capital Title",                     // 2
		"Continuación del estudio, finca número 12,345",       // 3
		"Autorización para referir los seguros",               // 4
		"ESTUDIO segunda página Capital Title",                // 5
	}
	got := c.ClassifyPackage(pages)

	assert.Equal(t, []int{0}, got.ByType[constants.DocCartaSolicitud])
	assert.Equal(t, []int{2, 5}, got.ByType[constants.DocEstudioTitulo])
	assert.Equal(t, []int{4}, got.ByType[constants.DocAutorizacionSeguros])
	assert.Equal(t, []int{1}, got.Unclassified)

	// The continuation page is folded into the study's text, not classified.
	assert.NotContains(t, got.ByType, constants.DocEstudioTituloContinuada)
	assert.Contains(t, got.Continuations[constants.DocEstudioTitulo], "finca número 12,345")

	// First-seen page order.
	assert.Equal(t, []string{
		constants.DocCartaSolicitud,
		constants.DocEstudioTitulo,
		constants.DocAutorizacionSeguros,
	}, got.TypesInOrder())
}

func TestClassifyIsPure(t *testing.T) {
	c := New(registry.Default())

	text := "Autorización para referir los seguros"
	first, _ := c.Classify(text)
	for i := 0; i < 10; i++ {
		got, ok := c.Classify(text)
		require.True(t, ok)
		require.Equal(t, first, got)
	}
}
