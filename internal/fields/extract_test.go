package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarvelez-pr/quote-verifier/constants"
	"github.com/omarvelez-pr/quote-verifier/internal/registry"
)

func specFor(t *testing.T, name string) registry.Spec {
	t.Helper()
	s, ok := registry.ByName(registry.Default(), name)
	require.True(t, ok)
	return s
}

func TestExtractAuthorization(t *testing.T) {
	spec := specFor(t, constants.DocAutorizacionSeguros)

	text := `AUTORIZACIÓN PARA REFERIR LOS SEGUROS
Nombre del Solicitante: JUAN PEREZ GARCIA
Número de Solicitud: 1234567890
favor indicar el seguro que no desea que se gestione: ____________
`
	got := Extract(text, "", spec)

	assert.Equal(t, "JUAN PEREZ GARCIA", got["nombre_solicitante"])
	assert.Equal(t, "1234567890", got["num_solicitud"])
	assert.Equal(t, "CORRECTO (Está en blanco)", got["linea_rechazo"])
}

func TestExtractAuthorizationStopsAtCoApplicant(t *testing.T) {
	spec := specFor(t, constants.DocAutorizacionSeguros)

	text := "Nombre del Solicitante: JUAN PEREZ Nombre del Co-Solicitante: MARIA LOPEZ"
	got := Extract(text, "", spec)

	assert.Equal(t, "JUAN PEREZ", got["nombre_solicitante"])
}

func TestExtractRequestLetter(t *testing.T) {
	spec := specFor(t, constants.DocCartaSolicitud)

	text := `Solicitud de Cotización Póliza de Título
Nombre del Solicitante: JUAN PEREZ GARCIA
Dirección Postal: CALLE LUNA 123 SAN JUAN PR 00901
Número de Seguro Social del Solicitante: 123-45-6789
Correo Electrónico: juan.perez@gmail.com
Cantidad de la Hipoteca: $150,000.00
Precio de Venta: $175,000.00
Tipo de Préstamo: CONVENCIONAL
Fecha estimada de cierre: 12/31/2025
`
	got := Extract(text, "", spec)

	assert.Equal(t, "JUAN PEREZ GARCIA", got["nombre_solicitante"])
	assert.Equal(t, "123-45-6789", got["ssn"])
	assert.Equal(t, "juan.perez@gmail.com", got["email"])
	assert.Equal(t, "$150,000.00", got["cantidad_hipoteca"])
	assert.Equal(t, "$175,000.00", got["precio_venta"])
	assert.Equal(t, "CONVENCIONAL", got["tipo_prestamo"])
	assert.Equal(t, "12/31/2025", got["fecha_estimada_cierre"])
	assert.Contains(t, got["direccion_postal"], "CALLE LUNA 123")
}

func TestExtractRequestLetterOCRMisread(t *testing.T) {
	spec := specFor(t, constants.DocCartaSolicitud)

	// "Precio de Venta" read as "(PARANA" by the OCR layer.
	text := `Solicitud de Cotización
Cantidad de la Hipoteca: $120,000.00
(PARANA 150,000.00
`
	got := Extract(text, "", spec)

	assert.Equal(t, "$120,000.00", got["cantidad_hipoteca"])
	assert.Equal(t, "$150,000.00", got["precio_venta"])
}

func TestExtractMissingFieldsAreSentinel(t *testing.T) {
	spec := specFor(t, constants.DocCartaSolicitud)

	got := Extract("Solicitud de Cotización sin datos", "", spec)

	assert.Equal(t, constants.NotFound, got["ssn"])
	assert.Equal(t, constants.NotFound, got["email"])
	assert.Equal(t, constants.NotFound, got["cantidad_hipoteca"])
}

func TestExtractFirstPatternWins(t *testing.T) {
	spec := specFor(t, constants.DocDivulgacionesTitulo)

	// Both pattern variants appear; the first ("Número de solicitud") wins.
	text := "Número de solicitud: 1111111111\nNúmero de préstamo: 2222222222"
	got := Extract(text, "", spec)

	assert.Equal(t, "1111111111", got["num_solicitud"])
}

func TestExtractStudyWithContinuation(t *testing.T) {
	spec := specFor(t, constants.DocEstudioTitulo)

	combined := `ESTUDIO DE TÍTULO
Finca número 12,345
SOLAR en la URBANIZACIÓN Las Flores
otorgada el 3 de mayo de 2024
`
	continuation := "Continuación: revisado el 15 de junio de 2024"

	got := Extract(combined, continuation, spec)

	assert.Equal(t, "12,345", got["finca"])
	assert.Equal(t, "CASA", got["tipo_propiedad"])
	// The continuation's later date wins.
	assert.Equal(t, "15 de junio de 2024", got["fecha_documento"])
}
