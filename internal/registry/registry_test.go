package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarvelez-pr/quote-verifier/constants"
)

func TestDefaultOrdering(t *testing.T) {
	specs := Default()
	require.Len(t, specs, 6)

	// Specificity order: the broad request letter and the study come after
	// the disclosure types whose identifiers they could shadow.
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	assert.Equal(t, []string{
		constants.DocAutorizacionSeguros,
		constants.DocDivulgacionesTitulo,
		constants.DocDivulgacionesProductos,
		constants.DocCartaSolicitud,
		constants.DocEstudioTitulo,
		constants.DocEstudioTituloContinuada,
	}, names)
}

func TestDefaultSpecShape(t *testing.T) {
	specs := Default()

	for _, s := range specs {
		t.Run(s.Name, func(t *testing.T) {
			assert.NotEmpty(t, s.Identifiers, "every type needs positive evidence")
			for _, f := range s.Fields {
				if f.Special == SpecialNone {
					assert.NotEmpty(t, f.Patterns, "field %s has neither patterns nor a special extractor", f.Name)
				}
			}
		})
	}
}

func TestContinuationWiring(t *testing.T) {
	specs := Default()

	cont, ok := ByName(specs, constants.DocEstudioTituloContinuada)
	require.True(t, ok)
	assert.Equal(t, constants.DocEstudioTitulo, cont.ContinuationOf)
	assert.Empty(t, cont.Fields)

	study, ok := ByName(specs, constants.DocEstudioTitulo)
	require.True(t, ok)
	assert.True(t, study.IncludeContinuations)
}

func TestByName(t *testing.T) {
	specs := Default()

	s, ok := ByName(specs, constants.DocCartaSolicitud)
	assert.True(t, ok)
	assert.Equal(t, constants.DocCartaSolicitud, s.Name)

	_, ok = ByName(specs, "NO_SUCH_TYPE")
	assert.False(t, ok)
}
