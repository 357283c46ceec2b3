package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseSpaces(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"already clean", "JUAN PEREZ", "JUAN PEREZ"},
		{"tabs and runs", "JUAN\t\tPEREZ   GARCIA", "JUAN PEREZ GARCIA"},
		{"newlines collapse", "linea uno\nlinea dos", "linea uno linea dos"},
		{"surrounding space", "  $150,000.00  ", "$150,000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CollapseSpaces(tt.in))
		})
	}
}

func TestNormalizeLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"drops blank lines", "uno\n\n\ndos", "uno\ndos"},
		{"collapses within lines", "Nombre   del \tSolicitante\nJUAN  PEREZ", "Nombre del Solicitante\nJUAN PEREZ"},
		{"keeps line boundaries", "a\nb\nc", "a\nb\nc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLines(tt.in))
		})
	}
}
