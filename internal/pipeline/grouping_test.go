package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces and parens", "COTIZACION 1911 CV (2).pdf", "COTIZACION_1911_CV_2"},
		{"already clean", "123456_CV.pdf", "123456_CV"},
		{"hyphens kept", "scan-123456-cv.pdf", "scan-123456-cv"},
		{"accents collapse", "Préstamo Nº4.pdf", "Pr_stamo_N_4"},
		{"full path", "/inbox/CARTA 1911.pdf", "CARTA_1911"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeName(tc.in))
		})
	}
}

func TestGroupKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"embedded digit id", "CV_12345678.pdf", "12345678"},
		{"digit id wins over prefix", "loan-654321-final.pdf", "654321"},
		{"short digit run ignored", "1911_CV.pdf", "1911"},
		{"prefix before underscore", "garcia_carta.pdf", "garcia"},
		{"prefix before space", "Lopez final version.pdf", "lopez"},
		{"no separator", "cartasola.pdf", "cartasola"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GroupKey(tc.in))
		})
	}
}

func TestGroupFilesPageSuffix(t *testing.T) {
	groups := GroupFiles([]string{
		"/in/paquete lopez-3-4.pdf",
		"/in/paquete lopez-1-4.pdf",
		"/in/paquete lopez-10-12.pdf",
		"/in/paquete lopez-2-4.pdf",
	})

	assert.Len(t, groups, 1)
	assert.Equal(t, []string{
		"/in/paquete lopez-1-4.pdf",
		"/in/paquete lopez-2-4.pdf",
		"/in/paquete lopez-3-4.pdf",
		"/in/paquete lopez-10-12.pdf",
	}, groups["paquete_lopez"])
}

func TestGroupFilesDocumentOrder(t *testing.T) {
	groups := GroupFiles([]string{
		"/in/123456_DIV(2).pdf",
		"/in/123456_PAGE2.pdf",
		"/in/123456_DIV(1).pdf",
		"/in/123456_ET.pdf",
		"/in/123456_CV.pdf",
		"/in/123456_OTRO.pdf",
	})

	assert.Len(t, groups, 1)
	assert.Equal(t, []string{
		"/in/123456_CV.pdf",
		"/in/123456_ET.pdf",
		"/in/123456_PAGE2.pdf",
		"/in/123456_DIV(1).pdf",
		"/in/123456_DIV(2).pdf",
		"/in/123456_OTRO.pdf",
	}, groups["123456"])
}

func TestGroupFilesSeparatePackages(t *testing.T) {
	groups := GroupFiles([]string{
		"/in/123456_CV.pdf",
		"/in/654321_CV.pdf",
		"/in/garcia_carta.pdf",
	})

	assert.Len(t, groups, 3)
	assert.Contains(t, groups, "123456")
	assert.Contains(t, groups, "654321")
	assert.Contains(t, groups, "garcia")
}

func TestDocumentOrderRank(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"123456_CV.pdf", 1},
		{"carta solicitud.pdf", 1},
		{"123456_ESTUDIO.pdf", 2},
		{"123456_CONTINUACION.pdf", 3},
		{"123456_DIV.pdf", 4},
		{"123456_DIV(3).pdf", 7},
		{"123456_anexo.pdf", 10},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, documentOrderRank(tc.in))
		})
	}
}
