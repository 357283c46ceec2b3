package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanEmail(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"clean address", "juan.perez@gmail.com", "juan.perez@gmail.com"},
		{"uppercase lowered", "Juan.Perez@Gmail.Com", "juan.perez@gmail.com"},
		{"pipe noise stripped", "juan|.perez@gmail.com", "juan.perez@gmail.com"},
		{"spaces inside removed", "juan . perez @ gmail . com", "juan.perez@gmail.com"},
		{"glued provider regains at", "juanperezgmail.com", "juanperez@gmail.com"},
		{"glued hotmail", "mlopezhotmail.com", "mlopez@hotmail.com"},
		{"unrecoverable noise", "sin correo aqui", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanEmail(tt.in))
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "150000", "$150,000.00"},
		{"with separators", "150,000.00", "$150,000.00"},
		{"with spaces", "1 50,000.00", "$150,000.00"},
		{"dollar sign kept out of parse", "$98,500.50", "$98,500.50"},
		{"millions grouping", "1234567.89", "$1,234,567.89"},
		{"too small rejected", "500", ""},
		{"exactly threshold rejected", "1000", ""},
		{"garbage rejected", "12a34", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.in))
		})
	}
}

func TestParseCurrency(t *testing.T) {
	v, ok := parseCurrency("$150,000.00")
	assert.True(t, ok)
	assert.Equal(t, 150000.0, v)

	_, ok = parseCurrency("")
	assert.False(t, ok)

	_, ok = parseCurrency("N/A")
	assert.False(t, ok)
}
