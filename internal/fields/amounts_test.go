package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omarvelez-pr/quote-verifier/constants"
)

func TestDisambiguateAmounts(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		loan      string
		price     string
		wantLoan  string
		wantPrice string
	}{
		{
			name:      "both labeled values untouched",
			text:      "$999,999.00 ruido $80,000.00",
			loan:      "$150,000.00",
			price:     "$175,000.00",
			wantLoan:  "$150,000.00",
			wantPrice: "$175,000.00",
		},
		{
			name:      "both missing, smallest is loan largest is price",
			text:      "montos $120,000.00 y $150,000.00 y $135,000.00",
			loan:      constants.NotFound,
			price:     constants.NotFound,
			wantLoan:  "$120,000.00",
			wantPrice: "$150,000.00",
		},
		{
			name:      "price missing, first candidate above known loan",
			text:      "valores $100,000.00 $140,000.00 $90,000.00",
			loan:      "$120,000.00",
			price:     constants.NotFound,
			wantLoan:  "$120,000.00",
			wantPrice: "$140,000.00",
		},
		{
			name:      "price missing, no candidate above loan stays unset",
			text:      "valores $100,000.00 $90,000.00",
			loan:      "$120,000.00",
			price:     constants.NotFound,
			wantLoan:  "$120,000.00",
			wantPrice: constants.NotFound,
		},
		{
			name:      "loan missing takes smallest",
			text:      "valores $110,000.00 $160,000.00",
			loan:      constants.NotFound,
			price:     "$160,000.00",
			wantLoan:  "$110,000.00",
			wantPrice: "$160,000.00",
		},
		{
			name:      "single candidate fills missing price when distinct",
			text:      "monto $175,000.00",
			loan:      "$150,000.00",
			price:     constants.NotFound,
			wantLoan:  "$150,000.00",
			wantPrice: "$175,000.00",
		},
		{
			name:      "single candidate equal to loan leaves price unset",
			text:      "monto $150,000.00",
			loan:      "$150,000.00",
			price:     constants.NotFound,
			wantLoan:  "$150,000.00",
			wantPrice: constants.NotFound,
		},
		{
			name:      "out-of-range numbers ignored",
			text:      "tel 787-1234 balance $5,000.00 ref $99,000,000.00",
			loan:      constants.NotFound,
			price:     constants.NotFound,
			wantLoan:  constants.NotFound,
			wantPrice: constants.NotFound,
		},
		{
			name:      "duplicates collapse to one candidate",
			text:      "monto $130,000.00 repetido $130,000.00",
			loan:      constants.NotFound,
			price:     constants.NotFound,
			wantLoan:  constants.NotFound,
			wantPrice: "$130,000.00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan, price := DisambiguateAmounts(tt.text, tt.loan, tt.price)
			assert.Equal(t, tt.wantLoan, loan)
			assert.Equal(t, tt.wantPrice, price)
		})
	}
}

func TestCollectAmounts(t *testing.T) {
	got := collectAmounts("ruido $25,000.00 texto 1,000,000.00 y 30000 fin")
	assert.Equal(t, []float64{25000, 30000, 1000000}, got)
}
