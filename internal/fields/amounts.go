package fields

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/omarvelez-pr/quote-verifier/constants"
)

// Plausible bounds for a mortgage amount or sale price on these forms.
const (
	amountLowerBound = 20_000
	amountUpperBound = 10_000_000
)

var currencyShaped = regexp.MustCompile(`\$?\s*([\d,]+(?:\.\d{2})?)`)

// DisambiguateAmounts fills missing loan/price values from unlabeled
// currency-shaped numbers found in text. All in-range values are collected,
// deduplicated, and sorted; with two or more distinct candidates the smallest
// is the loan amount and the largest the sale price (sale price >= loan amount
// by domain convention). A single candidate fills whichever field is unset.
//
// This is a low-confidence fallback: it can misassign when unrelated numbers
// fall in range. Labeled matches always take precedence.
func DisambiguateAmounts(text, loan, price string) (string, string) {
	haveLoan := loan != constants.NotFound && loan != ""
	havePrice := price != constants.NotFound && price != ""
	if haveLoan && havePrice {
		return loan, price
	}

	candidates := collectAmounts(text)
	switch {
	case len(candidates) >= 2:
		if !haveLoan && !havePrice {
			loan = "$" + groupThousands(candidates[0])
			price = "$" + groupThousands(candidates[len(candidates)-1])
		} else if !havePrice {
			// Only accept a value above the known loan amount.
			if v, ok := parseCurrency(loan); ok {
				for i := len(candidates) - 1; i >= 0; i-- {
					if candidates[i] > v {
						price = "$" + groupThousands(candidates[i])
						break
					}
				}
			}
		} else {
			loan = "$" + groupThousands(candidates[0])
		}
	case len(candidates) == 1:
		if !haveLoan && havePrice {
			loan = "$" + groupThousands(candidates[0])
		} else if !havePrice && haveLoan {
			if v, ok := parseCurrency(loan); !ok || absDiff(candidates[0], v) > 100 {
				price = "$" + groupThousands(candidates[0])
			}
		} else if !haveLoan && !havePrice {
			price = "$" + groupThousands(candidates[0])
		}
	}

	if loan == "" {
		loan = constants.NotFound
	}
	if price == "" {
		price = constants.NotFound
	}
	return loan, price
}

func collectAmounts(text string) []float64 {
	seen := make(map[float64]struct{})
	var out []float64
	for _, m := range currencyShaped.FindAllStringSubmatch(text, -1) {
		raw := strings.TrimSuffix(strings.ReplaceAll(m[1], ",", ""), ".")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if v < amountLowerBound || v > amountUpperBound {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
