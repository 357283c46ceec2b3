// Package classify assigns recognized page texts to document types.
package classify

import (
	"strings"

	"github.com/omarvelez-pr/quote-verifier/internal/registry"
)

// Classifier evaluates the registry table in declared order. It holds no
// mutable state: classification is a pure function of page text and the table.
type Classifier struct {
	specs []registry.Spec
}

func New(specs []registry.Spec) *Classifier {
	return &Classifier{specs: specs}
}

// Classify returns the first declared type whose positive evidence is present
// and no negative identifier vetoes it. ok is false when no type matches.
func (c *Classifier) Classify(pageText string) (name string, ok bool) {
	upper := strings.ToUpper(pageText)
	for _, spec := range c.specs {
		if hasAny(upper, spec.NegativeIdentifiers) {
			continue
		}
		if hasAny(upper, spec.Identifiers) {
			return spec.Name, true
		}
	}
	return "", false
}

func hasAny(upperText string, identifiers []string) bool {
	for _, id := range identifiers {
		if strings.Contains(upperText, strings.ToUpper(id)) {
			return true
		}
	}
	return false
}

// PackagePages is the result of classifying every page of one package.
// Continuation text is accumulated here, scoped to the package, and discarded
// with it, never shared across packages or runs.
type PackagePages struct {
	// ByType maps a type name to the 0-based page indices assigned to it,
	// in page order.
	ByType map[string][]int
	// Continuations maps a primary type name to the concatenated text of its
	// continuation pages.
	Continuations map[string]string
	// Unclassified lists pages no type claimed, in page order.
	Unclassified []int
	// order remembers first-seen order of ByType keys.
	order []string
}

// TypesInOrder returns the classified type names in first-seen page order.
func (p *PackagePages) TypesInOrder() []string {
	return p.order
}

// ClassifyPackage runs the classification pass over the pages of one package.
// Pages of a continuation type are folded into their primary type's
// continuation text instead of being classified on their own.
func (c *Classifier) ClassifyPackage(pageTexts []string) *PackagePages {
	result := &PackagePages{
		ByType:        make(map[string][]int),
		Continuations: make(map[string]string),
	}
	for i, text := range pageTexts {
		name, ok := c.Classify(text)
		if !ok {
			result.Unclassified = append(result.Unclassified, i)
			continue
		}
		spec, _ := registry.ByName(c.specs, name)
		if spec.ContinuationOf != "" {
			result.Continuations[spec.ContinuationOf] += "\n" + text
			continue
		}
		if _, seen := result.ByType[name]; !seen {
			result.order = append(result.order, name)
		}
		result.ByType[name] = append(result.ByType[name], i)
	}
	return result
}
