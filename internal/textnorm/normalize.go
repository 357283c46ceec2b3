// Package textnorm cleans up text recovered from the OCR layer before the
// classifier and extractors see it.
package textnorm

import (
	"regexp"
	"strings"
)

var spaceRun = regexp.MustCompile(`\s+`)

// CollapseSpaces collapses every whitespace run to a single space and trims.
func CollapseSpaces(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// NormalizeLines collapses whitespace within each line, drops empty lines,
// and rejoins the rest with single newlines. Line boundaries are preserved
// because several extraction patterns anchor on them.
func NormalizeLines(s string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, ln := range lines {
		ln = strings.TrimSpace(strings.ReplaceAll(ln, "\t", " "))
		if ln == "" {
			continue
		}
		out = append(out, strings.Join(strings.Fields(ln), " "))
	}
	return strings.Join(out, "\n")
}
