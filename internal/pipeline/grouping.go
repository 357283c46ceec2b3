package pipeline

import (
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	pageSuffixRe    = regexp.MustCompile(`(?i)-(\d+)-\d+\.pdf$`)
	digitIDRe       = regexp.MustCompile(`\d{6,12}`)
	nonWordRe       = regexp.MustCompile(`[^\w\-]`)
	underscoreRunRe = regexp.MustCompile(`_+`)
	divIndexRe      = regexp.MustCompile(`DIV\s*\((\d+)\)`)
)

// SanitizeName turns an arbitrary PDF filename into a safe artifact name.
// "COTIZACION 1911 CV (2).pdf" becomes "COTIZACION_1911_CV_2".
func SanitizeName(filename string) string {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name = nonWordRe.ReplaceAllString(name, "_")
	name = underscoreRunRe.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}

// GroupKey derives the package identifier for a file that carries no page
// suffix: an embedded 6 to 12 digit id wins, else the lowercased prefix
// before the first separator.
func GroupKey(filename string) string {
	base := filepath.Base(filename)
	if m := digitIDRe.FindString(base); m != "" {
		return m
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if idx := strings.IndexAny(stem, "-_ "); idx > 0 {
		stem = stem[:idx]
	}
	if stem == "" {
		return base
	}
	return strings.ToLower(stem)
}

// GroupFiles partitions inbox files into packages. Files named with the
// scanner's "-<page>-<total>.pdf" suffix group by their sanitized base name;
// everything else groups by GroupKey. Members are returned in processing
// order.
func GroupFiles(paths []string) map[string][]string {
	groups := make(map[string][]string)
	suffixed := make(map[string]bool)

	for _, p := range paths {
		name := filepath.Base(p)
		if pageSuffixRe.MatchString(name) {
			key := SanitizeName(pageSuffixRe.ReplaceAllString(name, ""))
			groups[key] = append(groups[key], p)
			suffixed[key] = true
		} else {
			key := GroupKey(name)
			groups[key] = append(groups[key], p)
		}
	}

	for key, members := range groups {
		if suffixed[key] {
			sortByPageSuffix(members)
		} else {
			sortByDocumentOrder(members)
		}
	}
	return groups
}

// pageSuffixNumber extracts the page number from "name-X-Y.pdf", or 0.
func pageSuffixNumber(path string) int {
	m := pageSuffixRe.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

func sortByPageSuffix(members []string) {
	sort.SliceStable(members, func(i, j int) bool {
		return pageSuffixNumber(members[i]) < pageSuffixNumber(members[j])
	})
}

// documentOrderRank places members in the package's conventional reading
// order: request letter, then title study, then continuations, then the
// disclosure set, then everything else. Ties break lexically.
func documentOrderRank(path string) int {
	name := strings.ToUpper(filepath.Base(path))
	switch {
	case strings.Contains(name, "CV"), strings.Contains(name, "CARTA"), strings.Contains(name, "COTIZACION"):
		return 1
	case strings.Contains(name, "ET"), strings.Contains(name, "ESTUDIO"):
		return 2
	case strings.Contains(name, "PAGE"), strings.Contains(name, "PAG"), strings.Contains(name, "CONTINUACION"):
		return 3
	case strings.Contains(name, "DIV"):
		if m := divIndexRe.FindStringSubmatch(name); m != nil {
			n, _ := strconv.Atoi(m[1])
			return 4 + n
		}
		return 4
	default:
		return 10
	}
}

func sortByDocumentOrder(members []string) {
	sort.SliceStable(members, func(i, j int) bool {
		ri, rj := documentOrderRank(members[i]), documentOrderRank(members[j])
		if ri != rj {
			return ri < rj
		}
		return strings.ToUpper(filepath.Base(members[i])) < strings.ToUpper(filepath.Base(members[j]))
	})
}
