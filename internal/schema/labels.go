package schema

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	cloLabelRe    = regexp.MustCompile(`^CLO\s*\d+$`)
	trailingNumRe = regexp.MustCompile(`(\d+)\s*$`)
)

// LabelNumber extracts the trailing integer from an outcome label such as
// "CLO 3" or "PLO 12". The second return value is false when the label has
// no parseable integer suffix.
func LabelNumber(label string) (int, bool) {
	match := trailingNumRe.FindStringSubmatch(strings.TrimSpace(label))
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsCLOLabel reports whether a trimmed label matches the "CLO <n>" pattern.
func IsCLOLabel(label string) bool {
	return cloLabelRe.MatchString(strings.TrimSpace(label))
}

// SortLabels orders outcome labels ascending by their trailing integer.
// Labels without a parseable suffix sort after all numbered ones, keeping
// their original relative order so malformed input stays deterministic.
func SortLabels(labels []string) []string {
	sorted := make([]string, len(labels))
	copy(sorted, labels)

	sort.SliceStable(sorted, func(i, j int) bool {
		ni, oki := LabelNumber(sorted[i])
		nj, okj := LabelNumber(sorted[j])
		if oki && okj {
			return ni < nj
		}
		if oki != okj {
			return oki
		}
		return false
	})

	return sorted
}
