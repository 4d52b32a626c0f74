// Package author provides author-list parsing and matching for search queries.
//
// Authors are stored as a single semicolon-separated string; matching is
// done over the split name set, case-insensitively.
package author

import "strings"

// SplitList splits a semicolon-separated author string into trimmed names,
// dropping empties.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		name := strings.TrimSpace(part)
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// NormalizeList splits like SplitList and lower-cases every name.
func NormalizeList(s string) []string {
	names := SplitList(s)
	for i, n := range names {
		names[i] = strings.ToLower(n)
	}
	return names
}

// MatchesAny reports whether at least one of the query names equals at least
// one of the names in entryAuthors, after trimming and lower-casing both
// sides. This is set-intersection matching, not full-string comparison:
// a query for "Smith" matches "Jones; Smith; Lee".
func MatchesAny(entryAuthors string, queryNames []string) bool {
	entry := NormalizeList(entryAuthors)
	if len(entry) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(entry))
	for _, n := range entry {
		set[n] = struct{}{}
	}
	for _, q := range queryNames {
		q = strings.ToLower(strings.TrimSpace(q))
		if q == "" {
			continue
		}
		if _, ok := set[q]; ok {
			return true
		}
	}
	return false
}
