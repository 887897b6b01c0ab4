package identity

import (
	"regexp"
	"slices"
	"sort"
)

// DefaultPrimaryPatterns match the authority namespaces whose URIs become
// identifiers outright: the KB national thesaurus of names and VIAF.
var DefaultPrimaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://data\.bibliotheken\.nl/id/thes/p[0-9]+[0-9Xx]$`),
	regexp.MustCompile(`^https?://viaf\.org/viaf/[0-9]+/?$`),
}

// CompilePatterns compiles primary-authority patterns.
func CompilePatterns(exprs []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

// classify picks the primary URI from candidates. Candidates are scanned in
// reverse lexicographic order and the first match wins; every other
// candidate is secondary.
func classify(candidates []string, patterns []*regexp.Regexp) (primary string, secondary []string) {
	ordered := slices.Clone(candidates)
	sort.Sort(sort.Reverse(sort.StringSlice(ordered)))

	for _, c := range ordered {
		if primary == "" && matchesAny(c, patterns) {
			primary = c
			continue
		}
		if c != primary {
			secondary = append(secondary, c)
		}
	}
	return primary, secondary
}

func matchesAny(uri string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(uri) {
			return true
		}
	}
	return false
}

// mergeURIs returns the sorted union of the given lists without empties.
func mergeURIs(lists ...[]string) []string {
	var merged []string
	for _, l := range lists {
		for _, u := range l {
			if u != "" {
				merged = append(merged, u)
			}
		}
	}
	sort.Strings(merged)
	return slices.Compact(merged)
}

func sortedCopy(s []string) []string {
	c := slices.Clone(s)
	sort.Strings(c)
	return slices.Compact(c)
}
