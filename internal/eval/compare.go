// Package eval measures name-parser accuracy against a hand-checked gold set.
package eval

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/goldenagents/ggdlinker/internal/names"
)

// FieldMatch represents the comparison result for a single field
type FieldMatch struct {
	Expected string  `yaml:"expected,omitempty"`
	Actual   string  `yaml:"actual,omitempty"`
	Score    float64 `yaml:"score"`  // 0.0 to 1.0
	Method   string  `yaml:"method"` // "exact", "normalized", "substring", "fuzzy_high", "fuzzy_medium", "no_match", "actual_missing", "extra"
	Notes    string  `yaml:"notes,omitempty"`
}

// NameComparison is the field-by-field comparison of one parse.
type NameComparison struct {
	Fields           map[string]FieldMatch
	OverallScore     float64
	FieldsMatched    int
	FieldsMissing    int
	FieldsIncorrect  int
	LevenshteinTotal int
	CountMismatch    bool
}

// FieldNames lists the compared fields in report order.
var FieldNames = []string{
	"literal",
	"given_name",
	"initials",
	"surname_prefix",
	"base_surname",
	"patronym",
	"honorific_prefix",
	"suffix",
}

// CompareNames compares parser output with the expected names, pairing
// them by position. Fields empty on both sides are not scored.
func CompareNames(expected, actual []names.StructuredName) *NameComparison {
	comparison := &NameComparison{
		Fields:        make(map[string]FieldMatch),
		CountMismatch: len(expected) != len(actual),
	}

	n := max(len(expected), len(actual))
	totalScore := 0.0
	fieldCount := 0

	for i := 0; i < n; i++ {
		var exp, act names.StructuredName
		if i < len(expected) {
			exp = expected[i]
		}
		if i < len(actual) {
			act = actual[i]
		}
		expFields, actFields := exp.Fields(), act.Fields()

		for _, field := range FieldNames {
			if expFields[field] == "" && actFields[field] == "" {
				continue
			}

			match := compareField(expFields[field], actFields[field])
			switch match.Method {
			case "exact", "normalized", "fuzzy_high":
				comparison.FieldsMatched++
			case "actual_missing":
				comparison.FieldsMissing++
			default:
				comparison.FieldsIncorrect++
			}
			if match.Expected != "" && match.Actual != "" {
				comparison.LevenshteinTotal += levenshteinDistance(match.Expected, match.Actual)
			}

			comparison.Fields[fieldKey(field, i, n)] = match
			totalScore += match.Score
			fieldCount++
		}
	}

	if fieldCount > 0 {
		comparison.OverallScore = totalScore / float64(fieldCount)
	}
	return comparison
}

// Keys returns the compared field keys in sorted order.
func (c *NameComparison) Keys() []string {
	keys := make([]string, 0, len(c.Fields))
	for k := range c.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fieldKey(field string, i, n int) string {
	if n <= 1 {
		return field
	}
	return fmt.Sprintf("%s[%d]", field, i)
}

// BaseField strips the position suffix from a field key.
func BaseField(key string) string {
	if i := strings.IndexByte(key, '['); i >= 0 {
		return key[:i]
	}
	return key
}

// compareField performs detailed field comparison with fuzzy matching
func compareField(expected, actual string) FieldMatch {
	match := FieldMatch{
		Expected: expected,
		Actual:   actual,
	}

	if expected == "" {
		match.Method = "extra"
		match.Notes = "Parser produced a value where none was expected"
		return match
	}

	if actual == "" {
		match.Method = "actual_missing"
		match.Notes = "Parser left this field empty"
		return match
	}

	if expected == actual {
		match.Score = 1.0
		match.Method = "exact"
		return match
	}

	expNorm := normalizeForComparison(expected)
	actNorm := normalizeForComparison(actual)

	// Casing or punctuation only
	if expNorm == actNorm {
		match.Score = 0.9
		match.Method = "normalized"
		match.Notes = "Match after case and punctuation folding"
		return match
	}

	if expNorm != "" && actNorm != "" && (strings.Contains(actNorm, expNorm) || strings.Contains(expNorm, actNorm)) {
		match.Score = 0.6
		match.Method = "substring"
		match.Notes = "Partial match (substring found)"
		return match
	}

	similarity := calculateSimilarity(expNorm, actNorm)
	match.Score = similarity
	if similarity > 0.8 {
		match.Method = "fuzzy_high"
		match.Notes = fmt.Sprintf("High similarity (%.2f)", similarity)
	} else if similarity > 0.5 {
		match.Method = "fuzzy_medium"
		match.Notes = fmt.Sprintf("Medium similarity (%.2f)", similarity)
	} else {
		match.Method = "no_match"
		match.Notes = fmt.Sprintf("Low similarity (%.2f)", similarity)
	}

	return match
}

var punctuation = regexp.MustCompile(`[^\pL\pN\s]`)

// normalizeForComparison lowercases, drops punctuation and collapses whitespace.
func normalizeForComparison(text string) string {
	text = strings.ToLower(text)
	text = punctuation.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// calculateSimilarity calculates similarity ratio (0.0 to 1.0) using Levenshtein distance
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 || len(r2) == 0 {
		return 0.0
	}

	distance := levenshteinDistance(s1, s2)
	return 1.0 - float64(distance)/float64(max(len(r1), len(r2)))
}

// levenshteinDistance counts rune edits between two strings.
func levenshteinDistance(s1, s2 string) int {
	a, b := []rune(s1), []rune(s2)
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
