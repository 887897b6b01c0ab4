package eval

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/goldenagents/ggdlinker/internal/names"
)

func TestCompareField(t *testing.T) {
	tests := []struct {
		name       string
		expected   string
		actual     string
		wantMethod string
		minScore   float64
		maxScore   float64
	}{
		{"exact", "Vondel", "Vondel", "exact", 1.0, 1.0},
		{"case only", "IJsbrand", "Ijsbrand", "normalized", 0.9, 0.9},
		{"substring", "van der", "van", "substring", 0.6, 0.6},
		{"fuzzy", "Pietersz", "Pieterz", "fuzzy_high", 0.8, 1.0},
		{"no match", "Vondel", "Hooft", "no_match", 0.0, 0.5},
		{"missing", "Jan", "", "actual_missing", 0.0, 0.0},
		{"extra", "", "Jan", "extra", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := compareField(tt.expected, tt.actual)
			if match.Method != tt.wantMethod {
				t.Errorf("Expected method %s, got %s", tt.wantMethod, match.Method)
			}
			if match.Score < tt.minScore || match.Score > tt.maxScore {
				t.Errorf("Expected score in [%.2f, %.2f], got %.2f", tt.minScore, tt.maxScore, match.Score)
			}
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"Honoré", "Honore", 1},
	}

	for _, tt := range tests {
		if got := levenshteinDistance(tt.s1, tt.s2); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}

func TestCompareNames(t *testing.T) {
	expected := []names.StructuredName{{Literal: "Jan van der Meer", GivenName: "Jan", SurnamePrefix: "van der", BaseSurname: "Meer"}}

	c := CompareNames(expected, expected)
	assert.Equal(t, 1.0, c.OverallScore)
	assert.Equal(t, 4, c.FieldsMatched)
	assert.False(t, c.CountMismatch)
	assert.Equal(t, []string{"base_surname", "given_name", "literal", "surname_prefix"}, c.Keys())

	wrong := []names.StructuredName{{Literal: "Jan van der Meer", GivenName: "Jan van der", BaseSurname: "Meer"}}
	c = CompareNames(expected, wrong)
	assert.Less(t, c.OverallScore, 1.0)
	assert.Equal(t, 1, c.FieldsMissing)
	assert.Equal(t, "substring", c.Fields["given_name"].Method)
}

func TestCompareNamesCountMismatch(t *testing.T) {
	expected := []names.StructuredName{
		{Literal: "Jan Jansz", GivenName: "Jan", Patronym: "Jansz"},
		{Literal: "Piet", BaseSurname: "Piet"},
	}
	actual := []names.StructuredName{{Literal: "Jan Jansz", GivenName: "Jan", Patronym: "Jansz"}}

	c := CompareNames(expected, actual)
	assert.True(t, c.CountMismatch)
	assert.Contains(t, c.Fields, "literal[0]")
	assert.Equal(t, "actual_missing", c.Fields["literal[1]"].Method)
	assert.Equal(t, "base_surname", BaseField("base_surname[1]"))
}

func TestRunAndAggregate(t *testing.T) {
	cases := []GoldCase{
		{
			Input:    "Vondel, Joost van den",
			Expected: []names.StructuredName{{Literal: "Joost van den Vondel", GivenName: "Joost", SurnamePrefix: "van den", BaseSurname: "Vondel"}},
		},
		{
			Input:    "J. van Vondel",
			Expected: []names.StructuredName{{Literal: "J. van Vondel", Initials: "J.", SurnamePrefix: "van", BaseSurname: "Vondel"}},
		},
		{
			Input:    "Jan van der Meer",
			Expected: []names.StructuredName{{Literal: "Jan van der Meer", GivenName: "Jan", BaseSurname: "van der Meer"}},
		},
		{
			Input: "no expectation",
		},
	}

	results := Run(names.NewParser(names.DefaultRules()), cases)
	require.Len(t, results, 4)
	assert.NotEmpty(t, results[3].Error)

	agg := Aggregate(results, "gold.yaml")
	assert.Equal(t, 4, agg.TotalCases)
	assert.Equal(t, 3, agg.SuccessCount)
	assert.Equal(t, 1, agg.FailureCount)
	assert.Equal(t, 2, agg.PerfectCases)
	assert.Equal(t, 0, agg.CountMismatches)

	assert.Equal(t, 3, agg.Fields["literal"].ExactMatches)
	assert.Equal(t, 1, agg.Fields["surname_prefix"].ExtraFields)
	assert.Equal(t, 1, agg.Fields["base_surname"].FuzzyMatches)
	assert.Less(t, agg.OverallAccuracy, 1.0)
	assert.Greater(t, agg.OverallAccuracy, 0.5)

	var buf bytes.Buffer
	agg.PrintSummary(&buf)
	assert.Contains(t, buf.String(), "NAME PARSER EVALUATION SUMMARY")
	assert.Contains(t, buf.String(), "surname_prefix:")
}

func TestAggregateEmpty(t *testing.T) {
	agg := Aggregate(nil, "")
	if agg.TotalCases != 0 || agg.OverallAccuracy != 0 {
		t.Errorf("Expected empty aggregate, got %+v", agg)
	}

	var buf bytes.Buffer
	agg.PrintSummary(&buf)
}

func TestLoadGold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gold.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- input: "Vondel, Joost van den"
  expected:
    - literal: Joost van den Vondel
      given_name: Joost
      surname_prefix: van den
      base_surname: Vondel
- input: "Jan Jansz / Piet Pietersz"
  note: co-listed
  expected:
    - literal: Jan Jansz
    - literal: Piet Pietersz
`), 0644))

	cases, err := LoadGold(path)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "van den", cases[0].Expected[0].SurnamePrefix)
	assert.Len(t, cases[1].Expected, 2)

	_, err = LoadGold(filepath.Join(t.TempDir(), "gold.txt"))
	assert.Error(t, err)
}

func TestSaveToYAML(t *testing.T) {
	results := []CaseResult{
		{
			Input:          "Jan",
			Expected:       []names.StructuredName{{Literal: "Jan", BaseSurname: "Jan"}},
			Actual:         []names.StructuredName{{Literal: "Jan", BaseSurname: "Jan"}},
			ProcessingTime: time.Millisecond,
		},
		{Input: "broken", Error: "gold case has no expected names"},
	}
	results[0].Comparison = CompareNames(results[0].Expected, results[0].Actual)

	agg := Aggregate(results, "gold.yaml")
	dir := filepath.Join(t.TempDir(), "evals")

	path, err := SaveToYAML(dir, "rules.yaml", agg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var report EvalReport
	require.NoError(t, yaml.Unmarshal(data, &report))
	assert.Equal(t, "gold.yaml", report.Config.GoldPath)
	assert.Equal(t, "rules.yaml", report.Config.RulesPath)
	assert.Equal(t, 2, report.Config.Cases)
	assert.Len(t, report.Results, 1)
	assert.Empty(t, report.Results[0].Mismatches)
	assert.Equal(t, 1.0, report.Accuracy["literal"])
}
