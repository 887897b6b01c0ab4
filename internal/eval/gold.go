package eval

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/goldenagents/ggdlinker/internal/dataset"
	"github.com/goldenagents/ggdlinker/internal/names"
)

// GoldCase is one hand-checked parse.
type GoldCase struct {
	Input    string                 `json:"input" yaml:"input"`
	Expected []names.StructuredName `json:"expected" yaml:"expected"`
	Note     string                 `json:"note,omitempty" yaml:"note,omitempty"`
}

// CaseResult is the evaluation of one gold case.
type CaseResult struct {
	Input          string
	Expected       []names.StructuredName
	Actual         []names.StructuredName
	Comparison     *NameComparison
	ProcessingTime time.Duration
	Error          string
}

// LoadGold loads a gold set from a .yaml, .json, .jsonl or .parquet file.
func LoadGold(path string) ([]GoldCase, error) {
	cases, err := dataset.Load[GoldCase](path)
	if err != nil {
		return nil, fmt.Errorf("failed to load gold set: %w", err)
	}
	slog.Info("Gold set loaded", "path", path, "cases", len(cases))
	return cases, nil
}

// Run parses every gold case and compares the result.
func Run(parser *names.Parser, cases []GoldCase) []CaseResult {
	results := make([]CaseResult, 0, len(cases))

	for i, c := range cases {
		result := CaseResult{
			Input:    c.Input,
			Expected: c.Expected,
		}
		if len(c.Expected) == 0 {
			result.Error = "gold case has no expected names"
			slog.Warn("Skipping gold case", "index", i, "input", c.Input, "reason", result.Error)
			results = append(results, result)
			continue
		}

		start := time.Now()
		result.Actual = parser.Parse(c.Input)
		result.ProcessingTime = time.Since(start)
		result.Comparison = CompareNames(c.Expected, result.Actual)

		slog.Debug("Evaluated gold case", "index", i, "input", c.Input, "score", result.Comparison.OverallScore)
		results = append(results, result)
	}

	return results
}
