package eval

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/goldenagents/ggdlinker/internal/names"
)

// EvalConfig represents the configuration section of the eval YAML
type EvalConfig struct {
	GoldPath  string `yaml:"goldpath"`
	RulesPath string `yaml:"rulespath,omitempty"`
	Cases     int    `yaml:"cases"`
	Timestamp string `yaml:"timestamp"`
}

// EvalResult represents a single evaluation result
type EvalResult struct {
	Input           string                 `yaml:"input"`
	Expected        []names.StructuredName `yaml:"expected"`
	Actual          []names.StructuredName `yaml:"actual"`
	OverallScore    float64                `yaml:"overallscore"`
	FieldsMatched   int                    `yaml:"fieldsmatched"`
	FieldsMissing   int                    `yaml:"fieldsmissing"`
	FieldsIncorrect int                    `yaml:"fieldsincorrect"`
	Mismatches      map[string]FieldMatch  `yaml:"mismatches,omitempty"`
}

// EvalReport represents the complete evaluation output
type EvalReport struct {
	Config   EvalConfig         `yaml:"config"`
	Accuracy map[string]float64 `yaml:"accuracy"`
	Overall  float64            `yaml:"overall"`
	Results  []EvalResult       `yaml:"results"`
}

// SaveToYAML writes the evaluation to dir/<timestamp>.yaml and returns the path.
func SaveToYAML(dir, rulesPath string, agg *AggregateResults) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create evals directory: %w", err)
	}

	timestamp := agg.EvaluationDate.Format("2006-01-02_15-04-05")

	report := EvalReport{
		Config: EvalConfig{
			GoldPath:  agg.GoldPath,
			RulesPath: rulesPath,
			Cases:     agg.TotalCases,
			Timestamp: timestamp,
		},
		Accuracy: make(map[string]float64, len(agg.Fields)),
		Overall:  agg.OverallAccuracy,
		Results:  make([]EvalResult, 0, len(agg.Results)),
	}

	for name, stats := range agg.Fields {
		if len(stats.Scores) > 0 {
			report.Accuracy[name] = stats.AverageScore
		}
	}

	for _, r := range agg.Results {
		if r.Error != "" || r.Comparison == nil {
			continue
		}

		result := EvalResult{
			Input:           r.Input,
			Expected:        r.Expected,
			Actual:          r.Actual,
			OverallScore:    r.Comparison.OverallScore,
			FieldsMatched:   r.Comparison.FieldsMatched,
			FieldsMissing:   r.Comparison.FieldsMissing,
			FieldsIncorrect: r.Comparison.FieldsIncorrect,
		}
		for key, match := range r.Comparison.Fields {
			if match.Method == "exact" {
				continue
			}
			if result.Mismatches == nil {
				result.Mismatches = make(map[string]FieldMatch)
			}
			result.Mismatches[key] = match
		}

		report.Results = append(report.Results, result)
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	filename := filepath.Join(dir, "names-"+timestamp+".yaml")
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	slog.Info("Evaluation results saved", "path", filename)
	return filename, nil
}
