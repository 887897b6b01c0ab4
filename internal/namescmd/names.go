package namescmd

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goldenagents/ggdlinker/internal/config"
	"github.com/goldenagents/ggdlinker/internal/eval"
	"github.com/goldenagents/ggdlinker/internal/names"
)

// ParseResult is one parsed argument.
type ParseResult struct {
	Input string                 `yaml:"input"`
	Names []names.StructuredName `yaml:"names"`
}

func executeParse(w io.Writer, rulesPath string, inputs []string) error {
	parser, err := (&config.Config{RulesPath: rulesPath}).Parser()
	if err != nil {
		return err
	}

	results := make([]ParseResult, 0, len(inputs))
	for _, in := range inputs {
		results = append(results, ParseResult{Input: in, Names: parser.Parse(in)})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("failed to encode names: %w", err)
	}
	return encoder.Close()
}

func executeEval(w io.Writer, goldPath, rulesPath, outputDir string) (*eval.AggregateResults, error) {
	parser, err := (&config.Config{RulesPath: rulesPath}).Parser()
	if err != nil {
		return nil, err
	}

	cases, err := eval.LoadGold(goldPath)
	if err != nil {
		return nil, err
	}

	agg := eval.Aggregate(eval.Run(parser, cases), goldPath)
	agg.PrintSummary(w)

	path, err := eval.SaveToYAML(outputDir, rulesPath, agg)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "\nEvaluation results saved to: %s\n", path)

	return agg, nil
}
