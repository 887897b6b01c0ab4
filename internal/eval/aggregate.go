package eval

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// AggregateResults represents aggregated evaluation metrics
type AggregateResults struct {
	TotalCases      int
	SuccessCount    int
	FailureCount    int
	PerfectCases    int
	CountMismatches int

	// Field-level statistics, keyed by field name
	Fields map[string]*FieldStats

	OverallAccuracy float64

	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration

	Results []CaseResult

	EvaluationDate time.Time
	GoldPath       string
}

// FieldStats contains statistics for one structured-name field
type FieldStats struct {
	ExactMatches  int
	FuzzyMatches  int
	NoMatches     int
	MissingFields int
	ExtraFields   int
	AverageScore  float64
	Scores        []float64
}

// Aggregate aggregates case results.
func Aggregate(results []CaseResult, goldPath string) *AggregateResults {
	agg := &AggregateResults{
		TotalCases:     len(results),
		Fields:         make(map[string]*FieldStats, len(FieldNames)),
		Results:        results,
		EvaluationDate: time.Now(),
		GoldPath:       goldPath,
	}
	for _, f := range FieldNames {
		agg.Fields[f] = &FieldStats{Scores: []float64{}}
	}

	totalOverallScore := 0.0
	var totalDuration time.Duration

	for _, result := range results {
		totalDuration += result.ProcessingTime

		if result.Error != "" || result.Comparison == nil {
			agg.FailureCount++
			continue
		}
		agg.SuccessCount++

		c := result.Comparison
		if c.CountMismatch {
			agg.CountMismatches++
		}
		if !c.CountMismatch && c.FieldsMatched == len(c.Fields) && c.OverallScore == 1.0 {
			agg.PerfectCases++
		}

		for key, match := range c.Fields {
			stats, ok := agg.Fields[BaseField(key)]
			if !ok {
				continue
			}
			aggregateFieldStats(stats, match)
		}

		totalOverallScore += c.OverallScore
	}

	for _, stats := range agg.Fields {
		stats.AverageScore = calculateAverage(stats.Scores)
	}

	if agg.SuccessCount > 0 {
		agg.OverallAccuracy = totalOverallScore / float64(agg.SuccessCount)
		agg.AverageProcessingTime = totalDuration / time.Duration(agg.SuccessCount)
	}
	agg.TotalProcessingTime = totalDuration

	return agg
}

// aggregateFieldStats updates field statistics
func aggregateFieldStats(stats *FieldStats, match FieldMatch) {
	stats.Scores = append(stats.Scores, match.Score)

	switch match.Method {
	case "exact":
		stats.ExactMatches++
	case "normalized", "fuzzy_high", "fuzzy_medium", "substring":
		stats.FuzzyMatches++
	case "no_match":
		stats.NoMatches++
	case "actual_missing":
		stats.MissingFields++
	case "extra":
		stats.ExtraFields++
	}
}

// calculateAverage calculates the average of a slice of scores
func calculateAverage(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, score := range scores {
		sum += score
	}

	return sum / float64(len(scores))
}

// PrintSummary prints a human-readable summary of the evaluation
func (a *AggregateResults) PrintSummary(w io.Writer) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 70))
	fmt.Fprintln(w, "NAME PARSER EVALUATION SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "Evaluation Date: %s\n", a.EvaluationDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Gold Set: %s\n", a.GoldPath)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PROCESSING STATISTICS")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "Total Cases: %d\n", a.TotalCases)
	fmt.Fprintf(w, "Evaluated: %d (%.1f%%)\n", a.SuccessCount, percent(a.SuccessCount, a.TotalCases))
	fmt.Fprintf(w, "Skipped: %d (%.1f%%)\n", a.FailureCount, percent(a.FailureCount, a.TotalCases))
	fmt.Fprintf(w, "Perfect Parses: %d (%.1f%%)\n", a.PerfectCases, percent(a.PerfectCases, a.SuccessCount))
	fmt.Fprintf(w, "Name Count Mismatches: %d\n", a.CountMismatches)
	fmt.Fprintf(w, "Average Processing Time: %s\n", a.AverageProcessingTime)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "FIELD-LEVEL ACCURACY")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, name := range FieldNames {
		stats := a.Fields[name]
		if stats == nil || len(stats.Scores) == 0 {
			continue
		}
		printFieldStats(w, name, *stats)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "OVERALL SCORE")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "Overall Accuracy: %.2f%% (%.3f)\n", a.OverallAccuracy*100, a.OverallAccuracy)
	fmt.Fprintln(w, strings.Repeat("=", 70))
}

// printFieldStats prints statistics for a single field
func printFieldStats(w io.Writer, fieldName string, stats FieldStats) {
	fmt.Fprintf(w, "\n%s:\n", fieldName)
	fmt.Fprintf(w, "  Average Score: %.2f%% (%.3f)\n", stats.AverageScore*100, stats.AverageScore)
	fmt.Fprintf(w, "  Exact Matches: %d\n", stats.ExactMatches)
	fmt.Fprintf(w, "  Fuzzy Matches: %d\n", stats.FuzzyMatches)
	fmt.Fprintf(w, "  No Matches: %d\n", stats.NoMatches)
	fmt.Fprintf(w, "  Missing Fields: %d\n", stats.MissingFields)
	fmt.Fprintf(w, "  Extra Fields: %d\n", stats.ExtraFields)
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
