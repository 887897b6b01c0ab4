package convertcmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/goldenagents/ggdlinker/internal/ggd"
)

func executeRecords(ctx context.Context, input, output string, strict bool) ([]*ggd.Record, error) {
	records := []*ggd.Record{}
	_, skipped, err := eachRecord(ctx, input, strict, func(rec *ggd.Record) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read dump: %w", err)
	}

	out, err := createOutput(output)
	if err != nil {
		return nil, err
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		out.Close()
		return nil, fmt.Errorf("failed to encode records to JSON: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to close output file: %w", err)
	}

	slog.Info("Records written", "records", len(records), "skipped", skipped, "output", output)
	return records, nil
}
