package convertcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goldenagents/ggdlinker/internal/ggd"
)

// openInput opens path, or stdin for "-".
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dump: %w", err)
	}
	return f, nil
}

// createOutput creates path, or returns stdout for "" and "-".
func createOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// eachRecord parses every record of the dump at path and calls fn with it.
// Records that fail to parse, or for which fn fails, are logged and skipped
// unless strict is set.
func eachRecord(ctx context.Context, path string, strict bool, fn func(*ggd.Record) error) (processed, skipped int, err error) {
	in, err := openInput(path)
	if err != nil {
		return 0, 0, err
	}
	defer in.Close()

	reader := ggd.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return processed, skipped, err
		}

		raw, err := reader.Next()
		if err == io.EOF {
			return processed, skipped, nil
		}
		if err != nil {
			return processed, skipped, err
		}

		rec, err := ggd.Parse(raw)
		if err != nil {
			if strict {
				return processed, skipped, fmt.Errorf("failed to parse record %q: %w", raw.Get("id"), err)
			}
			slog.Warn("Skipping invalid record", "id", raw.Get("id"), "error", err)
			skipped++
			continue
		}

		if err := fn(rec); err != nil {
			if strict {
				return processed, skipped, err
			}
			slog.Warn("Skipping record", "id", rec.ID, "error", err)
			skipped++
			continue
		}
		processed++

		if processed%1000 == 0 {
			slog.Info("Processing records", "processed", processed, "skipped", skipped)
		}
	}
}
