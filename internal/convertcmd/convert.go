package convertcmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goldenagents/ggdlinker/internal/authority"
	"github.com/goldenagents/ggdlinker/internal/config"
	"github.com/goldenagents/ggdlinker/internal/graph"
	"github.com/goldenagents/ggdlinker/internal/identity"
	"github.com/goldenagents/ggdlinker/internal/transform"
)

// Options are the convert command flags.
type Options struct {
	Input         string
	Output        string
	ConfigPath    string
	LinksPath     string
	CrossRefsPath string
	HintsPath     string
	RulesPath     string
	Format        string
	Reproducible  bool
	Strict        bool

	formatSet       bool
	reproducibleSet bool
}

// Summary reports what a conversion did.
type Summary struct {
	Records   int
	Skipped   int
	Triples   int
	Format    graph.Format
	Resolver  identity.Stats
	Transform transform.Stats
	Duration  time.Duration
}

func executeConvert(ctx context.Context, opts Options) (*Summary, error) {
	start := time.Now()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, opts)

	format := graph.FormatForPath(opts.Output, cfg.OutputFormat())
	if opts.formatSet {
		if format, err = graph.ParseFormat(opts.Format); err != nil {
			return nil, err
		}
	}

	slog.Info("Starting conversion",
		"input", opts.Input,
		"output", opts.Output,
		"format", format,
		"base", cfg.BaseIRI,
		"reproducible", cfg.Reproducible)

	table, err := authority.LoadTable(cfg.LinksPath, cfg.HintsPath)
	if err != nil {
		return nil, err
	}

	crossRefs, err := authority.LoadCrossRefs(cfg.CrossRefsPath)
	if err != nil {
		return nil, err
	}

	resolverOpts, err := cfg.ResolverOptions()
	if err != nil {
		return nil, err
	}
	resolver := identity.NewResolver(append(resolverOpts, identity.WithHints(table))...)

	tr := transform.New(resolver, table,
		transform.WithBaseIRI(cfg.BaseIRI),
		transform.WithPrinterRole(cfg.PrinterRole),
		transform.WithCrossReferences(crossRefs),
	)

	records, skipped, err := eachRecord(ctx, opts.Input, opts.Strict, tr.Transform)
	if err != nil {
		return nil, fmt.Errorf("failed to convert dump: %w", err)
	}

	out, err := createOutput(opts.Output)
	if err != nil {
		return nil, err
	}
	if err := tr.Graph().Encode(out, format); err != nil {
		out.Close()
		return nil, err
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to close output file: %w", err)
	}

	summary := &Summary{
		Records:   records,
		Skipped:   skipped,
		Triples:   tr.Graph().Len(),
		Format:    format,
		Resolver:  resolver.Stats(),
		Transform: tr.Stats(),
		Duration:  time.Since(start),
	}

	slog.Info("Conversion complete",
		"records", summary.Records,
		"skipped", summary.Skipped,
		"triples", summary.Triples,
		"authority", summary.Resolver.Authority,
		"cached", summary.Resolver.Cached,
		"hinted", summary.Resolver.Hinted,
		"minted", summary.Resolver.Minted,
		"dropped", summary.Resolver.Dropped,
		"blank", summary.Resolver.Blank,
		"unknown_names", summary.Resolver.Unknown,
		"authors_issued", resolver.Issued(identity.Author),
		"printers_issued", resolver.Issued(identity.Printer),
		"duration", summary.Duration)

	return summary, nil
}

func applyFlags(cfg *config.Config, opts Options) {
	if opts.LinksPath != "" {
		cfg.LinksPath = opts.LinksPath
	}
	if opts.CrossRefsPath != "" {
		cfg.CrossRefsPath = opts.CrossRefsPath
	}
	if opts.HintsPath != "" {
		cfg.HintsPath = opts.HintsPath
	}
	if opts.RulesPath != "" {
		cfg.RulesPath = opts.RulesPath
	}
	if opts.reproducibleSet || opts.Reproducible {
		cfg.Reproducible = opts.Reproducible
	}
}
