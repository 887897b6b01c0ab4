package authority

import (
	"fmt"
	"log/slog"

	"github.com/goldenagents/ggdlinker/internal/dataset"
)

// ErrUnsupportedFormat is returned for table files with an unknown extension.
var ErrUnsupportedFormat = dataset.ErrUnsupportedFormat

// LoadLinks loads authority links from a .parquet, .jsonl, .json or .yaml file.
func LoadLinks(path string) ([]Link, error) {
	return dataset.Load[Link](path)
}

// LoadHints loads same-entity hints from a .parquet, .jsonl, .json or .yaml file.
func LoadHints(path string) ([]Hint, error) {
	return dataset.Load[Hint](path)
}

// LoadCrossRefs loads cross-references, stored in the link layout, from a
// .parquet, .jsonl, .json or .yaml file. An empty path gives an empty set.
func LoadCrossRefs(path string) (*CrossRefs, error) {
	if path == "" {
		return NewCrossRefs(nil), nil
	}
	refs, err := dataset.Load[Link](path)
	if err != nil {
		return nil, fmt.Errorf("failed to load cross-references: %w", err)
	}
	c := NewCrossRefs(refs)
	slog.Info("Cross-references loaded", "refs", len(refs), "keys", c.Len())
	return c, nil
}

// LoadTable loads the link and hint files into a table. Either path may be
// empty.
func LoadTable(linksPath, hintsPath string) (*Table, error) {
	var (
		links []Link
		hints []Hint
		err   error
	)

	if linksPath != "" {
		if links, err = LoadLinks(linksPath); err != nil {
			return nil, fmt.Errorf("failed to load authority links: %w", err)
		}
	}
	if hintsPath != "" {
		if hints, err = LoadHints(hintsPath); err != nil {
			return nil, fmt.Errorf("failed to load hints: %w", err)
		}
	}

	t := NewTable(links, hints)
	nLinks, nHints := t.Len()
	slog.Info("Authority table loaded", "links", len(links), "link_keys", nLinks, "hints", nHints)
	return t, nil
}
