// Package authority holds the pre-loaded authority link tables: the links
// from a record's name mentions to external authority URIs, and the
// same-entity hints used as a fallback when no primary authority exists.
package authority

import (
	"log/slog"

	"github.com/goldenagents/ggdlinker/internal/identity"
	"github.com/goldenagents/ggdlinker/internal/names"
)

// Link ties a name mention in a record to an authority URI.
type Link struct {
	RecordID string `json:"record_id" yaml:"record_id" parquet:"record_id"`
	Name     string `json:"name" yaml:"name" parquet:"name"`
	URI      string `json:"uri" yaml:"uri" parquet:"uri"`
}

// Hint says that a mention with this exact raw name, carrying URI as a
// secondary identifier, was issued Identifier in an earlier run.
type Hint struct {
	Category   string `json:"category" yaml:"category" parquet:"category"`
	URI        string `json:"uri" yaml:"uri" parquet:"uri"`
	Name       string `json:"name" yaml:"name" parquet:"name"`
	Identifier string `json:"identifier" yaml:"identifier" parquet:"identifier"`
}

// Lookup returns the authority candidates for a name in a record.
type Lookup interface {
	Lookup(recordID, rawName string) []string
}

type linkKey struct {
	recordID string
	name     string
}

type hintKey struct {
	category string
	uri      string
	name     string
}

// Table is an immutable snapshot of links and hints. The zero value and a
// nil *Table are empty tables.
type Table struct {
	links map[linkKey][]string
	hints map[hintKey]string
}

// NewTable indexes links and hints. Candidate order follows the input with
// duplicates dropped. For duplicate hints the first one wins; hints with an
// unknown category are skipped.
func NewTable(links []Link, hints []Hint) *Table {
	t := &Table{
		links: indexLinks(links),
		hints: make(map[hintKey]string),
	}

	for _, h := range hints {
		if h.Identifier == "" {
			continue
		}
		category, err := identity.ParseCategory(h.Category)
		if err != nil {
			slog.Warn("Skipping hint", "uri", h.URI, "name", h.Name, "error", err)
			continue
		}
		k := hintKey{category: string(category), uri: h.URI, name: names.Clean(h.Name)}
		if _, exists := t.hints[k]; !exists {
			t.hints[k] = h.Identifier
		}
	}

	return t
}

// Lookup returns the candidate URIs for rawName in record recordID, or an
// empty slice. It never fails.
func (t *Table) Lookup(recordID, rawName string) []string {
	if t == nil {
		return []string{}
	}
	uris := t.links[linkKey{recordID: recordID, name: names.Clean(rawName)}]
	out := make([]string, len(uris))
	copy(out, uris)
	return out
}

// Hint implements identity.HintSource.
func (t *Table) Hint(category, uri, rawName string) (string, bool) {
	if t == nil {
		return "", false
	}
	id, ok := t.hints[hintKey{category: category, uri: uri, name: names.Clean(rawName)}]
	return id, ok
}

// Len returns the number of distinct link keys and hints.
func (t *Table) Len() (links, hints int) {
	if t == nil {
		return 0, 0
	}
	return len(t.links), len(t.hints)
}

// CrossRefs maps name mentions to opaque cross-reference URIs, such as
// links to genealogical event records. A nil *CrossRefs is empty.
type CrossRefs struct {
	refs map[linkKey][]string
}

// NewCrossRefs indexes cross-references the same way NewTable indexes links.
func NewCrossRefs(refs []Link) *CrossRefs {
	return &CrossRefs{refs: indexLinks(refs)}
}

// CrossReferences returns the cross-reference URIs for rawName in record
// recordID, or an empty slice.
func (c *CrossRefs) CrossReferences(recordID, rawName string) []string {
	if c == nil {
		return []string{}
	}
	uris := c.refs[linkKey{recordID: recordID, name: names.Clean(rawName)}]
	out := make([]string, len(uris))
	copy(out, uris)
	return out
}

// Len returns the number of distinct mention keys.
func (c *CrossRefs) Len() int {
	if c == nil {
		return 0
	}
	return len(c.refs)
}

func indexLinks(links []Link) map[linkKey][]string {
	index := make(map[linkKey][]string)
	for _, l := range links {
		if l.URI == "" {
			continue
		}
		k := linkKey{recordID: l.RecordID, name: names.Clean(l.Name)}
		if !contains(index[k], l.URI) {
			index[k] = append(index[k], l.URI)
		}
	}
	return index
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
