// Package graph collects RDF triples and encodes them as Turtle or N-Triples.
package graph

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/knakk/rdf"
)

// Format is an output serialization.
type Format string

const (
	Turtle   Format = "turtle"
	NTriples Format = "ntriples"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown graph format")

// ParseFormat parses a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "turtle", "ttl":
		return Turtle, nil
	case "ntriples", "n-triples", "nt":
		return NTriples, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatForPath picks the format from an output file extension, falling
// back to def.
func FormatForPath(path string, def Format) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return def
}

func (f Format) rdf() rdf.Format {
	if f == NTriples {
		return rdf.NTriples
	}
	return rdf.Turtle
}

// Node is an IRI or blank node. It can stand in subject and object position.
type Node interface {
	rdf.Subject
	rdf.Object
}

// Graph is an ordered set of triples. Term errors are sticky: the first one
// is reported by Err and Encode, and later additions are ignored. Build each
// unit of work in its own Graph and Merge it once it succeeded.
type Graph struct {
	triples []rdf.Triple
	seen    map[string]struct{}
	err     error
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{seen: make(map[string]struct{})}
}

// Node returns the node for id: a blank node for "_:label", otherwise an IRI.
func (g *Graph) Node(id string) Node {
	if label, ok := strings.CutPrefix(id, "_:"); ok {
		b, err := rdf.NewBlank(label)
		if err != nil {
			g.fail(fmt.Errorf("failed to create blank node %q: %w", id, err))
			return nil
		}
		return b
	}
	return g.iri(id)
}

func (g *Graph) iri(s string) rdf.IRI {
	iri, err := rdf.NewIRI(s)
	if err != nil {
		g.fail(fmt.Errorf("failed to create IRI %q: %w", s, err))
	}
	return iri
}

func (g *Graph) fail(err error) {
	if g.err == nil {
		g.err = err
	}
}

// Add adds one triple. Duplicates are dropped.
func (g *Graph) Add(subj rdf.Subject, pred string, obj rdf.Object) {
	if g.err != nil || subj == nil || obj == nil {
		return
	}
	p := g.iri(pred)
	if g.err != nil {
		return
	}
	g.add(subj, p, obj)
}

func (g *Graph) add(subj rdf.Subject, p rdf.Predicate, obj rdf.Object) {
	key := subj.Serialize(rdf.NTriples) + " " + p.Serialize(rdf.NTriples) + " " + obj.Serialize(rdf.NTriples)
	if _, dup := g.seen[key]; dup {
		return
	}
	g.seen[key] = struct{}{}
	g.triples = append(g.triples, rdf.Triple{Subj: subj, Pred: p, Obj: obj})
}

// Merge adds the triples of o. A graph with an error is not merged and its
// error is returned.
func (g *Graph) Merge(o *Graph) error {
	if o.err != nil {
		return o.err
	}
	for _, tr := range o.triples {
		g.add(tr.Subj, tr.Pred, tr.Obj)
	}
	return nil
}

// Link adds a triple whose object is the node id.
func (g *Graph) Link(subj rdf.Subject, pred, id string) {
	if id == "" {
		return
	}
	if obj := g.Node(id); obj != nil {
		g.Add(subj, pred, obj)
	}
}

// Type adds rdf:type triples.
func (g *Graph) Type(subj rdf.Subject, classes ...string) {
	for _, c := range classes {
		g.Link(subj, Type, c)
	}
}

// Literal adds a plain string literal. Empty values are skipped.
func (g *Graph) Literal(subj rdf.Subject, pred, value string) {
	if value == "" {
		return
	}
	lit, err := rdf.NewLiteral(value)
	if err != nil {
		g.fail(fmt.Errorf("failed to create literal: %w", err))
		return
	}
	g.Add(subj, pred, lit)
}

// Int adds an integer literal.
func (g *Graph) Int(subj rdf.Subject, pred string, value int) {
	lit, err := rdf.NewLiteral(value)
	if err != nil {
		g.fail(fmt.Errorf("failed to create literal: %w", err))
		return
	}
	g.Add(subj, pred, lit)
}

// Date adds an xsd:date literal. Empty values are skipped.
func (g *Graph) Date(subj rdf.Subject, pred, value string) {
	if value == "" {
		return
	}
	g.Add(subj, pred, rdf.NewTypedLiteral(value, g.iri(XSDDate)))
}

// Len returns the number of triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns the triples in insertion order.
func (g *Graph) Triples() []rdf.Triple {
	return g.triples
}

// Err returns the first term error.
func (g *Graph) Err() error {
	return g.err
}

// Encode writes the graph to w.
func (g *Graph) Encode(w io.Writer, f Format) error {
	if g.err != nil {
		return g.err
	}

	enc := rdf.NewTripleEncoder(w, f.rdf())
	if f == Turtle {
		enc.Namespaces = Prefixes
	}
	if err := enc.EncodeAll(g.triples); err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush graph: %w", err)
	}
	return nil
}
