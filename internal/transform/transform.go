// Package transform turns normalized GGD records into graph nodes.
package transform

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/goldenagents/ggdlinker/internal/authority"
	"github.com/goldenagents/ggdlinker/internal/ggd"
	"github.com/goldenagents/ggdlinker/internal/graph"
	"github.com/goldenagents/ggdlinker/internal/identity"
)

// Resolver resolves name mentions to identities.
type Resolver interface {
	Resolve(m identity.Mention) (*identity.Identity, bool)
}

// CrossReferencer supplies opaque same-as URIs for a name in a record, such
// as links to genealogical event records.
type CrossReferencer interface {
	CrossReferences(recordID, rawName string) []string
}

// Stats counts emitted mentions.
type Stats struct {
	Records  int
	Authors  int
	Printers int
	Persons  int
	Dropped  int
	Failed   int
}

func (s *Stats) add(o Stats) {
	s.Records += o.Records
	s.Authors += o.Authors
	s.Printers += o.Printers
	s.Persons += o.Persons
	s.Dropped += o.Dropped
}

// Transformer emits the nodes of every record into one graph.
type Transformer struct {
	resolver    Resolver
	links       authority.Lookup
	crossRefs   CrossReferencer
	base        string
	dataset     string
	printerRole string

	mu         sync.Mutex
	graph      *graph.Graph
	eventTypes map[string]string
	typeIDs    map[string]string
	stats      Stats
}

// Option configures the transformer.
type Option func(*Transformer)

// WithBaseIRI sets the namespace of book identifiers.
func WithBaseIRI(base string) Option {
	return func(t *Transformer) {
		t.base = base
	}
}

// WithPrinterRole sets the person role label that marks printers.
func WithPrinterRole(role string) Option {
	return func(t *Transformer) {
		t.printerRole = role
	}
}

// WithCrossReferences sets the source of mention cross-references.
func WithCrossReferences(src CrossReferencer) Option {
	return func(t *Transformer) {
		t.crossRefs = src
	}
}

// New creates a transformer writing into a fresh graph. links may be nil.
func New(resolver Resolver, links authority.Lookup, opts ...Option) *Transformer {
	t := &Transformer{
		resolver:    resolver,
		links:       links,
		base:        graph.GGD,
		dataset:     graph.GGD,
		printerRole: identity.DefaultPrinterRole,
		graph:       graph.New(),
		eventTypes:  make(map[string]string),
		typeIDs:     make(map[string]string),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Graph returns the graph built so far.
func (t *Transformer) Graph() *graph.Graph {
	return t.graph
}

// Stats returns the mention counts so far.
func (t *Transformer) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// EventContext is the context key of the event a record describes. Authors
// and persons are resolved within it. Distinct record ids give distinct keys.
func EventContext(recordID string) string {
	return "_:event-" + blankLabel(recordID)
}

// recordLabel prefixes the blank node labels of one record. It never
// contains '-', so "<label>-<suffix>" cannot collide across records.
func recordLabel(recordID string) string {
	return "r" + blankLabel(recordID)
}

// build holds the nodes of one record until it is merged.
type build struct {
	g          *graph.Graph
	stats      Stats
	eventTypes []string
}

// Transform adds the nodes of rec to the graph. A record that fails adds
// nothing, and later records are unaffected.
func (t *Transformer) Transform(rec *ggd.Record) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	b := &build{g: graph.New()}
	t.record(b, rec)

	if err := t.graph.Merge(b.g); err != nil {
		for _, label := range b.eventTypes {
			delete(t.typeIDs, t.eventTypes[label])
			delete(t.eventTypes, label)
		}
		t.stats.Failed++
		return fmt.Errorf("failed to transform record %s: %w", rec.ID, err)
	}
	t.stats.add(b.stats)
	return nil
}

func (t *Transformer) record(b *build, rec *ggd.Record) {
	g := b.g
	r := recordLabel(rec.ID)
	ctx := EventContext(rec.ID)

	book := g.Node(t.base + rec.ID)
	g.Type(book, graph.Book)
	g.Literal(book, graph.Name, rec.Title)
	for _, lang := range rec.Languages {
		g.Literal(book, graph.InLanguage, lang)
	}
	g.Literal(book, graph.BibliographicFmt, rec.Format)
	g.Literal(book, graph.CollationFormula, rec.Collate)
	if pages, ok := rec.NumberOfPages(); ok {
		g.Int(book, graph.NumberOfPages, pages)
	}

	for i, a := range rec.Authors {
		ident, ok := t.resolve(identity.Author, "", a.Name, rec.ID, ctx)
		if !ok {
			continue
		}
		b.stats.Authors++

		roleID := fmt.Sprintf("_:%s-author-%d", r, i+1)
		role := g.Node(roleID)
		g.Type(role, graph.Role)
		g.Literal(role, graph.Name, a.Name)
		g.Link(role, graph.Author, ident.ID)
		g.Link(book, graph.Author, roleID)
		person(g, ident, a.Name)
	}

	pubID := "_:" + r + "-publication"
	pub := g.Node(pubID)
	g.Type(pub, graph.PublicationEvent)
	g.Literal(pub, graph.Description, rec.Impressum)
	g.Link(book, graph.Publication, pubID)

	t.event(b, book, ctx, rec.Event)

	for i, p := range rec.Persons {
		category := identity.CategoryForRole(p.Role, t.printerRole)
		ident, ok := t.resolve(category, p.Role, p.Name, rec.ID, ctx)
		if !ok {
			b.stats.Dropped++
			continue
		}
		person(g, ident, p.Name)

		if category == identity.Printer {
			b.stats.Printers++
			g.Link(pub, graph.PublishedBy, ident.ID)
			continue
		}

		b.stats.Persons++
		roleID := fmt.Sprintf("_:%s-person-%d", r, i+1)
		role := g.Node(roleID)
		g.Type(role, graph.Role)
		g.Link(role, graph.About, ident.ID)
		g.Literal(role, graph.RoleName, p.Role)
		g.Literal(role, graph.Name, p.Name)
		g.Link(book, graph.About, roleID)
	}

	for i, item := range rec.Items {
		itemID := fmt.Sprintf("_:%s-item-%d", r, i+1)
		node := g.Node(itemID)
		g.Type(node, graph.Book, graph.ArchiveComponent)
		g.Literal(node, graph.HoldingArchive, item.HoldingArchive)
		g.Literal(node, graph.ItemLocation, item.Location)
		g.Literal(node, graph.Comment, item.Comment)
		g.Link(node, graph.ExampleOfWork, t.base+rec.ID)
		g.Link(book, graph.WorkExample, itemID)
	}

	t.document(g, book, rec)
	b.stats.Records++
}

func (t *Transformer) resolve(c identity.Category, role, name, recordID, ctx string) (*identity.Identity, bool) {
	var candidates, crossRefs []string
	if t.links != nil {
		candidates = t.links.Lookup(recordID, name)
	}
	if t.crossRefs != nil {
		crossRefs = t.crossRefs.CrossReferences(recordID, name)
	}
	return t.resolver.Resolve(identity.Mention{
		Category:            c,
		Role:                role,
		Name:                name,
		ContextKey:          ctx,
		AuthorityCandidates: candidates,
		CrossReferences:     crossRefs,
	})
}

// person emits the person node with its same-as links and structured names.
func person(g *graph.Graph, ident *identity.Identity, rawName string) {
	node := g.Node(ident.ID)
	g.Type(node, graph.Person)
	g.Literal(node, graph.Name, rawName)
	for _, uri := range ident.SameAs {
		g.Link(node, graph.SameAs, uri)
	}

	for _, n := range ident.Names {
		name := g.Node(n.ID)
		g.Type(name, graph.PersonName)
		g.Literal(name, graph.LiteralName, n.Literal)
		g.Literal(name, graph.GivenName, n.GivenName)
		g.Literal(name, graph.Initials, n.Initials)
		g.Literal(name, graph.SurnamePrefix, n.SurnamePrefix)
		g.Literal(name, graph.BaseSurname, n.BaseSurname)
		g.Literal(name, graph.Surname, n.Surname())
		g.Literal(name, graph.Patronym, n.Patronym)
		g.Literal(name, graph.PrefixName, n.HonorificPrefix)
		g.Literal(name, graph.Suffix, n.Suffix)
		g.Link(node, graph.HasName, n.ID)
	}
}

func (t *Transformer) event(b *build, book graph.Node, ctx string, ev ggd.Event) {
	g := b.g
	node := g.Node(ctx)
	g.Type(node, graph.Event)
	g.Date(node, graph.HasTimeStamp, ev.TimeStamp)
	g.Date(node, graph.HasEarliestBeginTimeStamp, ev.EarliestBegin)
	g.Date(node, graph.HasLatestEndTimeStamp, ev.LatestEnd)
	for _, place := range ev.Places {
		g.Literal(node, graph.HasPlace, place)
	}
	for _, label := range ev.Types {
		g.Link(node, graph.EventTypeProp, t.eventType(b, label))
	}
	g.Add(node, graph.SubjectOf, book)
	g.Link(book, graph.About, ctx)
}

// eventType returns the node of the event type labelled label, emitting it
// on first use.
func (t *Transformer) eventType(b *build, label string) string {
	if id, ok := t.eventTypes[label]; ok {
		return id
	}

	base := "_:etype-" + eventTypeLabel(label)
	id := base
	for n := 2; ; n++ {
		if _, taken := t.typeIDs[id]; !taken {
			break
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
	t.eventTypes[label] = id
	t.typeIDs[id] = label
	b.eventTypes = append(b.eventTypes, label)

	node := b.g.Node(id)
	b.g.Type(node, graph.EventType)
	b.g.Literal(node, graph.Label, label)
	slog.Debug("New event type", "label", label, "id", id)
	return id
}

func (t *Transformer) document(g *graph.Graph, book graph.Node, rec *ggd.Record) {
	r := recordLabel(rec.ID)
	docID := "_:" + r + "-document"
	doc := g.Node(docID)

	g.Type(doc, graph.Document)
	g.Literal(doc, graph.Description, rec.Description)
	g.Literal(doc, graph.Comment, rec.Comments)
	g.Link(doc, graph.SameAs, graph.GGDDoc+rec.ID)
	g.Link(doc, graph.InDataset, t.dataset)
	g.Date(doc, graph.DateCreated, rec.Created)
	g.Date(doc, graph.DateModified, rec.Modified)
	g.Add(doc, graph.PrimaryTopic, book)
	g.Link(book, graph.IsPrimaryTopicOf, docID)

	propertyValue(g, doc, "_:"+r+"-ggdid", "GGD id", rec.ID)
	if rec.SteurID != "" {
		propertyValue(g, doc, "_:"+r+"-steurid", "Van der Steur id", rec.SteurID)
	}
}

func propertyValue(g *graph.Graph, doc graph.Node, id, name, value string) {
	node := g.Node(id)
	g.Type(node, graph.PropertyValue)
	g.Literal(node, graph.Name, name)
	g.Literal(node, graph.Value, value)
	g.Link(doc, graph.Identifier, id)
}

// eventTypeLabel lowercases the label, drops spaces and turns "," into "en"
// ("Geboorte, doop" becomes "geboorteendoop").
func eventTypeLabel(label string) string {
	s := strings.ToLower(label)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", "en")
	return blankLabel(s)
}

// blankLabel keeps ASCII letters and digits and writes every other byte as
// "_" plus two hex digits, so distinct inputs give distinct labels.
func blankLabel(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "_%02X", c)
		}
	}
	return b.String()
}
