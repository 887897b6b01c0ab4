// Package identity assigns a single stable identifier to every author,
// printer and person mention in a conversion run.
//
// Identifiers are chosen in priority order: a primary authority URI, an
// identifier already issued for the same mention key, a same-entity hint,
// and finally a newly minted one. A Resolver holds the state of one run.
package identity

import (
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/goldenagents/ggdlinker/internal/names"
)

// DefaultBaseIRI is the namespace minted identifiers live under.
const DefaultBaseIRI = "http://data.bibliotheken.nl/id/dataset/ggd/"

// Mention is one occurrence of a name in a record field.
type Mention struct {
	Category Category
	Role     string
	Name     string

	// ContextKey identifies the owning event or record.
	ContextKey string

	// AuthorityCandidates come from the authority link table, in table order.
	AuthorityCandidates []string

	// CrossReferences are opaque URIs the caller attaches to the mention.
	CrossReferences []string
}

// Source records how an identifier was chosen.
type Source string

const (
	SourceAuthority Source = "authority"
	SourceCache     Source = "cache"
	SourceHint      Source = "hint"
	SourceMinted    Source = "minted"
)

// Identity is the resolved identity of one mention.
type Identity struct {
	ID       string
	Category Category
	Source   Source

	// SameAs is sorted, deduplicated and never contains ID.
	SameAs []string

	Names []PersonName
}

// PersonName is a structured name keyed by the identity it belongs to.
type PersonName struct {
	ID string
	names.StructuredName
}

// HintSource supplies precomputed same-entity links: uri is a secondary
// identifier of the mention, the returned value an identifier issued earlier.
type HintSource interface {
	Hint(category, uri, rawName string) (string, bool)
}

// Stats counts resolutions by outcome. Blank counts resolutions to run-local
// identifiers and Unknown the names that fell back to the unknown literal.
type Stats struct {
	Authority int
	Cached    int
	Hinted    int
	Minted    int
	Dropped   int
	Blank     int
	Unknown   int
}

// Resolver resolves mentions for a single conversion run. It is safe for
// concurrent use, but sequential identifiers depend on call order.
type Resolver struct {
	base            string
	patterns        []*regexp.Regexp
	excluded        roleSet
	hints           HintSource
	parser          *names.Parser
	contentHashOnly bool

	stores map[Category]*Store
	minter *minter

	mu    sync.Mutex
	stats Stats
}

// Option configures the resolver.
type Option func(*Resolver)

// WithBaseIRI sets the namespace for minted identifiers.
func WithBaseIRI(base string) Option {
	return func(r *Resolver) {
		r.base = base
	}
}

// WithPrimaryPatterns replaces the primary-authority URI patterns.
func WithPrimaryPatterns(patterns []*regexp.Regexp) Option {
	return func(r *Resolver) {
		r.patterns = patterns
	}
}

// WithExcludedRoles replaces the person roles that are never resolved.
func WithExcludedRoles(roles []string) Option {
	return func(r *Resolver) {
		r.excluded = newRoleSet(roles)
	}
}

// WithHints sets the same-entity hint table.
func WithHints(hints HintSource) Option {
	return func(r *Resolver) {
		r.hints = hints
	}
}

// WithParser sets the name parser.
func WithParser(p *names.Parser) Option {
	return func(r *Resolver) {
		r.parser = p
	}
}

// WithContentHashOnly makes every minted identifier hash-backed, so
// identifiers no longer depend on the order mentions are resolved in.
func WithContentHashOnly(enabled bool) Option {
	return func(r *Resolver) {
		r.contentHashOnly = enabled
	}
}

// NewResolver creates a resolver with empty caches.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		base:     DefaultBaseIRI,
		patterns: DefaultPrimaryPatterns,
		excluded: newRoleSet(DefaultExcludedRoles),
		parser:   names.NewParser(names.DefaultRules()),
		stores: map[Category]*Store{
			Author:  NewStore(),
			Printer: NewStore(),
			Person:  NewStore(),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.minter = newMinter(r.base)
	return r
}

// Resolve returns the identity for m. It returns false, and no identity, for
// a person mention whose role is excluded.
func (r *Resolver) Resolve(m Mention) (*Identity, bool) {
	if _, ok := r.stores[m.Category]; !ok {
		m.Category = Person
	}

	if m.Category == Person && r.excluded.has(m.Role) {
		slog.Debug("Dropping mention with excluded role", "name", m.Name, "role", m.Role, "context", m.ContextKey)
		r.record(func(s *Stats) { s.Dropped++ })
		return nil, false
	}

	primary, secondary := classify(m.AuthorityCandidates, r.patterns)
	sameAs := mergeURIs(secondary, m.CrossReferences)

	ident := &Identity{Category: m.Category}
	if primary != "" {
		ident.ID, ident.Source = primary, SourceAuthority
	} else {
		ident.ID, ident.Source = r.lookupOrMint(m, sameAs)
	}

	ident.SameAs = slices.DeleteFunc(sameAs, func(u string) bool { return u == ident.ID })
	ident.Names = r.personNames(ident.ID, m.Name)

	unknown := 0
	for _, n := range ident.Names {
		if n.IsUnknown() {
			unknown++
		}
	}

	r.record(func(s *Stats) {
		if IsBlank(ident.ID) {
			s.Blank++
		}
		s.Unknown += unknown
		switch ident.Source {
		case SourceAuthority:
			s.Authority++
		case SourceCache:
			s.Cached++
		case SourceHint:
			s.Hinted++
		case SourceMinted:
			s.Minted++
		}
	})

	return ident, true
}

func (r *Resolver) lookupOrMint(m Mention, sameAs []string) (string, Source) {
	key := r.cacheKey(m)
	store := r.stores[m.Category]
	if id, ok := store.Get(key); ok {
		return id, SourceCache
	}

	source := SourceCache
	id, _ := store.GetOrCreate(key, func() string {
		if id, ok := r.hint(m, sameAs); ok {
			source = SourceHint
			return id
		}
		source = SourceMinted
		return r.mint(m, key, sameAs)
	})

	if source == SourceMinted {
		slog.Debug("Minted identifier", "category", m.Category, "id", id, "name", m.Name, "context", m.ContextKey)
	}
	return id, source
}

// cacheKey builds the composite reuse key. Printers are keyed run-wide by
// their authority candidates; without candidates, by their cleaned name.
func (r *Resolver) cacheKey(m Mention) string {
	candidates := strings.Join(sortedCopy(m.AuthorityCandidates), "\x1e")
	if m.Category == Printer {
		if candidates != "" {
			return "authority\x1f" + candidates
		}
		return "name\x1f" + names.Clean(m.Name)
	}
	return strings.Join([]string{m.ContextKey, names.Clean(m.Name), candidates}, "\x1f")
}

func (r *Resolver) hint(m Mention, sameAs []string) (string, bool) {
	if r.hints == nil {
		return "", false
	}
	for _, uri := range sameAs {
		if id, ok := r.hints.Hint(string(m.Category), uri, m.Name); ok && id != "" {
			return id, true
		}
	}
	return "", false
}

func (r *Resolver) mint(m Mention, key string, sameAs []string) string {
	switch {
	case m.Category == Person && len(sameAs) > 0:
		return r.minter.hashed(Person, sameAs...)
	case r.contentHashOnly:
		return r.minter.hashed(m.Category, append([]string{key}, sameAs...)...)
	case m.Category == Person:
		return r.minter.blank()
	default:
		return r.minter.sequential(m.Category)
	}
}

func (r *Resolver) personNames(id, raw string) []PersonName {
	parsed := r.parser.Parse(raw)
	out := make([]PersonName, 0, len(parsed))
	for _, n := range parsed {
		out = append(out, PersonName{
			ID:             r.base + "personname/" + HashID(id, n.Literal).String(),
			StructuredName: n,
		})
	}
	return out
}

func (r *Resolver) record(update func(*Stats)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	update(&r.stats)
}

// Stats returns resolution counts since construction or the last Reset.
func (r *Resolver) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Issued returns how many sequential identifiers were minted for c.
func (r *Resolver) Issued(c Category) int {
	return r.minter.issued(c)
}

// Reset clears caches, counters and stats, starting a new run.
func (r *Resolver) Reset() {
	for _, s := range r.stores {
		s.Reset()
	}
	r.minter.reset()
	r.mu.Lock()
	r.stats = Stats{}
	r.mu.Unlock()
}
