// Package names parses free-text historical Dutch person names into
// structured names: given name or initials, particles, base surname,
// patronym, honorific prefix and generational suffix.
//
// Parsing is best effort and total: every input, including the empty string,
// yields at least one StructuredName.
package names

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	bracketPattern    = regexp.MustCompile(`\([^()]*\)`)
	apostrophePattern = regexp.MustCompile(`'(\pL)`)
)

// Parser parses names against a fixed rule set. It is safe for concurrent use.
type Parser struct {
	rules              Rules
	particles          wordSet
	prefixes           wordSet
	suffixes           wordSet
	patronymicSuffixes []string
}

// NewParser creates a parser for the given rules.
func NewParser(rules Rules) *Parser {
	rules = rules.withDefaults()

	patronymic := make([]string, 0, len(rules.PatronymicSuffixes))
	for _, s := range rules.PatronymicSuffixes {
		patronymic = append(patronymic, strings.ToLower(s))
	}

	return &Parser{
		rules:              rules,
		particles:          newWordSet(rules.Particles),
		prefixes:           newWordSet(rules.HonorificPrefixes),
		suffixes:           newWordSet(rules.Suffixes),
		patronymicSuffixes: patronymic,
	}
}

var defaultParser = NewParser(DefaultRules())

// Parse parses s with the default Dutch rules.
func Parse(s string) []StructuredName {
	return defaultParser.Parse(s)
}

// Clean returns s in NFC with surrounding whitespace trimmed and inner runs
// collapsed to one space. It does not change case.
func Clean(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// Parse returns one StructuredName per co-listed name in s, in input order.
func (p *Parser) Parse(s string) []StructuredName {
	s = stripBrackets(s)
	s = invertComma(s)

	if strings.TrimSpace(s) == "" {
		return []StructuredName{p.unknown()}
	}

	caser := cases.Title(language.Dutch)
	parts := strings.Split(s, p.rules.Separator)
	parsed := make([]StructuredName, 0, len(parts))
	for _, part := range parts {
		parsed = append(parsed, p.parseOne(part, caser))
	}
	return parsed
}

func (p *Parser) parseOne(s string, caser cases.Caser) StructuredName {
	s = normalizeSyntax(s)
	if s == "" {
		return p.unknown()
	}

	tokens := strings.Split(s, " ")
	for i, tok := range tokens {
		tokens[i] = p.normalizeCase(tok, caser)
	}

	name := StructuredName{Literal: literal(tokens)}

	infix := p.infix(tokens)

	var prefixes, suffixes, core []string
	for _, tok := range tokens {
		switch {
		case p.prefixes.has(tok):
			prefixes = append(prefixes, tok)
		case p.suffixes.has(tok):
			suffixes = append(suffixes, tok)
		default:
			core = append(core, tok)
		}
	}
	name.HonorificPrefix = strings.Join(prefixes, " ")
	name.Suffix = strings.Join(suffixes, " ")

	givenPart, surnamePart := splitCore(core, infix)

	given, givenPatronyms := p.extractPatronyms(givenPart)
	surname, surnamePatronyms := p.extractPatronyms(surnamePart)
	name.Patronym = strings.Join(append(givenPatronyms, surnamePatronyms...), " ")

	if len(infix) > 0 && indexRun(surname, infix) == 0 {
		name.SurnamePrefix = strings.Join(infix, " ")
		surname = surname[len(infix):]
	}
	name.BaseSurname = strings.Join(surname, " ")

	switch givenName := strings.Join(given, " "); {
	case givenName == "":
	case strings.HasSuffix(givenName, "."):
		name.Initials = givenName
	default:
		name.GivenName = givenName
	}

	return name
}

func (p *Parser) unknown() StructuredName {
	return StructuredName{Literal: p.rules.Unknown}
}

// normalizeCase title-cases tok, or lower-cases it when it is a particle.
// Each '.'-separated segment is cased on its own, so "j.c." becomes "J.C.".
func (p *Parser) normalizeCase(tok string, caser cases.Caser) string {
	lower := strings.ToLower(tok)
	if p.particles.has(lower) {
		return lower
	}
	segments := strings.Split(lower, ".")
	for i, seg := range segments {
		segments[i] = caser.String(seg)
	}
	return strings.Join(segments, ".")
}

// infix returns the first contiguous run of particle tokens.
func (p *Parser) infix(tokens []string) []string {
	start := -1
	for i, tok := range tokens {
		if p.particles.has(tok) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return tokens[start:i]
		}
	}
	if start >= 0 {
		return tokens[start:]
	}
	return nil
}

func (p *Parser) extractPatronyms(tokens []string) (rest, patronyms []string) {
	for _, tok := range tokens {
		if p.isPatronym(tok) {
			patronyms = append(patronyms, tok)
		} else {
			rest = append(rest, tok)
		}
	}
	return rest, patronyms
}

func (p *Parser) isPatronym(tok string) bool {
	lower := strings.ToLower(tok)
	for _, suffix := range p.patronymicSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// splitCore splits at the first occurrence of infix, or after the first
// token when there is no infix. A single token is a surname.
func splitCore(core, infix []string) (given, surname []string) {
	if len(infix) > 0 {
		if i := indexRun(core, infix); i >= 0 {
			return core[:i], core[i:]
		}
	}
	if len(core) <= 1 {
		return nil, core
	}
	return core[:1], core[1:]
}

// indexRun returns the index of the first occurrence of run in tokens, or -1.
func indexRun(tokens, run []string) int {
	if len(run) == 0 {
		return -1
	}
	for i := 0; i+len(run) <= len(tokens); i++ {
		match := true
		for j := range run {
			if tokens[i+j] != run[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func stripBrackets(s string) string {
	for bracketPattern.MatchString(s) {
		s = bracketPattern.ReplaceAllString(s, "")
	}
	return s
}

// invertComma turns "Surname, Given" into "Given Surname". Only the first
// comma counts.
func invertComma(s string) string {
	surname, given, found := strings.Cut(s, ",")
	if !found {
		return s
	}
	return strings.TrimSpace(given) + " " + strings.TrimSpace(surname)
}

func normalizeSyntax(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "’", "'")
	s = apostrophePattern.ReplaceAllString(s, "' $1")
	return strings.Join(strings.Fields(s), " ")
}

// literal rebuilds the display form, gluing "d'" and "l'" to the next token.
func literal(tokens []string) string {
	var b strings.Builder
	for i, tok := range tokens {
		b.WriteString(tok)
		if i < len(tokens)-1 && !strings.HasSuffix(tok, "'") {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
