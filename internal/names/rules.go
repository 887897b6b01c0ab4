package names

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rules holds the closed word lists the parser tests tokens against.
// Matching is case-insensitive.
type Rules struct {
	Particles          []string `yaml:"particles"`
	HonorificPrefixes  []string `yaml:"honorific_prefixes"`
	Suffixes           []string `yaml:"suffixes"`
	PatronymicSuffixes []string `yaml:"patronymic_suffixes"`

	// Separator splits co-listed names ("Jan Jansz / Pieter Claesz").
	Separator string `yaml:"separator"`

	// Unknown is the literal used when nothing is left to parse.
	Unknown string `yaml:"unknown"`
}

// DefaultRules returns the rule set for historical Dutch names.
func DefaultRules() Rules {
	return Rules{
		Particles:          []string{"van", "de", "den", "des", "der", "ten", "l'", "d'"},
		HonorificPrefixes:  []string{"Mr."},
		Suffixes:           []string{"Jr.", "Sr."},
		PatronymicSuffixes: []string{"sz", "sz.", "szoon", "dr.", "dr", "sdochter"},
		Separator:          " / ",
		Unknown:            "Unknown",
	}
}

// LoadRules reads a rule set from a YAML file. Lists absent from the file
// keep their default values.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	var loaded Rules
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Rules{}, fmt.Errorf("failed to parse rules file: %w", err)
	}

	return loaded.withDefaults(), nil
}

func (r Rules) withDefaults() Rules {
	d := DefaultRules()
	if len(r.Particles) == 0 {
		r.Particles = d.Particles
	}
	if len(r.HonorificPrefixes) == 0 {
		r.HonorificPrefixes = d.HonorificPrefixes
	}
	if len(r.Suffixes) == 0 {
		r.Suffixes = d.Suffixes
	}
	if len(r.PatronymicSuffixes) == 0 {
		r.PatronymicSuffixes = d.PatronymicSuffixes
	}
	if r.Separator == "" {
		r.Separator = d.Separator
	}
	if r.Unknown == "" {
		r.Unknown = d.Unknown
	}
	return r
}

// wordSet is a lower-cased membership set.
type wordSet map[string]struct{}

func newWordSet(words []string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[strings.ToLower(w)] = struct{}{}
	}
	return s
}

func (s wordSet) has(token string) bool {
	_, ok := s[strings.ToLower(token)]
	return ok
}
