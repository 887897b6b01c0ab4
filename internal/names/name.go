package names

import "strings"

// StructuredName is one parsed person name. Empty fields are unset.
// GivenName and Initials are never both set.
type StructuredName struct {
	Literal         string `json:"literal" yaml:"literal"`
	GivenName       string `json:"given_name,omitempty" yaml:"given_name,omitempty"`
	Initials        string `json:"initials,omitempty" yaml:"initials,omitempty"`
	SurnamePrefix   string `json:"surname_prefix,omitempty" yaml:"surname_prefix,omitempty"`
	BaseSurname     string `json:"base_surname,omitempty" yaml:"base_surname,omitempty"`
	Patronym        string `json:"patronym,omitempty" yaml:"patronym,omitempty"`
	HonorificPrefix string `json:"honorific_prefix,omitempty" yaml:"honorific_prefix,omitempty"`
	Suffix          string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}

// Surname returns the particle and base surname together, e.g. "van der Meer".
func (n StructuredName) Surname() string {
	return joinNonEmpty(n.SurnamePrefix, n.BaseSurname)
}

// IsUnknown reports whether n is the fallback for unparseable input.
func (n StructuredName) IsUnknown() bool {
	return n == StructuredName{Literal: n.Literal} && n.Literal == DefaultRules().Unknown
}

// Fields returns the structured fields keyed by name, including empty ones.
func (n StructuredName) Fields() map[string]string {
	return map[string]string{
		"literal":          n.Literal,
		"given_name":       n.GivenName,
		"initials":         n.Initials,
		"surname_prefix":   n.SurnamePrefix,
		"base_surname":     n.BaseSurname,
		"patronym":         n.Patronym,
		"honorific_prefix": n.HonorificPrefix,
		"suffix":           n.Suffix,
	}
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
