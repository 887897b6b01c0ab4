package identity

import (
	"fmt"
	"strings"
)

// Category is the kind of entity a mention resolves to.
type Category string

const (
	Author  Category = "author"
	Printer Category = "printer"
	Person  Category = "person"
)

// DefaultPrinterRole is the GGD role label for printers and publishers.
const DefaultPrinterRole = "Drukker/uitgever"

// DefaultExcludedRoles lists person roles that are never resolved. The GGD
// dump uses the Dutch labels.
var DefaultExcludedRoles = []string{
	"other functions",
	"compositor",
	"editor",
	"paper-supplier",
	"Overige functies",
	"Zetter",
	"Redacteur",
	"Papierleverancier",
}

// ParseCategory parses "author", "printer" or "person", ignoring case.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case Author, Printer, Person:
		return c, nil
	default:
		return "", fmt.Errorf("unknown category: %q", s)
	}
}

// NormalizeRole folds a free-text role label for comparison: lower case,
// single spaces, no trailing period.
func NormalizeRole(role string) string {
	role = strings.ToLower(strings.Join(strings.Fields(role), " "))
	return strings.TrimSuffix(role, ".")
}

// CategoryForRole maps a person-field role label to a category. Labels equal
// to printerRole are printers; everything else is a person.
func CategoryForRole(role, printerRole string) Category {
	if printerRole != "" && NormalizeRole(role) == NormalizeRole(printerRole) {
		return Printer
	}
	return Person
}

type roleSet map[string]struct{}

func newRoleSet(roles []string) roleSet {
	s := make(roleSet, len(roles))
	for _, r := range roles {
		s[NormalizeRole(r)] = struct{}{}
	}
	return s
}

func (s roleSet) has(role string) bool {
	_, ok := s[NormalizeRole(role)]
	return ok
}
