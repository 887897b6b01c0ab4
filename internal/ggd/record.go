package ggd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMissingID is returned for a record without a REC line.
	ErrMissingID = errors.New("record has no id")

	// ErrInvalidDate is returned for unparseable created, modified or event dates.
	ErrInvalidDate = errors.New("invalid date")
)

// Archives maps holding fields to the archive that holds the copy, in the
// order holdings are emitted.
var Archives = []struct {
	Field string
	Name  string
}{
	{"item_cbg", "Centraal Bureau voor Genealogie"},
	{"item_saa", "Stadsarchief Amsterdam"},
	{"item_kb", "Koninklijke Bibliotheek"},
	{"item_mmw", "Museum Meermanno"},
	{"item_mnl", "Bibliotheek van de Maatschappij der Nederlandse Letterkunde"},
}

// Record is a normalized dump record.
type Record struct {
	ID      string `json:"id"`
	SteurID string `json:"steurid,omitempty"`

	Title       string `json:"title,omitempty"`
	Impressum   string `json:"impressum,omitempty"`
	Collate     string `json:"collate,omitempty"`
	Description string `json:"description,omitempty"`
	Comments    string `json:"comments,omitempty"`
	Pages       string `json:"pages,omitempty"`
	Format      string `json:"format,omitempty"`

	Languages []string `json:"language,omitempty"`

	Authors []PersonEntry `json:"author,omitempty"`
	Persons []PersonEntry `json:"person,omitempty"`

	Event Event  `json:"event"`
	Items []Item `json:"item,omitempty"`

	// Created and Modified are ISO dates.
	Created  string `json:"created,omitempty"`
	Modified string `json:"modified,omitempty"`
}

// PersonEntry is a name with its optional role label.
type PersonEntry struct {
	Name string `json:"person"`
	Role string `json:"role,omitempty"`
}

// Item is one physical copy held by an archive.
type Item struct {
	Location       string `json:"location"`
	HoldingArchive string `json:"holdingArchive"`
	Comment        string `json:"comment,omitempty"`
}

// Parse normalizes a raw record.
func Parse(raw RawRecord) (*Record, error) {
	id := strings.TrimSpace(raw.Get("id"))
	if id == "" {
		return nil, ErrMissingID
	}

	rec := &Record{
		ID:          id,
		SteurID:     strings.TrimSpace(raw.Get("steurid")),
		Title:       raw.Joined("title"),
		Impressum:   raw.Joined("impressum"),
		Collate:     raw.Joined("collate"),
		Description: raw.Joined("description"),
		Comments:    raw.Joined("comments"),
		Pages:       raw.Joined("pages"),
		Format:      raw.Get("format"),
		Languages:   nonEmpty(raw["language"]),
		Authors:     persons(raw["author"], false),
		Persons:     persons(raw["person"], true),
	}

	var err error
	if rec.Created, err = isoDate(raw.Get("created")); err != nil {
		return nil, fmt.Errorf("failed to parse created date of record %s: %w", id, err)
	}
	if rec.Modified, err = isoDate(raw.Get("modified")); err != nil {
		return nil, fmt.Errorf("failed to parse modified date of record %s: %w", id, err)
	}

	if rec.Event, err = NewEvent(raw.Get("date"), raw["place"], raw["event"]); err != nil {
		return nil, fmt.Errorf("failed to parse event of record %s: %w", id, err)
	}

	for _, archive := range Archives {
		comment := raw.Joined(archive.Field + "_annotation")
		for _, loc := range nonEmpty(raw[archive.Field]) {
			rec.Items = append(rec.Items, Item{
				Location:       loc,
				HoldingArchive: archive.Name,
				Comment:        comment,
			})
		}
	}

	return rec, nil
}

// NumberOfPages returns the leading page count of Pages, e.g. 4 for "4 p.".
func (r *Record) NumberOfPages() (int, bool) {
	fields := strings.Fields(r.Pages)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return n, true
}

// persons splits entries into name and role. With roles, the role follows
// the last ". " in the entry.
func persons(values []string, withRole bool) []PersonEntry {
	var out []PersonEntry
	for _, v := range nonEmpty(values) {
		entry := PersonEntry{Name: v}
		if withRole {
			if i := strings.LastIndex(v, ". "); i >= 0 {
				entry.Name, entry.Role = v[:i], strings.TrimSpace(v[i+2:])
			}
		}
		out = append(out, entry)
	}
	return out
}

// isoDate converts DD-MM-YYYY to YYYY-MM-DD. An empty value stays empty.
func isoDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	t, err := time.Parse("02-01-2006", s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t.Format(time.DateOnly), nil
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
