// Package ggd reads the Gelegenheidsgedichten flat-file dump.
//
// A dump is a sequence of records separated by a line holding a single "$".
// Every other line is "KEY value". Values containing "; " carry several
// values.
package ggd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Fields maps dump keys to field names.
var Fields = map[string]string{
	"AAR":    "event",
	"ABS":    "description",
	"AN_GA":  "item_saa_annotation",
	"AN_CBG": "item_cbg_annotation",
	"AN_KB":  "item_kb_annotation",
	"AN_MMW": "item_mmw_annotation",
	"AN_MNL": "item_mnl_annotation",
	"AUT":    "author",
	"BYZ":    "comments",
	"COL":    "collate",
	"DAT":    "date",
	"EXE":    "archive",
	"EXF":    "exf",
	"EX_CBG": "item_cbg",
	"EX_GA":  "item_saa",
	"EX_KB":  "item_kb",
	"EX_MMW": "item_mmw",
	"EX_MNL": "item_mnl",
	"FMT":    "format",
	"GED":    "ged",
	"GEN":    "society",
	"ILL":    "illustrator",
	"IMP":    "impressum",
	"INV":    "created",
	"MEL":    "melody",
	"MFN":    "mfn",
	"MOT":    "motif",
	"MUT":    "modified",
	"PAG":    "pages",
	"PLT":    "place",
	"PSN":    "person",
	"REC":    "id",
	"REG":    "registered",
	"STR":    "steurid",
	"TAA":    "language",
	"TIT":    "title",
	"VWN":    "signature",
	"WAT":    "remarks",
}

const (
	recordSeparator = "$"
	valueSeparator  = "; "
	byteOrderMark   = "\ufeff"
)

// RawRecord holds the values of one dump record by field name, in file order.
type RawRecord map[string][]string

// Get returns the first value of field, or "".
func (r RawRecord) Get(field string) string {
	if v := r[field]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Joined returns the values of field joined back with "; ".
func (r RawRecord) Joined(field string) string {
	return strings.Join(r[field], valueSeparator)
}

// Reader reads raw records from a dump.
type Reader struct {
	scanner *bufio.Scanner
	line    int
	done    bool
}

// NewReader creates a reader over r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)

	const maxCapacity = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxCapacity)

	return &Reader{scanner: scanner}
}

// Next returns the next non-empty record, or io.EOF when the dump is
// exhausted. Lines with an unknown key are kept under the key itself.
func (r *Reader) Next() (RawRecord, error) {
	if r.done {
		return nil, io.EOF
	}

	rec := RawRecord{}
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimRight(r.scanner.Text(), "\r")
		if r.line == 1 {
			line = strings.TrimPrefix(line, byteOrderMark)
		}

		if strings.TrimSpace(line) == recordSeparator {
			if len(rec) > 0 {
				return rec, nil
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		key, value, ok := strings.Cut(line, " ")
		if !ok {
			slog.Warn("Skipping dump line without value", "line", r.line, "key", key)
			continue
		}

		field, known := Fields[key]
		if !known {
			slog.Warn("Unknown dump key", "line", r.line, "key", key)
			field = key
		}
		rec[field] = append(rec[field], strings.Split(value, valueSeparator)...)
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dump at line %d: %w", r.line, err)
	}

	r.done = true
	if len(rec) > 0 {
		return rec, nil
	}
	return nil, io.EOF
}
