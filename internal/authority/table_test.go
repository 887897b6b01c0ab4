package authority

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	viafURI = "http://viaf.org/viaf/12345"
	kbURI   = "http://data.bibliotheken.nl/id/thes/p123456789"
)

func TestTableLookup(t *testing.T) {
	table := NewTable([]Link{
		{RecordID: "1", Name: "Hooft, Pieter Cornelisz.", URI: viafURI},
		{RecordID: "1", Name: "Hooft,  Pieter Cornelisz.", URI: kbURI},
		{RecordID: "1", Name: "Hooft, Pieter Cornelisz.", URI: viafURI},
		{RecordID: "2", Name: "Vondel, Joost van den", URI: ""},
	}, nil)

	assert.Equal(t, []string{viafURI, kbURI}, table.Lookup("1", "Hooft, Pieter Cornelisz."))
	assert.Equal(t, []string{viafURI, kbURI}, table.Lookup("1", " Hooft, Pieter  Cornelisz. "))
	assert.Empty(t, table.Lookup("2", "Vondel, Joost van den"))
	assert.Empty(t, table.Lookup("3", "Hooft, Pieter Cornelisz."))
	assert.NotNil(t, table.Lookup("3", "nobody"))
}

func TestTableLookupReturnsCopy(t *testing.T) {
	table := NewTable([]Link{{RecordID: "1", Name: "A", URI: viafURI}}, nil)

	got := table.Lookup("1", "A")
	got[0] = "mutated"

	assert.Equal(t, []string{viafURI}, table.Lookup("1", "A"))
}

func TestTableHint(t *testing.T) {
	table := NewTable(nil, []Hint{
		{Category: "person", URI: "https://example.org/a", Name: "Jan Jansz", Identifier: "http://example.org/person/1"},
		{Category: "person", URI: "https://example.org/a", Name: "Jan Jansz", Identifier: "http://example.org/person/2"},
		{Category: "person", URI: "https://example.org/b", Name: "Piet", Identifier: ""},
	})

	id, ok := table.Hint("person", "https://example.org/a", "Jan  Jansz")
	assert.True(t, ok)
	assert.Equal(t, "http://example.org/person/1", id)

	_, ok = table.Hint("author", "https://example.org/a", "Jan Jansz")
	assert.False(t, ok)

	_, ok = table.Hint("person", "https://example.org/b", "Piet")
	assert.False(t, ok)
}

func TestNilTable(t *testing.T) {
	var table *Table

	assert.Empty(t, table.Lookup("1", "A"))
	_, ok := table.Hint("person", "x", "A")
	assert.False(t, ok)

	links, hints := table.Len()
	assert.Zero(t, links)
	assert.Zero(t, hints)
}

func TestLoadLinks(t *testing.T) {
	dir := t.TempDir()
	want := []Link{
		{RecordID: "1", Name: "Hooft, Pieter Cornelisz.", URI: viafURI},
		{RecordID: "2", Name: "Vondel, Joost van den", URI: kbURI},
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "jsonl",
			file: "links.jsonl",
			content: `{"record_id":"1","name":"Hooft, Pieter Cornelisz.","uri":"http://viaf.org/viaf/12345"}

{"record_id":"2","name":"Vondel, Joost van den","uri":"http://data.bibliotheken.nl/id/thes/p123456789"}
`,
		},
		{
			name:    "json",
			file:    "links.json",
			content: `[{"record_id":"1","name":"Hooft, Pieter Cornelisz.","uri":"http://viaf.org/viaf/12345"},{"record_id":"2","name":"Vondel, Joost van den","uri":"http://data.bibliotheken.nl/id/thes/p123456789"}]`,
		},
		{
			name: "yaml",
			file: "links.yaml",
			content: `- record_id: "1"
  name: Hooft, Pieter Cornelisz.
  uri: http://viaf.org/viaf/12345
- record_id: "2"
  name: Vondel, Joost van den
  uri: http://data.bibliotheken.nl/id/thes/p123456789
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			got, err := LoadLinks(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	t.Run("parquet", func(t *testing.T) {
		path := filepath.Join(dir, "links.parquet")
		require.NoError(t, parquet.WriteFile(path, want))

		got, err := LoadLinks(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadLinks(filepath.Join(dir, "links.csv"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadLinks(filepath.Join(dir, "missing.jsonl"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.jsonl")
	require.NoError(t, os.WriteFile(bad, []byte("{\"record_id\":\"1\"}\nnot json\n"), 0644))
	_, err = LoadLinks(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	links := filepath.Join(dir, "links.jsonl")
	hints := filepath.Join(dir, "hints.yaml")

	require.NoError(t, os.WriteFile(links, []byte(`{"record_id":"7","name":"Blaeu, Joan","uri":"http://viaf.org/viaf/999"}`+"\n"), 0644))
	require.NoError(t, os.WriteFile(hints, []byte(`- category: person
  uri: https://example.org/x
  name: Joan Blaeu
  identifier: http://example.org/person/9
`), 0644))

	table, err := LoadTable(links, hints)
	require.NoError(t, err)

	assert.Equal(t, []string{"http://viaf.org/viaf/999"}, table.Lookup("7", "Blaeu, Joan"))
	id, ok := table.Hint("person", "https://example.org/x", "Joan Blaeu")
	assert.True(t, ok)
	assert.Equal(t, "http://example.org/person/9", id)

	empty, err := LoadTable("", "")
	require.NoError(t, err)
	n, h := empty.Len()
	assert.Zero(t, n+h)

	_, err = LoadTable(filepath.Join(dir, "nope.jsonl"), "")
	assert.Error(t, err)
}

func TestTableHintCategories(t *testing.T) {
	table := NewTable(nil, []Hint{
		{Category: " Author ", URI: "https://example.org/a", Name: "Jan Vos", Identifier: "http://example.org/author/1"},
		{Category: "publisher", URI: "https://example.org/b", Name: "Jan Vos", Identifier: "http://example.org/x/1"},
	})

	id, ok := table.Hint("author", "https://example.org/a", "Jan Vos")
	assert.True(t, ok)
	assert.Equal(t, "http://example.org/author/1", id)

	_, hints := table.Len()
	assert.Equal(t, 1, hints)
}

func TestCrossRefs(t *testing.T) {
	const ecartico = "https://www.vondel.humanities.uva.nl/ecartico/persons/1"
	refs := NewCrossRefs([]Link{
		{RecordID: "1", Name: "Vos, Anna", URI: ecartico},
		{RecordID: "1", Name: "Vos,  Anna", URI: ecartico},
		{RecordID: "1", Name: "Jan Vos", URI: ""},
	})

	assert.Equal(t, []string{ecartico}, refs.CrossReferences("1", "Vos, Anna"))
	assert.Empty(t, refs.CrossReferences("1", "Jan Vos"))
	assert.NotNil(t, refs.CrossReferences("2", "Vos, Anna"))
	assert.Equal(t, 1, refs.Len())

	var none *CrossRefs
	assert.Empty(t, none.CrossReferences("1", "Vos, Anna"))
	assert.Zero(t, none.Len())
}

func TestLoadCrossRefs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crossrefs.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"record_id":"3","name":"Vos, Anna","uri":"https://example.org/event/1"}`+"\n"), 0644))

	refs, err := LoadCrossRefs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.org/event/1"}, refs.CrossReferences("3", "Vos, Anna"))

	empty, err := LoadCrossRefs("")
	require.NoError(t, err)
	assert.Zero(t, empty.Len())

	_, err = LoadCrossRefs(filepath.Join(dir, "refs.csv"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
