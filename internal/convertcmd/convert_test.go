package convertcmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldenagents/ggdlinker/internal/ggd"
	"github.com/goldenagents/ggdlinker/internal/graph"
)

const (
	recordA = `REC 1001
TIT Bruilofts-gedicht
AUT Hooft, Pieter Cornelisz.; Vondel, Joost van den
PSN Jansz, Jan. Bruidegom; Blaeu, Joan. Drukker/uitgever; Claesz, Cornelis. Zetter
AAR Huwelijk
DAT 1650-04-00
PLT Amsterdam
TAA dut
INV 03-02-1995
MUT 17-11-2003
$
`
	recordB = `REC 1002
TIT Lijkdicht
AUT Vondel, Joost van den
PSN Blaeu, Joan. Drukker/uitgever
AAR Overlijden
DAT 1651-00-00
INV 01-01-1996
MUT 01-01-1996
$
`
	recordBad = `REC 1003
TIT Kapot
INV 1996-01-01
$
`
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func sortedLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	sort.Strings(lines)
	return lines
}

func TestExecuteConvert(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "ggd.dmp", recordA+recordB+recordBad)
	links := writeFile(t, dir, "links.jsonl",
		`{"record_id":"1001","name":"Hooft, Pieter Cornelisz.","uri":"http://viaf.org/viaf/95207079"}`+"\n"+
			`{"record_id":"1001","name":"Hooft, Pieter Cornelisz.","uri":"https://www.wikidata.org/entity/Q318427"}`+"\n")
	output := filepath.Join(dir, "ggd.nt")

	summary, err := executeConvert(context.Background(), Options{
		Input:     input,
		Output:    output,
		LinksPath: links,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Records)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, graph.NTriples, summary.Format)
	assert.Greater(t, summary.Triples, 0)
	assert.Equal(t, 1, summary.Resolver.Authority)
	assert.Equal(t, 1, summary.Resolver.Dropped)
	assert.Equal(t, 1, summary.Resolver.Cached)
	assert.Equal(t, 2, summary.Transform.Printers)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "<http://viaf.org/viaf/95207079> <"+graph.SameAs+"> <https://www.wikidata.org/entity/Q318427> .")
	assert.Contains(t, out, "<"+graph.GGD+"author/1>")
	assert.Contains(t, out, "<"+graph.GGD+"author/2>")
	assert.Contains(t, out, "<"+graph.GGD+"printer/1>")
	assert.NotContains(t, out, "<"+graph.GGD+"printer/2>")
	assert.NotContains(t, out, "Kapot")
}

func TestExecuteConvertStrict(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "ggd.dmp", recordA+recordBad)

	_, err := executeConvert(context.Background(), Options{
		Input:  input,
		Output: filepath.Join(dir, "ggd.ttl"),
		Strict: true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ggd.ErrInvalidDate)
}

func TestExecuteConvertReproducible(t *testing.T) {
	dir := t.TempDir()
	forward := writeFile(t, dir, "forward.dmp", recordA+recordB)
	backward := writeFile(t, dir, "backward.dmp", recordB+recordA)

	run := func(input, output string) {
		_, err := executeConvert(context.Background(), Options{
			Input:           input,
			Output:          output,
			Format:          "ntriples",
			Reproducible:    true,
			formatSet:       true,
			reproducibleSet: true,
		})
		require.NoError(t, err)
	}

	run(forward, filepath.Join(dir, "forward.out"))
	run(backward, filepath.Join(dir, "backward.out"))

	assert.Equal(t, sortedLines(t, filepath.Join(dir, "forward.out")), sortedLines(t, filepath.Join(dir, "backward.out")))
}

func TestExecuteConvertConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "ggd.dmp", recordB)
	cfg := writeFile(t, dir, "config.yaml", "base_iri: \"https://example.org/ggd/\"\nformat: ntriples\n")
	output := filepath.Join(dir, "ggd.out")

	summary, err := executeConvert(context.Background(), Options{
		Input:      input,
		Output:     output,
		ConfigPath: cfg,
	})
	require.NoError(t, err)
	assert.Equal(t, graph.NTriples, summary.Format)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<https://example.org/ggd/1002>")
	assert.Contains(t, string(data), "<https://example.org/ggd/author/1>")
}

func TestExecuteConvertErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := executeConvert(context.Background(), Options{Input: filepath.Join(dir, "missing.dmp")})
	assert.Error(t, err)

	input := writeFile(t, dir, "ggd.dmp", recordA)
	_, err = executeConvert(context.Background(), Options{Input: input, Format: "rdfxml", formatSet: true})
	assert.ErrorIs(t, err, graph.ErrUnknownFormat)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = executeConvert(ctx, Options{Input: input, Output: filepath.Join(dir, "out.ttl")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecuteRecords(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "ggd.dmp", recordA+recordBad+recordB)
	output := filepath.Join(dir, "ggd.json")

	records, err := executeRecords(context.Background(), input, output, false)
	require.NoError(t, err)
	require.Len(t, records, 2)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "1001", decoded[0]["id"])
	assert.Equal(t, "1995-02-03", decoded[0]["created"])

	event := decoded[1]["event"].(map[string]any)
	assert.Equal(t, "1651-01-01", event["earliestBeginTimeStamp"])
	assert.Equal(t, "1651-12-31", event["latestEndTimeStamp"])
}

func TestExecuteConvertSkipsUnconvertibleRecord(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "ggd.dmp", recordA+recordB)
	links := writeFile(t, dir, "links.jsonl",
		`{"record_id":"1001","name":"Vondel, Joost van den","uri":"http://example.org/a b"}`+"\n")
	output := filepath.Join(dir, "ggd.nt")

	summary, err := executeConvert(context.Background(), Options{
		Input:     input,
		Output:    output,
		LinksPath: links,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Records)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Transform.Failed)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<"+graph.GGD+"1002>")
	assert.NotContains(t, string(data), "<"+graph.GGD+"1001>")

	_, err = executeConvert(context.Background(), Options{
		Input:     input,
		Output:    output,
		LinksPath: links,
		Strict:    true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1001")
}

func TestExecuteConvertCrossRefs(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "ggd.dmp", recordA)
	crossRefs := writeFile(t, dir, "crossrefs.yaml", `- record_id: "1001"
  name: Jansz, Jan
  uri: https://example.org/marriage/17
`)
	output := filepath.Join(dir, "ggd.nt")

	_, err := executeConvert(context.Background(), Options{
		Input:         input,
		Output:        output,
		CrossRefsPath: crossRefs,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<"+graph.SameAs+"> <https://example.org/marriage/17> .")
	assert.Contains(t, string(data), "<"+graph.GGD+"person/")
}
