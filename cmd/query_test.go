package cmd

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gntaxdump/pkg/errcode"
	"github.com/gnames/gntaxdump/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	nodesDmp = `1	|	1	|	no rank	|		|	8	|	0	|	1	|	0	|	0	|	0	|	0	|	0	|		|
2	|	1	|	superkingdom	|		|	0	|	0	|	11	|	0	|	0	|	0	|	0	|	0	|		|
561	|	2	|	genus	|		|	0	|	1	|	11	|	1	|	0	|	1	|	0	|	0	|		|
562	|	561	|	species	|	EC	|	0	|	1	|	11	|	1	|	0	|	1	|	1	|	0	|		|
83333	|	562	|	no rank	|		|	0	|	1	|	11	|	1	|	0	|	1	|	1	|	0	|		|
590	|	2	|	genus	|		|	0	|	1	|	11	|	1	|	0	|	1	|	0	|	0	|		|
28901	|	590	|	species	|	SE	|	0	|	1	|	11	|	1	|	0	|	1	|	1	|	0	|		|
`
	namesDmp = `1	|	root	|		|	scientific name	|
2	|	Bacteria	|	Bacteria <bacteria>	|	scientific name	|
561	|	Escherichia	|		|	scientific name	|
562	|	Escherichia coli	|		|	scientific name	|
562	|	Bacillus coli	|		|	synonym	|
83333	|	Escherichia coli K-12	|		|	scientific name	|
590	|	Salmonella	|		|	scientific name	|
28901	|	Salmonella enterica	|		|	scientific name	|
`
)

var testRanks = []string{"superkingdom", "genus", "species", "strain"}

func testTree(t *testing.T) *taxonomy.Tree {
	t.Helper()
	parents, info, err := taxonomy.ParseNodes(
		strings.NewReader(nodesDmp), "nodes.dmp",
	)
	require.NoError(t, err)
	names, err := taxonomy.ParseNames(
		strings.NewReader(namesDmp), "names.dmp",
	)
	require.NoError(t, err)
	tree, err := taxonomy.New(parents, info, names)
	require.NoError(t, err)
	return tree
}

func queryItems(ids ...int) []queryItem {
	res := make([]queryItem, len(ids))
	for i, v := range ids {
		res[i] = queryItem{TaxID: v}
	}
	return res
}

func TestResolveQueries(t *testing.T) {
	lookup := func(acc string) (int, bool, error) {
		if acc == "CP000001.1" {
			return 83333, true, nil
		}
		return 0, false, nil
	}

	tests := []struct {
		name   string
		args   []string
		lookup lookupFunc
		want   []queryItem
	}{
		{
			name: "taxids only",
			args: []string{"562", " 2 "},
			want: []queryItem{{"562", 562}, {"2", 2}},
		},
		{
			name:   "accessions",
			args:   []string{"CP000001.1", "562", "XX1"},
			lookup: lookup,
			want:   []queryItem{{"CP000001.1", 83333}, {"562", 562}},
		},
		{
			name: "accession without lookup",
			args: []string{"CP000001.1"},
			want: []queryItem{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := resolveQueries(tt.args, tt.lookup)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestResolveQueriesLookupError(t *testing.T) {
	errLookup := errors.New("index is broken")
	lookup := func(string) (int, bool, error) {
		return 0, false, errLookup
	}
	_, err := resolveQueries([]string{"CP000001"}, lookup)
	assert.ErrorIs(t, err, errLookup)
}

func TestQueryTree(t *testing.T) {
	tree := testTree(t)

	tests := []struct {
		name string
		mode string
		ids  []int
		want any
	}{
		{
			name: "lca of two genera",
			mode: modeLCA,
			ids:  []int{83333, 28901},
			want: taxonResult{TaxID: 2, Name: "Bacteria", Rank: "superkingdom"},
		},
		{
			name: "lca of nothing",
			mode: modeLCA,
			want: taxonResult{TaxID: 1, Name: "root", Rank: "no rank"},
		},
		{
			name: "lowest of a lineage",
			mode: modeLowest,
			ids:  []int{562, 561},
			want: taxonResult{
				TaxID: 562, Name: "Escherichia coli", Rank: "species",
			},
		},
		{
			name: "disagreement at genus",
			mode: modeDisagreement,
			ids:  []int{562, 28901},
			want: disagreementResult{
				Rank:         "superkingdom",
				TaxID:        2,
				DisagreeRank: "genus",
				TaxIDs:       []int{561, 590},
			},
		},
		{
			name: "ancestor is not a disagreement",
			mode: modeDisagreement,
			ids:  []int{562, 83333},
			want: disagreementResult{Agree: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := queryTree(tree, tt.mode, queryItems(tt.ids...), testRanks)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestQueryTreeLineage(t *testing.T) {
	tree := testTree(t)
	res, err := queryTree(tree, modeLineage,
		[]queryItem{{"CP000001", 83333}, {"999999", 999999}}, testRanks)
	require.NoError(t, err)

	lins, ok := res.([]lineageResult)
	require.True(t, ok)
	require.Len(t, lins, 2)
	assert.Equal(t, []rankName{
		{"superkingdom", "Bacteria"},
		{"genus", "Escherichia"},
		{"species", "Escherichia coli"},
		{"strain", "Escherichia coli K-12"},
	}, lins[0].Lineage)
	assert.Empty(t, lins[1].Lineage, "unknown taxid has empty lineage")
}

func TestQueryTreeErrors(t *testing.T) {
	tree := testTree(t)

	_, err := queryTree(tree, modeLowest, queryItems(562, 28901), testRanks)
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.TaxdumpAmbiguousRankError, gnErr.Code)

	_, err = queryTree(tree, modeDisagreement, queryItems(7), testRanks)
	require.Error(t, err)
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.TaxdumpTaxIDNotFoundError, gnErr.Code)

	_, err = queryTree(tree, "median", queryItems(562), testRanks)
	assert.Error(t, err)
}

func TestWriteQueryResult(t *testing.T) {
	tests := []struct {
		name   string
		format string
		res    any
		want   string
	}{
		{
			name:   "lineage tsv",
			format: "tsv",
			res: []lineageResult{{
				queryItem: queryItem{"CP000001", 562},
				Lineage: []rankName{
					{"genus", "Escherichia"},
					{"species", "Escherichia coli"},
				},
			}},
			want: "CP000001\t562\tEscherichia; Escherichia coli\n",
		},
		{
			name:   "taxon tsv",
			format: "tsv",
			res:    taxonResult{TaxID: 2, Name: "Bacteria", Rank: "superkingdom"},
			want:   "2\tBacteria\tsuperkingdom\n",
		},
		{
			name:   "agreement tsv",
			format: "tsv",
			res:    disagreementResult{Agree: true},
			want:   "agree\n",
		},
		{
			name:   "disagreement tsv",
			format: "tsv",
			res: disagreementResult{
				Rank: "superkingdom", TaxID: 2,
				DisagreeRank: "genus", TaxIDs: []int{561, 590},
			},
			want: "superkingdom\t2\tgenus\t561,590\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeQueryResult(&buf, tt.format, tt.res)
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteQueryResultJSON(t *testing.T) {
	var buf bytes.Buffer
	res := disagreementResult{
		Rank: "superkingdom", TaxID: 2,
		DisagreeRank: "genus", TaxIDs: []int{561, 590},
	}
	err := writeQueryResult(&buf, "json", res)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"disagreeRank": "genus"`)
	assert.Contains(t, out, `"taxid": 2`)
	assert.Contains(t, out, `"agree": false`)
}

func TestAccessionLookupCSV(t *testing.T) {
	path := t.TempDir() + "/acc.csv"
	w, err := os.Create(path)
	require.NoError(t, err)
	_, err = w.WriteString(
		"CP000001,83333\nNZ_CP000002,562,lineage\nCP000005.1,590,x\n",
	)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	lookup, done, err := accessionLookup(path, false)
	require.NoError(t, err)
	defer done()

	id, ok, err := lookup("CP000001.2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 83333, id)

	id, ok, _ = lookup("NZ_CP000002")
	assert.True(t, ok)
	assert.Equal(t, 562, id)

	_, ok, _ = lookup("CP000003")
	assert.False(t, ok)

	id, ok, _ = lookup("CP000005.1")
	assert.True(t, ok, "versioned key is found as given")
	assert.Equal(t, 590, id)

	_, ok, _ = lookup("CP000005.2")
	assert.False(t, ok)

	lookup, done, err = accessionLookup("", false)
	require.NoError(t, err)
	done()
	assert.Nil(t, lookup)
}
