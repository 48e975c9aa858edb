/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gntaxdump/internal/ioaccession"
	"github.com/gnames/gntaxdump/internal/iofs"
	"github.com/gnames/gntaxdump/pkg/accession"
	"github.com/gnames/gntaxdump/pkg/taxonomy"
	"github.com/spf13/cobra"
)

const (
	modeLineage      = "lineage"
	modeLCA          = "lca"
	modeLowest       = "lowest"
	modeDisagreement = "disagreement"
)

// lookupFunc finds the taxid of an accession.
type lookupFunc func(acc string) (int, bool, error)

// queryItem is a query argument resolved to a taxid.
type queryItem struct {
	Query string `json:"query"`
	TaxID int    `json:"taxid"`
}

type rankName struct {
	Rank string `json:"rank"`
	Name string `json:"name"`
}

type lineageResult struct {
	queryItem
	Lineage []rankName `json:"lineage"`
}

type taxonResult struct {
	TaxID int    `json:"taxid"`
	Name  string `json:"name"`
	Rank  string `json:"rank"`
}

type disagreementResult struct {
	Agree        bool   `json:"agree"`
	Rank         string `json:"rank,omitempty"`
	TaxID        int    `json:"taxid,omitempty"`
	DisagreeRank string `json:"disagreeRank,omitempty"`
	TaxIDs       []int  `json:"taxids,omitempty"`
}

// getQueryCmd returns the query command.
func getQueryCmd() *cobra.Command {
	var (
		mode, format, accCSV string
		useIndex             bool
	)

	queryCmd := &cobra.Command{
		Use:   "query taxid|accession ...",
		Short: "Query lineages and consensus of taxids or accessions",
		Long: `Answer questions about given taxids or accessions.

Modes:
  lineage       names of ancestors at configured ranks, for every query
  lca           lowest common ancestor of all queries
  lowest        lowest configured rank that all queries agree on
  disagreement  first configured rank where queries disagree

Numeric arguments are taxids. Other arguments are accessions resolved
with --acc-csv (accession,taxid[,lineage] CSV) or --index (persistent
accession index built by 'gntaxdump index').

Examples:
  gntaxdump query 562 83333
  gntaxdump query -m lca 562 28901
  gntaxdump query -m disagreement --index CP000001.1 NZ_CP009072`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runQuery(cmd, args, mode, format, accCSV, useIndex)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addTaxdumpFlags(queryCmd)
	addRanksFlag(queryCmd)
	queryCmd.Flags().StringVarP(&mode, "mode", "m", modeLineage,
		"lineage, lca, lowest or disagreement")
	queryCmd.Flags().StringVarP(&format, "format", "f", "tsv",
		"output format: tsv or json")
	queryCmd.Flags().StringVar(&accCSV, "acc-csv", "",
		"accession,taxid CSV to resolve accessions")
	queryCmd.Flags().BoolVarP(&useIndex, "index", "i", false,
		"resolve accessions with the accession index")
	addIndexDirFlag(queryCmd)

	return queryCmd
}

func runQuery(
	cmd *cobra.Command,
	args []string,
	mode, format, accCSV string,
	useIndex bool,
) error {
	updateConfig(cmd)
	ctx, cancel := signalContext()
	defer cancel()

	lookup, done, err := accessionLookup(accCSV, useIndex)
	if err != nil {
		return err
	}
	defer done()

	items, err := resolveQueries(args, lookup)
	if err != nil {
		return err
	}

	tree, err := loadTree(ctx)
	if err != nil {
		return err
	}

	res, err := queryTree(tree, mode, items, cfg.Lineage.Ranks)
	if err != nil {
		return err
	}
	return writeQueryResult(cmd.OutOrStdout(), format, res)
}

// accessionLookup prepares resolving of accessions. The returned function
// releases resources of the lookup.
func accessionLookup(
	accCSV string,
	useIndex bool,
) (lookupFunc, func(), error) {
	noop := func() {}
	switch {
	case accCSV != "":
		r, err := iofs.Open(accCSV)
		if err != nil {
			return nil, noop, err
		}
		defer r.Close()
		idx, err := accession.Load(r)
		if err != nil {
			return nil, noop, err
		}
		lookup := func(acc string) (int, bool, error) {
			if id, ok := idx.TaxID(acc); ok {
				return id, true, nil
			}
			id, ok := idx.TaxID(ioaccession.StripVersion(acc))
			return id, ok, nil
		}
		return lookup, noop, nil
	case useIndex:
		s := ioaccession.NewStore(cfg.AccessionIndexDir())
		if err := s.Open(); err != nil {
			return nil, noop, err
		}
		done := func() { _ = s.Close() }
		return s.TaxID, done, nil
	default:
		return nil, noop, nil
	}
}

// resolveQueries converts arguments to taxids. Numbers are taxids, the
// rest are accessions. Unresolved accessions are reported and skipped.
func resolveQueries(args []string, lookup lookupFunc) ([]queryItem, error) {
	res := make([]queryItem, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if id, err := strconv.Atoi(arg); err == nil {
			res = append(res, queryItem{Query: arg, TaxID: id})
			continue
		}
		if lookup == nil {
			gn.Warn("Cannot resolve <em>%s</em>, use --acc-csv or --index", arg)
			continue
		}
		id, ok, err := lookup(arg)
		if err != nil {
			return nil, err
		}
		if !ok {
			gn.Warn("Accession <em>%s</em> not found", arg)
			continue
		}
		res = append(res, queryItem{Query: arg, TaxID: id})
	}
	return res, nil
}

// queryTree runs a query of the given mode.
func queryTree(
	tree *taxonomy.Tree,
	mode string,
	items []queryItem,
	ranks []string,
) (any, error) {
	ids := make([]int, len(items))
	for i := range items {
		ids[i] = items[i].TaxID
	}

	switch mode {
	case modeLineage:
		want := taxonomy.NewRankSet(ranks...)
		res := make([]lineageResult, len(items))
		for i, v := range items {
			lin := tree.LineageMap(v.TaxID, want)
			res[i] = lineageResult{queryItem: v, Lineage: []rankName{}}
			for _, rank := range ranks {
				if name, ok := lin[rank]; ok {
					res[i].Lineage = append(res[i].Lineage,
						rankName{Rank: rank, Name: name})
				}
			}
		}
		return res, nil
	case modeLCA:
		return taxon(tree, tree.FindLCA(ids)), nil
	case modeLowest:
		id, err := tree.LowestLineage(ids, ranks)
		if err != nil {
			return nil, err
		}
		return taxon(tree, id), nil
	case modeDisagreement:
		d, ok, err := tree.FirstDisagreement(ids, ranks)
		if err != nil {
			return nil, err
		}
		if !ok {
			return disagreementResult{Agree: true}, nil
		}
		return disagreementResult{
			Rank:         d.Rank,
			TaxID:        d.TaxID,
			DisagreeRank: d.DisagreeRank,
			TaxIDs:       d.TaxIDs,
		}, nil
	default:
		return nil, fmt.Errorf("unknown query mode %q", mode)
	}
}

func taxon(tree *taxonomy.Tree, id int) taxonResult {
	name, _ := tree.Name(id)
	rank, _ := tree.EffectiveRank(id)
	return taxonResult{TaxID: id, Name: name, Rank: rank}
}

// writeQueryResult writes query results as JSON or TSV.
func writeQueryResult(w io.Writer, format string, res any) error {
	if format == "json" {
		out, err := gnfmt.GNjson{Pretty: true}.Encode(res)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	switch r := res.(type) {
	case []lineageResult:
		for _, v := range r {
			names := make([]string, len(v.Lineage))
			for i := range v.Lineage {
				names[i] = v.Lineage[i].Name
			}
			err := cw.Write([]string{
				v.Query, strconv.Itoa(v.TaxID), strings.Join(names, "; "),
			})
			if err != nil {
				return err
			}
		}
	case taxonResult:
		if err := cw.Write([]string{strconv.Itoa(r.TaxID), r.Name, r.Rank}); err != nil {
			return err
		}
	case disagreementResult:
		row := []string{"agree"}
		if !r.Agree {
			ids := make([]string, len(r.TaxIDs))
			for i, v := range r.TaxIDs {
				ids[i] = strconv.Itoa(v)
			}
			row = []string{
				r.Rank, strconv.Itoa(r.TaxID),
				r.DisagreeRank, strings.Join(ids, ","),
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
