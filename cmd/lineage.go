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
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gntaxdump/internal/iofs"
	"github.com/gnames/gntaxdump/internal/iolineage"
	"github.com/gnames/gntaxdump/pkg/parserpool"
	"github.com/spf13/cobra"
)

// getLineageCmd returns the lineage command.
func getLineageCmd() *cobra.Command {
	var output, sqlitePath string

	lineageCmd := &cobra.Command{
		Use:   "lineage [accession-taxid.csv]",
		Short: "Convert accession/taxid CSV to lineage CSV",
		Long: `Read CSV rows of accession and taxid (no header) and write lineages
with one column per rank. Missing ranks give empty cells.

Input can be gzipped. Without input file, or with "-", rows are read from
STDIN. Output goes to STDOUT unless --output is given; an output name
ending with .gz is compressed.

Examples:
  gntaxdump lineage acc2taxid.csv -o lineages.csv
  gntaxdump lineage acc2taxid.csv --ranks phylum,genus,species
  gntaxdump lineage acc2taxid.csv --canonical --sqlite lineages.sqlite`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLineage(cmd, args, output, sqlitePath)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addTaxdumpFlags(lineageCmd)
	addRanksFlag(lineageCmd)
	lineageCmd.Flags().StringVarP(&output, "output", "o", "-",
		"lineage CSV file (- for STDOUT)")
	lineageCmd.Flags().StringVar(&sqlitePath, "sqlite", "",
		"save lineages to SQLite database instead of CSV")
	lineageCmd.Flags().BoolP("canonical", "c", false,
		"replace scientific names with canonical forms")
	lineageCmd.Flags().IntP("jobs", "j", 0,
		"number of name parsers for --canonical")

	return lineageCmd
}

func runLineage(
	cmd *cobra.Command,
	args []string,
	output, sqlitePath string,
) error {
	updateConfig(cmd)
	ctx, cancel := signalContext()
	defer cancel()

	tree, err := loadTree(ctx)
	if err != nil {
		return err
	}

	var pool parserpool.Pool
	if cfg.Lineage.Canonical {
		pool = parserpool.NewPool(cfg.JobsNumber)
		defer pool.Close()
	}
	exp := iolineage.NewExporter(tree, cfg.Lineage.Ranks, pool)

	in := inputPath(args)
	r, err := iofs.Open(in)
	if err != nil {
		return err
	}
	defer r.Close()

	var count int
	if sqlitePath != "" {
		count, err = exp.WriteSQLite(ctx, r, sqlitePath)
		if err != nil {
			return err
		}
		gn.Info("Saved <em>%s</em> lineages to <em>%s</em>",
			humanize.Comma(int64(count)), sqlitePath)
		return nil
	}

	w, err := iofs.Create(output)
	if err != nil {
		return err
	}
	count, err = exp.WriteCSV(ctx, r, w)
	if cerr := w.Close(); cerr != nil && err == nil {
		err = iofs.WriteFileError(output, cerr)
	}
	if err != nil {
		return err
	}

	gn.Info("Wrote <em>%s</em> lineages", humanize.Comma(int64(count)))
	return nil
}
