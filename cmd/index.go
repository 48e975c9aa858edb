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
	"github.com/gnames/gntaxdump/internal/ioaccession"
	"github.com/spf13/cobra"
)

// getIndexCmd returns the index command.
func getIndexCmd() *cobra.Command {
	var (
		reset     bool
		batchSize int
	)

	indexCmd := &cobra.Command{
		Use:   "index accession2taxid files...",
		Short: "Build the persistent accession index",
		Long: `Load NCBI accession2taxid files (plain or gzipped) into a persistent
key-value index. Accessions are stored without version and without the
RefSeq "NZ_" prefix. When an accession repeats, the last record wins.

The index lives in ~/.cache/gntaxdump/accessions unless accession.index_dir
is set in config.yaml or --index-dir is given.

Examples:
  gntaxdump index nucl_gb.accession2taxid.gz nucl_wgs.accession2taxid.gz
  gntaxdump index --reset nucl_gb.accession2taxid.gz`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runIndex(cmd, args, reset, batchSize)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	indexCmd.Flags().BoolVarP(&reset, "reset", "r", false,
		"remove existing index data first")
	indexCmd.Flags().IntVarP(&batchSize, "batch-size", "b", 50_000,
		"number of records written at once")
	addIndexDirFlag(indexCmd)

	return indexCmd
}

func runIndex(
	cmd *cobra.Command,
	args []string,
	reset bool,
	batchSize int,
) error {
	updateConfig(cmd)
	ctx, cancel := signalContext()
	defer cancel()

	indexDir := cfg.AccessionIndexDir()
	s := ioaccession.NewStore(indexDir)

	if reset {
		gn.Info("Removing old index data from <em>%s</em>", indexDir)
		if err := s.Reset(); err != nil {
			return err
		}
	}

	if err := s.Open(); err != nil {
		return err
	}
	defer s.Close()

	if _, err := ioaccession.BuildIndex(ctx, s, args, batchSize); err != nil {
		return err
	}

	total, err := s.Len()
	if err != nil {
		return err
	}
	gn.Info("Index contains <em>%s</em> accessions",
		humanize.Comma(int64(total)))
	return nil
}
