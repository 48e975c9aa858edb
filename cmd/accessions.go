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
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gntaxdump/internal/ioaccession"
	"github.com/gnames/gntaxdump/internal/iofs"
	"github.com/gnames/gntaxdump/pkg/accession"
	"github.com/spf13/cobra"
)

// getAccessionsCmd returns the accessions command.
func getAccessionsCmd() *cobra.Command {
	var output string

	accessionsCmd := &cobra.Command{
		Use:   "accessions [leaves.txt]",
		Short: "List accessions from a listing of sequence index leaves",
		Long: `Read names of leaves of a sequence index (one per line) and write them
as an accession list, ready for 'gntaxdump acc2taxid'.

Examples:
  gntaxdump accessions leaves.txt -o accessions.txt
  cat leaves.txt | gntaxdump accessions > accessions.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAccessions(cmd, args, output)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	accessionsCmd.Flags().StringVarP(&output, "output", "o", "-",
		"accession list file (- for STDOUT)")

	return accessionsCmd
}

func runAccessions(_ *cobra.Command, args []string, output string) error {
	ctx, cancel := signalContext()
	defer cancel()

	in := inputPath(args)
	r, err := iofs.Open(in)
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := iofs.Create(output)
	if err != nil {
		return err
	}

	_, err = ioaccession.Harvest(ctx, ioaccession.NewLineSource(r), w)
	if cerr := w.Close(); cerr != nil && err == nil {
		err = iofs.WriteFileError(output, cerr)
	}
	return err
}

// getAcc2TaxIDCmd returns the acc2taxid command.
func getAcc2TaxIDCmd() *cobra.Command {
	var (
		output, missing string
		useIndex        bool
	)

	acc2taxidCmd := &cobra.Command{
		Use:   "acc2taxid accessions.txt [accession2taxid files...]",
		Short: "Find taxids of accessions",
		Long: `Read a list of accessions (one per line, versions are ignored) and
write "accession,taxid" CSV rows for the ones that are found.

Accessions are looked up either in NCBI accession2taxid files (plain or
gzipped), which are scanned in the given order and only as long as some
accessions remain unresolved, or in the persistent accession index
(--index).

Examples:
  gntaxdump acc2taxid accessions.txt nucl_gb.accession2taxid.gz \
    nucl_wgs.accession2taxid.gz -o acc2taxid.csv
  gntaxdump acc2taxid accessions.txt --index -o acc2taxid.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAcc2TaxID(cmd, args, output, missing, useIndex)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	acc2taxidCmd.Flags().StringVarP(&output, "output", "o", "-",
		"accession,taxid CSV file (- for STDOUT)")
	acc2taxidCmd.Flags().StringVar(&missing, "missing", "",
		"file for accessions that were not found")
	acc2taxidCmd.Flags().BoolVarP(&useIndex, "index", "i", false,
		"use the persistent accession index")
	addIndexDirFlag(acc2taxidCmd)

	return acc2taxidCmd
}

func runAcc2TaxID(
	cmd *cobra.Command,
	args []string,
	output, missingPath string,
	useIndex bool,
) error {
	updateConfig(cmd)
	ctx, cancel := signalContext()
	defer cancel()

	files := args[1:]
	if !useIndex && len(files) == 0 {
		return errors.New("give accession2taxid files or use --index")
	}

	r, err := iofs.Open(args[0])
	if err != nil {
		return err
	}
	accs, err := ioaccession.ReadAccessions(r)
	r.Close()
	if err != nil {
		return iofs.ReadFileError(args[0], err)
	}
	gn.Info("Looking for <em>%s</em> accessions",
		humanize.Comma(int64(len(accs))))

	w, err := iofs.Create(output)
	if err != nil {
		return err
	}

	var missing []string
	if useIndex {
		missing, err = lookupIndex(accs, w)
	} else {
		missing, err = ioaccession.JoinFiles(ctx, accs, files, w)
	}
	if cerr := w.Close(); cerr != nil && err == nil {
		err = iofs.WriteFileError(output, cerr)
	}
	if err != nil {
		return err
	}

	if missingPath == "" || len(missing) == 0 {
		return nil
	}
	return writeLines(missingPath, missing)
}

// lookupIndex writes "accession,taxid" rows for accessions found in the
// persistent index.
func lookupIndex(accs map[string]struct{}, w io.Writer) ([]string, error) {
	s := ioaccession.NewStore(cfg.AccessionIndexDir())
	if err := s.Open(); err != nil {
		return nil, err
	}
	defer s.Close()

	total := len(accs)
	cw := csv.NewWriter(w)
	missing, err := ioaccession.LookupIndex(s, accs,
		func(rec accession.Record) error {
			return cw.Write([]string{rec.Accession, strconv.Itoa(rec.TaxID)})
		},
	)
	if err != nil {
		return nil, err
	}
	cw.Flush()
	if err = cw.Error(); err != nil {
		return nil, err
	}

	if len(missing) > 0 {
		gn.Warn("Failed to find <em>%s</em> of %s accessions",
			humanize.Comma(int64(len(missing))), humanize.Comma(int64(total)))
	} else {
		gn.Info("Found all <em>%s</em> accessions",
			humanize.Comma(int64(total)))
	}
	return missing, nil
}

// writeLines saves lines to a file.
func writeLines(path string, lines []string) error {
	w, err := iofs.Create(path)
	if err != nil {
		return err
	}
	for _, v := range lines {
		if _, err = fmt.Fprintln(w, v); err != nil {
			w.Close()
			return iofs.WriteFileError(path, err)
		}
	}
	if err = w.Close(); err != nil {
		return iofs.WriteFileError(path, err)
	}
	return nil
}
