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
	"github.com/gnames/gntaxdump/internal/iofs"
	"github.com/spf13/cobra"
)

// getAssemblyCmd returns the assembly command.
func getAssemblyCmd() *cobra.Command {
	var output string

	assemblyCmd := &cobra.Command{
		Use:   "assembly [assembly_summary.txt]",
		Short: "Convert NCBI assembly summary to accession/taxid TSV",
		Long: `Read NCBI assembly_summary.txt (plain or gzipped) and write a TSV
file with accession, accession.version and taxid columns.

Examples:
  gntaxdump assembly assembly_summary_refseq.txt -o assemblies.tsv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAssembly(args, output)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	assemblyCmd.Flags().StringVarP(&output, "output", "o", "-",
		"TSV file (- for STDOUT)")

	return assemblyCmd
}

func runAssembly(args []string, output string) error {
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

	count, err := ioaccession.ParseAssemblySummary(r, w)
	if cerr := w.Close(); cerr != nil && err == nil {
		err = iofs.WriteFileError(output, cerr)
	}
	if err != nil {
		return err
	}

	gn.Info("Converted <em>%s</em> assemblies", humanize.Comma(int64(count)))
	return nil
}
