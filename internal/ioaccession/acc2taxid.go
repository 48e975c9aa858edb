// Package ioaccession reads and writes accession data: accession lists,
// NCBI accession2taxid and assembly summary files, and the persistent
// accession index.
package ioaccession

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gntaxdump/internal/iofs"
	"github.com/gnames/gntaxdump/pkg/accession"
)

// acc2taxidFields is the number of columns in accession2taxid files:
// accession, accession.version, taxid and gi.
const acc2taxidFields = 4

// reportEvery is the number of lines between progress log records.
const reportEvery = 1_000_000

// StripVersion removes the version suffix starting at the first dot.
func StripVersion(acc string) string {
	if i := strings.IndexByte(acc, '.'); i >= 0 {
		return acc[:i]
	}
	return acc
}

// ReadAccessions reads one accession per line and returns them as a set.
// Versions are removed, blank lines are skipped.
func ReadAccessions(r io.Reader) (map[string]struct{}, error) {
	res := make(map[string]struct{})
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		acc := StripVersion(strings.TrimSpace(sc.Text()))
		if acc == "" {
			continue
		}
		res[acc] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Join finds taxids of a set of accessions in accession2taxid files.
// Found accessions leave the set, so scanning stops as soon as all of
// them are found.
type Join struct {
	wanted map[string]struct{}
	found  int
}

// NewJoin creates a Join for a set of accessions. The set is owned by
// Join afterwards.
func NewJoin(accs map[string]struct{}) *Join {
	return &Join{wanted: accs}
}

// Done is true when all accessions are found.
func (j *Join) Done() bool {
	return len(j.wanted) == 0
}

// Found returns the number of found accessions.
func (j *Join) Found() int {
	return j.found
}

// Missing returns accessions not found so far in alphabetical order.
func (j *Join) Missing() []string {
	res := make([]string, 0, len(j.wanted))
	for k := range j.wanted {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

// Scan reads accession2taxid content and calls fn for every accession
// from the set. The first line is a header. Lines that cannot be parsed
// are logged and skipped.
func (j *Join) Scan(
	ctx context.Context,
	r io.Reader,
	file string,
	fn func(accession.Record) error,
) error {
	if j.Done() {
		return nil
	}

	return scanAcc2TaxID(ctx, r, file, func(rec accession.Record) (bool, error) {
		if _, ok := j.wanted[rec.Accession]; !ok {
			return true, nil
		}
		if err := fn(rec); err != nil {
			return false, err
		}
		delete(j.wanted, rec.Accession)
		j.found++
		return !j.Done(), nil
	})
}

// JoinFiles writes "accession,taxid" CSV rows for accessions found in
// accession2taxid files. Files are read in order until all accessions
// are found. It returns accessions that were not found.
func JoinFiles(
	ctx context.Context,
	accs map[string]struct{},
	files []string,
	w io.Writer,
) ([]string, error) {
	j := NewJoin(accs)
	total := len(accs)
	cw := csv.NewWriter(w)

	for _, file := range files {
		if j.Done() {
			break
		}
		r, err := iofs.OpenWithProgress(file, "Scanning "+file+": ")
		if err != nil {
			return nil, err
		}
		err = j.Scan(ctx, r, file, func(rec accession.Record) error {
			return cw.Write([]string{rec.Accession, strconv.Itoa(rec.TaxID)})
		})
		r.Close()
		if err != nil {
			return nil, err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}

	missing := j.Missing()
	if len(missing) > 0 {
		gn.Warn("Failed to find <em>%s</em> of %s accessions",
			humanize.Comma(int64(len(missing))), humanize.Comma(int64(total)))
	} else {
		gn.Info("Found all <em>%s</em> accessions",
			humanize.Comma(int64(j.Found())))
	}
	return missing, nil
}

// scanAcc2TaxID calls fn for every record of accession2taxid content
// until fn returns false or an error.
func scanAcc2TaxID(
	ctx context.Context,
	r io.Reader,
	file string,
	fn func(accession.Record) (bool, error),
) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lineNum int
	for sc.Scan() {
		lineNum++
		if lineNum == 1 {
			continue
		}
		if lineNum%reportEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			slog.Debug("Reading accession2taxid", "file", file,
				"lines", humanize.Comma(int64(lineNum)))
		}

		fields := strings.Fields(sc.Text())
		if len(fields) != acc2taxidFields {
			slog.Warn("Ignoring line", "file", file, "line", lineNum)
			continue
		}
		taxID, err := strconv.Atoi(fields[2])
		if err != nil {
			slog.Warn("Ignoring line with bad taxid", "file", file,
				"line", lineNum, "taxid", fields[2])
			continue
		}

		goOn, err := fn(accession.Record{Accession: fields[0], TaxID: taxID})
		if err != nil {
			return err
		}
		if !goOn {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return iofs.ReadFileError(file, err)
	}
	return ctx.Err()
}
