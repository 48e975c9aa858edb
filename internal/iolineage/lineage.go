// Package iolineage exports lineages of accession/taxid pairs to CSV
// files and SQLite databases.
package iolineage

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gnames/gntaxdump/pkg/accession"
	"github.com/gnames/gntaxdump/pkg/parserpool"
	"github.com/gnames/gntaxdump/pkg/taxonomy"
)

// Pair is an accession with its taxid.
type Pair struct {
	Accession string
	TaxID     int
}

// Exporter converts accession/taxid pairs to lineage rows.
type Exporter struct {
	tree  *taxonomy.Tree
	ranks []string
	want  taxonomy.RankSet
	pool  parserpool.Pool
}

// NewExporter creates an Exporter for the given ranks. If pool is not
// nil, names are replaced by their canonical forms.
func NewExporter(
	tree *taxonomy.Tree,
	ranks []string,
	pool parserpool.Pool,
) *Exporter {
	res := Exporter{
		tree:  tree,
		ranks: ranks,
		want:  taxonomy.NewRankSet(ranks...),
		pool:  pool,
	}
	return &res
}

// Header returns the header of lineage table.
func (e *Exporter) Header() []string {
	res := make([]string, 0, len(e.ranks)+2)
	res = append(res, "accession", "taxid")
	return append(res, e.ranks...)
}

// Row returns accession, taxid and names of the pair's ancestors, one per
// rank. Ranks missing from the lineage give empty cells.
func (e *Exporter) Row(p Pair) []string {
	lin := e.tree.LineageMap(p.TaxID, e.want)
	res := make([]string, 0, len(e.ranks)+2)
	res = append(res, p.Accession, strconv.Itoa(p.TaxID))
	for _, rank := range e.ranks {
		name := lin[rank]
		if name != "" && e.pool != nil && !keepVerbatim(rank) {
			name = e.pool.Canonical(name)
		}
		res = append(res, name)
	}
	return res
}

// keepVerbatim is true for ranks whose names lose their identity in a
// canonical form. A strain name would be reduced to its species.
func keepVerbatim(rank string) bool {
	return rank == taxonomy.StrainRank || rank == taxonomy.NoRank
}

// ReadPairs reads CSV rows that start with accession and taxid and calls
// fn for each of them. Empty rows are skipped, extra columns are ignored.
func ReadPairs(
	ctx context.Context,
	r io.Reader,
	fn func(Pair) error,
) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	var row int
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		row++
		if err != nil {
			return accession.ParseError(row, err)
		}
		if row%10_000 == 0 {
			if err = ctx.Err(); err != nil {
				return err
			}
		}
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			continue
		}
		if len(fields) < 2 {
			return accession.ParseError(row, errors.New("expected accession and taxid"))
		}

		taxID, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return accession.ParseError(row, err)
		}
		if err = fn(Pair{Accession: fields[0], TaxID: taxID}); err != nil {
			return err
		}
	}
}

// WriteCSV reads accession/taxid CSV and writes a lineage CSV with a
// header. It returns the number of written lineages.
func (e *Exporter) WriteCSV(
	ctx context.Context,
	r io.Reader,
	w io.Writer,
) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(e.Header()); err != nil {
		return 0, err
	}

	var count int
	err := ReadPairs(ctx, r, func(p Pair) error {
		count++
		return cw.Write(e.Row(p))
	})
	if err != nil {
		return count, err
	}

	cw.Flush()
	return count, cw.Error()
}
