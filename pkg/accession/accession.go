// Package accession keeps accession to taxid mapping loaded from a CSV
// file with accession, taxid and lineage columns.
package accession

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
)

// RefSeqPrefix marks RefSeq copies of GenBank accessions. It is removed
// before any lookup.
const RefSeqPrefix = "NZ_"

// Record is one row of accession to taxid mapping.
type Record struct {
	// Accession of a sequence, without the RefSeq prefix.
	Accession string
	// TaxID of the organism the sequence belongs to.
	TaxID int
	// Lineage is kept as given in the source, it is not interpreted.
	Lineage string
}

// Index maps accessions to their records.
type Index struct {
	records map[string]Record
}

// Normalize removes the RefSeq prefix from an accession.
func Normalize(acc string) string {
	return strings.TrimPrefix(acc, RefSeqPrefix)
}

// Load reads CSV rows of accession, taxid and lineage. The file has no
// header. Records keep accessions as given, lookups ignore the RefSeq
// prefix. The lineage column can be omitted. If an accession appears more
// than once, the last row wins.
func Load(r io.Reader) (*Index, error) {
	res := Index{records: make(map[string]Record)}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	var row int
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, ParseError(row, err)
		}
		if len(fields) < 2 {
			return nil, ParseError(row, errFieldsNum)
		}

		taxID, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, ParseError(row, err)
		}

		rec := Record{
			Accession: fields[0],
			TaxID:     taxID,
		}
		if len(fields) > 2 {
			rec.Lineage = fields[2]
		}
		res.records[Normalize(rec.Accession)] = rec
	}

	return &res, nil
}

// Len returns the number of accessions in the index.
func (idx *Index) Len() int {
	return len(idx.records)
}

// TaxID returns the taxid of an accession. The second value is false if
// the accession is unknown.
func (idx *Index) TaxID(acc string) (int, bool) {
	rec, ok := idx.Record(acc)
	if !ok {
		return 0, false
	}
	return rec.TaxID, true
}

// Record returns the whole record of an accession.
func (idx *Index) Record(acc string) (Record, bool) {
	rec, ok := idx.records[Normalize(acc)]
	return rec, ok
}
