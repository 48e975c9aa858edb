package ioaccession

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gntaxdump/internal/iofs"
	"github.com/gnames/gntaxdump/pkg/accession"
)

// BuildIndex loads records from accession2taxid files into an open
// Store, batchSize records at a time. It returns the number of loaded
// records.
func BuildIndex(
	ctx context.Context,
	s *Store,
	files []string,
	batchSize int,
) (int, error) {
	if batchSize <= 0 {
		batchSize = 50_000
	}

	var count int
	batch := make([]accession.Record, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.Put(batch); err != nil {
			return err
		}
		count += len(batch)
		batch = batch[:0]
		return nil
	}

	for _, file := range files {
		r, err := iofs.OpenWithProgress(file, "Indexing "+file+": ")
		if err != nil {
			return count, err
		}
		err = scanAcc2TaxID(ctx, r, file,
			func(rec accession.Record) (bool, error) {
				batch = append(batch, rec)
				if len(batch) < batchSize {
					return true, nil
				}
				return true, flush()
			},
		)
		r.Close()
		if err != nil {
			return count, err
		}
	}

	if err := flush(); err != nil {
		return count, err
	}

	gn.Info("Indexed <em>%s</em> accessions in <em>%s</em>",
		humanize.Comma(int64(count)), s.Dir())
	return count, nil
}

// LookupIndex calls fn for every accession found in the Store, in
// alphabetical order, and returns accessions that are missing.
func LookupIndex(
	s *Store,
	accs map[string]struct{},
	fn func(accession.Record) error,
) ([]string, error) {
	j := NewJoin(accs)
	for _, acc := range j.Missing() {
		rec, err := s.Get(acc)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			continue
		}
		rec.Accession = acc
		if err = fn(*rec); err != nil {
			return nil, err
		}
		delete(j.wanted, acc)
		j.found++
	}
	return j.Missing(), nil
}
