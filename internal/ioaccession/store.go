package ioaccession

import (
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"
	"github.com/gnames/gntaxdump/pkg/accession"
)

// Store is a persistent accession index kept in a Badger key-value
// database. Keys are accessions without version and RefSeq prefix,
// values are GOB-encoded accession records.
type Store struct {
	dir string
	db  *badger.DB
}

// NewStore creates a Store located at dir. Call Open before use.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the location of the index.
func (s *Store) Dir() string {
	return s.dir
}

// Key converts an accession to the form used as index key.
func Key(acc string) string {
	return accession.Normalize(StripVersion(acc))
}

// Open opens the index, creating its directory if needed.
func (s *Store) Open() error {
	if s.db != nil {
		slog.Warn("Accession index is already open", "dir", s.dir)
		return nil
	}

	if err := gnsys.MakeDir(s.dir); err != nil {
		return StoreError(s.dir, err)
	}

	options := badger.DefaultOptions(s.dir)
	options.Logger = nil

	db, err := badger.Open(options)
	if err != nil {
		return StoreError(s.dir, err)
	}

	s.db = db
	slog.Info("Accession index opened", "dir", s.dir)
	return nil
}

// Close closes the index.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil
	if err != nil {
		return StoreError(s.dir, err)
	}

	slog.Info("Accession index closed", "dir", s.dir)
	return nil
}

// Reset removes all data of a closed index.
func (s *Store) Reset() error {
	if s.db != nil {
		return StoreError(s.dir, errors.New("cannot reset an open index"))
	}
	if err := gnsys.MakeDir(s.dir); err != nil {
		return StoreError(s.dir, err)
	}
	if err := gnsys.CleanDir(s.dir); err != nil {
		return StoreError(s.dir, err)
	}
	return nil
}

// Put saves records to the index. Records with the same key overwrite
// each other, the last one wins.
func (s *Store) Put(recs []accession.Record) error {
	if s.db == nil {
		return StoreNotOpenError(s.dir)
	}

	enc := gnfmt.GNgob{}
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, rec := range recs {
		rec.Accession = Key(rec.Accession)
		val, err := enc.Encode(rec)
		if err != nil {
			return StoreError(s.dir, err)
		}
		if err = wb.Set([]byte(rec.Accession), val); err != nil {
			return StoreError(s.dir, err)
		}
	}

	if err := wb.Flush(); err != nil {
		return StoreError(s.dir, err)
	}
	return nil
}

// Get returns the record of an accession, or nil if the accession is not
// in the index.
func (s *Store) Get(acc string) (*accession.Record, error) {
	if s.db == nil {
		return nil, StoreNotOpenError(s.dir)
	}

	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(Key(acc)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, StoreError(s.dir, err)
	}

	if val == nil {
		return nil, nil
	}

	enc := gnfmt.GNgob{}
	var res accession.Record
	if err = enc.Decode(val, &res); err != nil {
		return nil, StoreError(s.dir, err)
	}
	return &res, nil
}

// TaxID returns the taxid of an accession. The second value is false if
// the accession is not in the index.
func (s *Store) TaxID(acc string) (int, bool, error) {
	rec, err := s.Get(acc)
	if err != nil || rec == nil {
		return 0, false, err
	}
	return rec.TaxID, true, nil
}

// Len counts accessions in the index.
func (s *Store) Len() (int, error) {
	if s.db == nil {
		return 0, StoreNotOpenError(s.dir)
	}

	var res int
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			res++
		}
		return nil
	})
	if err != nil {
		return 0, StoreError(s.dir, err)
	}
	return res, nil
}
