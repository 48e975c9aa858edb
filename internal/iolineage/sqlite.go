package iolineage

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gnames/gnsys"
	_ "modernc.org/sqlite"
)

// LineagesTable is the name of the SQLite table with lineages.
const LineagesTable = "lineages"

// WriteSQLite reads accession/taxid CSV and saves lineages to a SQLite
// database at path. An existing lineages table is replaced. All rows are
// written in one transaction. It returns the number of saved lineages.
func (e *Exporter) WriteSQLite(
	ctx context.Context,
	r io.Reader,
	path string,
) (count int, err error) {
	if err = gnsys.MakeDir(filepath.Dir(path)); err != nil {
		return 0, ExportError(path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, ExportError(path, err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = ExportError(path, cerr)
		}
	}()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, ExportError(path, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, q := range e.schema() {
		if _, err = tx.ExecContext(ctx, q); err != nil {
			return 0, ExportError(path, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, e.insertQuery())
	if err != nil {
		return 0, ExportError(path, err)
	}
	defer stmt.Close()

	err = ReadPairs(ctx, r, func(p Pair) error {
		row := e.Row(p)
		args := make([]any, len(row))
		args[0] = row[0]
		args[1] = p.TaxID
		for i := 2; i < len(row); i++ {
			if row[i] != "" {
				args[i] = row[i]
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return ExportError(path, err)
		}
		count++
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, ExportError(path, err)
	}

	slog.Info("Lineages saved to SQLite", "path", path, "rows", count)
	return count, nil
}

func (e *Exporter) schema() []string {
	cols := make([]string, 0, len(e.ranks)+2)
	cols = append(cols, "accession TEXT NOT NULL", "taxid INTEGER NOT NULL")
	for _, rank := range e.ranks {
		cols = append(cols, quoteIdent(rank)+" TEXT")
	}

	return []string{
		"DROP TABLE IF EXISTS " + LineagesTable,
		fmt.Sprintf("CREATE TABLE %s (\n  %s\n)",
			LineagesTable, strings.Join(cols, ",\n  ")),
		fmt.Sprintf("CREATE INDEX %s_accession_idx ON %s (accession)",
			LineagesTable, LineagesTable),
		fmt.Sprintf("CREATE INDEX %s_taxid_idx ON %s (taxid)",
			LineagesTable, LineagesTable),
	}
}

func (e *Exporter) insertQuery() string {
	cols := make([]string, 0, len(e.ranks)+2)
	cols = append(cols, "accession", "taxid")
	for _, rank := range e.ranks {
		cols = append(cols, quoteIdent(rank))
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		LineagesTable, strings.Join(cols, ", "), marks)
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
