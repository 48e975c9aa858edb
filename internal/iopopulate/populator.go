// Package iopopulate implements Populator interface for importing
// NCBI taxonomy into PostgreSQL.
// This is an impure I/O package that performs bulk inserts.
package iopopulate

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gntaxdump/pkg/config"
	"github.com/gnames/gntaxdump/pkg/db"
	"github.com/gnames/gntaxdump/pkg/lifecycle"
	"github.com/gnames/gntaxdump/pkg/taxonomy"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

// populator implements the Populator interface.
type populator struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a new Populator.
func New(cfg *config.Config, op db.Operator) lifecycle.Populator {
	return &populator{cfg: cfg, operator: op}
}

// Populate replaces the content of the taxa table with the nodes of the
// tree, each with its classification breadcrumbs.
func (p *populator) Populate(
	ctx context.Context,
	tree *taxonomy.Tree,
) (int, error) {
	pool := p.operator.Pool()
	if pool == nil {
		return 0, NotConnectedError()
	}

	startTime := time.Now()
	slog.Info("Starting database population", "taxa", tree.Len())

	gn.Info("(1/3) Removing old taxa...")
	_, err := pool.Exec(ctx, "TRUNCATE TABLE "+taxaTable())
	if err != nil {
		return 0, TaxaError("truncate", err)
	}

	gn.Info("(2/3) Importing taxa...")
	count, err := p.importTaxa(ctx, tree)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0, CancelledError(err)
		}
		return 0, err
	}
	gn.Message("<em>Imported %s taxa</em>", humanize.Comma(int64(count)))

	gn.Info("(3/3) Analyzing taxa table...")
	if _, err = pool.Exec(ctx, "ANALYZE "+taxaTable()); err != nil {
		return 0, TaxaError("analyze", err)
	}

	duration := gnfmt.TimeString(time.Since(startTime).Seconds())
	slog.Info("Population complete", "taxa", count, "duration", duration)
	gn.Info("Population complete. Elapsed time: <em>%s</em>", duration)
	return count, nil
}

// importTaxa converts nodes to rows with concurrent workers and saves
// them in batches.
func (p *populator) importTaxa(
	ctx context.Context,
	tree *taxonomy.Tree,
) (int, error) {
	ids := tree.TaxIDs()
	chIn := make(chan int)
	chOut := make(chan []any)

	g, ctx := errgroup.WithContext(ctx)
	var wg sync.WaitGroup

	for range max(p.cfg.JobsNumber, 1) {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return taxaWorker(ctx, tree, chIn, chOut)
		})
	}

	go func() {
		wg.Wait()
		close(chOut)
	}()

	g.Go(func() error {
		defer close(chIn)
		for _, id := range ids {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- id:
			}
		}
		return nil
	})

	var count int
	g.Go(func() error {
		var err error
		count, err = p.saveTaxa(ctx, chOut, len(ids))
		return err
	})

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return count, nil
}

// saveTaxa collects rows into batches and sends them to PostgreSQL with
// CopyFrom.
func (p *populator) saveTaxa(
	ctx context.Context,
	chOut <-chan []any,
	total int,
) (int, error) {
	batchSize := max(p.cfg.Database.BatchSize, 1)
	records := make([][]any, 0, batchSize)
	var count int

	bar := pb.Full.Start(total)
	bar.Set("prefix", "Importing taxa: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for row := range chOut {
		records = append(records, row)
		if len(records) < batchSize {
			continue
		}
		if err := p.insertTaxa(ctx, records); err != nil {
			return 0, err
		}
		count += len(records)
		bar.Add(len(records))
		records = records[:0]
	}

	if len(records) > 0 {
		if err := p.insertTaxa(ctx, records); err != nil {
			return 0, err
		}
		count += len(records)
		bar.Add(len(records))
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return count, nil
}

// insertTaxa performs bulk insert using pgx CopyFrom.
func (p *populator) insertTaxa(ctx context.Context, records [][]any) error {
	_, err := p.operator.Pool().CopyFrom(
		ctx,
		pgx.Identifier{taxaTable()},
		taxaColumns,
		pgx.CopyFromRows(records),
	)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return TaxaError("copy", err)
	}
	return nil
}
