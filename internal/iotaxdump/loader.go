// Package iotaxdump loads NCBI taxonomy dump files into a taxonomy.Tree,
// keeping binary caches of parsed dumps next to them.
package iotaxdump

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gntaxdump/internal/iofs"
	"github.com/gnames/gntaxdump/pkg/config"
	"github.com/gnames/gntaxdump/pkg/taxonomy"
	"golang.org/x/sync/errgroup"
)

// Cache modes.
const (
	// ModeReadWrite uses valid caches and writes missing or stale ones.
	ModeReadWrite = "readwrite"
	// ModeReadOnly uses valid caches, but never writes them.
	ModeReadOnly = "readonly"
	// ModeOff always parses dump files.
	ModeOff = "off"
)

// Loader reads nodes.dmp and names.dmp files.
type Loader struct {
	suffix string
	mode   string
}

// NewLoader creates a Loader from taxdump settings.
func NewLoader(cfg config.TaxdumpConfig) *Loader {
	res := Loader{
		suffix: cfg.CacheSuffix,
		mode:   cfg.CacheMode,
	}
	if res.suffix == "" {
		res.mode = ModeOff
	}
	return &res
}

// Load parses nodes and names dumps concurrently and builds a tree.
func (l *Loader) Load(
	ctx context.Context,
	nodesPath, namesPath string,
) (*taxonomy.Tree, error) {
	var nodes nodesData
	var names namesData

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		nodes, err = loadDump(gCtx, l, nodesPath, parseNodes)
		return err
	})

	g.Go(func() error {
		var err error
		names, err = loadDump(gCtx, l, namesPath, parseNames)
		return err
	})

	err := g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, err
	}

	tree, err := taxonomy.New(nodes.Parents, nodes.Info, names.Names)
	if err != nil {
		return nil, err
	}

	gn.Info("Loaded taxonomy with <em>%s</em> taxa",
		humanize.Comma(int64(tree.Len())))
	return tree, nil
}

func parseNodes(r io.Reader, path string, src signature) (nodesData, error) {
	parents, info, err := taxonomy.ParseNodes(r, path)
	if err != nil {
		return nodesData{}, err
	}
	res := nodesData{
		Source:  src,
		Parents: parents,
		Info:    info,
	}
	return res, nil
}

func parseNames(r io.Reader, path string, src signature) (namesData, error) {
	names, err := taxonomy.ParseNames(r, path)
	if err != nil {
		return namesData{}, err
	}
	res := namesData{
		Source: src,
		Names:  names,
	}
	return res, nil
}

// loadDump returns parsed content of a dump file, from its cache when the
// cache is valid.
func loadDump[T sourced](
	ctx context.Context,
	l *Loader,
	path string,
	parse func(io.Reader, string, signature) (T, error),
) (T, error) {
	var res T
	src, err := fileSignature(path)
	if err != nil {
		return res, iofs.ReadFileError(path, err)
	}

	cache := cachePath(path, l.suffix)
	if l.mode != ModeOff {
		if _, err = os.Stat(cache); err == nil {
			res, err = readCache[T](cache, src)
			if err == nil {
				slog.Info("Using taxonomy cache", "path", cache)
				return res, nil
			}
			slog.Warn("Ignoring taxonomy cache", "path", cache, "error", err)
		}
	}

	r, err := iofs.Open(path)
	if err != nil {
		return res, err
	}
	defer r.Close()

	slog.Info("Parsing taxonomy dump", "path", path)
	res, err = parse(&ctxReader{ctx: ctx, r: r}, path, src)
	if err != nil {
		return res, err
	}

	if l.mode == ModeReadWrite {
		if err = writeCache(cache, res); err != nil {
			slog.Warn("Cannot save taxonomy cache", "path", cache, "error", err)
		}
	}
	return res, nil
}

// ctxReader stops reading when its context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
