package iotaxdump

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"
	"github.com/gnames/gntaxdump/internal/iofs"
	"github.com/gnames/gntaxdump/pkg/taxonomy"
)

var errStale = errors.New("cache does not match its source file")

// signature identifies a version of a dump file. A cache is valid only
// when the signature it keeps matches the current one of its source.
type signature struct {
	Size    int64
	ModTime int64
}

func fileSignature(path string) (signature, error) {
	info, err := os.Stat(path)
	if err != nil {
		return signature{}, err
	}
	res := signature{
		Size:    info.Size(),
		ModTime: info.ModTime().UnixNano(),
	}
	return res, nil
}

type nodesData struct {
	Source  signature
	Parents map[int]int
	Info    map[int]taxonomy.NodeInfo
}

type namesData struct {
	Source signature
	Names  map[int]taxonomy.Name
}

// cachePath returns the location of the cache for a dump file.
func cachePath(dumpPath, suffix string) string {
	return dumpPath + suffix
}

// sourced is cache content that remembers the signature of its source.
type sourced interface {
	source() signature
}

func (d nodesData) source() signature { return d.Source }

func (d namesData) source() signature { return d.Source }

// readCache decodes a cache file. It returns errStale if the cache was
// made from a different version of the source file.
func readCache[T sourced](path string, src signature) (T, error) {
	var res T
	r, err := iofs.Open(path)
	if err != nil {
		return res, err
	}
	defer r.Close()

	bs, err := io.ReadAll(r)
	if err != nil {
		return res, CacheError(path, err)
	}

	enc := gnfmt.GNgob{}
	if err = enc.Decode(bs, &res); err != nil {
		return res, CacheError(path, err)
	}

	if res.source() != src {
		return res, errStale
	}
	return res, nil
}

// writeCache encodes data to a temporary file and renames it to path, so
// readers never see a partial cache.
func writeCache(path string, data any) error {
	dir := filepath.Dir(path)
	if err := gnsys.MakeDir(dir); err != nil {
		return CacheError(path, err)
	}

	enc := gnfmt.GNgob{}
	bs, err := enc.Encode(data)
	if err != nil {
		return CacheError(path, err)
	}

	tmp := filepath.Join(dir, "tmp-"+filepath.Base(path))
	w, err := iofs.Create(tmp)
	if err != nil {
		return err
	}
	if _, err = w.Write(bs); err != nil {
		_ = w.Close()
		_ = os.Remove(tmp)
		return CacheError(path, err)
	}
	if err = w.Close(); err != nil {
		_ = os.Remove(tmp)
		return CacheError(path, err)
	}

	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return CacheError(path, err)
	}

	slog.Info("Taxonomy cache saved", "path", path)
	return nil
}
