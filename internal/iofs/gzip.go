package iofs

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/klauspost/compress/gzip"
)

// GzipSuffix marks files that are read and written through gzip.
const GzipSuffix = ".gz"

// multiReadCloser closes all its closers, the first error wins.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// multiWriteCloser flushes and closes writers from the innermost to the
// file itself.
type multiWriteCloser struct {
	io.Writer
	closers []io.Closer
}

func (m *multiWriteCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

type flushCloser struct {
	*bufio.Writer
}

func (f flushCloser) Close() error {
	return f.Flush()
}

// IsGzip tells if a path is treated as gzip-compressed.
func IsGzip(path string) bool {
	return strings.HasSuffix(path, GzipSuffix)
}

// Open opens a file for reading. Files with the ".gz" suffix, or starting
// with gzip magic bytes, are decompressed on the fly. Path "-" means
// STDIN.
func Open(path string) (io.ReadCloser, error) {
	return open(path, "")
}

// OpenWithProgress is like Open, but shows a progress bar of read bytes.
// For gzip files the bar follows compressed bytes.
func OpenWithProgress(path, prefix string) (io.ReadCloser, error) {
	return open(path, prefix)
}

func open(path, prefix string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}

	var sig [2]byte
	n, _ := io.ReadFull(f, sig[:])
	if _, err = f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, ReadFileError(path, err)
	}

	var r io.Reader = f
	closers := []io.Closer{f}
	if prefix != "" {
		var size int64
		if info, err := f.Stat(); err == nil {
			size = info.Size()
		}
		bar := pb.Full.Start64(size)
		bar.Set("prefix", prefix)
		bar.Set(pb.Bytes, true)
		bar.Set(pb.CleanOnFinish, true)
		r = bar.NewProxyReader(f)
		closers = append(closers, barCloser{bar})
	}

	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || IsGzip(path) {
		gr, err := gzip.NewReader(r)
		if err != nil {
			closeAll(closers)
			return nil, ReadFileError(path, err)
		}
		r = gr
		closers = append([]io.Closer{gr}, closers...)
	}

	if len(closers) == 1 {
		return f, nil
	}
	return &multiReadCloser{Reader: r, closers: closers}, nil
}

type barCloser struct {
	bar *pb.ProgressBar
}

func (b barCloser) Close() error {
	b.bar.Finish()
	return nil
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		_ = c.Close()
	}
}

// Create creates or truncates a file for writing. Output is buffered and,
// for the ".gz" suffix, gzip-compressed. Path "-" means STDOUT. Close must
// be called to flush the data.
func Create(path string) (io.WriteCloser, error) {
	if path == "-" {
		w := bufio.NewWriter(os.Stdout)
		return &multiWriteCloser{
			Writer:  w,
			closers: []io.Closer{flushCloser{w}},
		}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, WriteFileError(path, err)
	}

	if !IsGzip(path) {
		w := bufio.NewWriter(f)
		return &multiWriteCloser{
			Writer:  w,
			closers: []io.Closer{flushCloser{w}, f},
		}, nil
	}

	gw := gzip.NewWriter(f)
	w := bufio.NewWriter(gw)
	return &multiWriteCloser{
		Writer:  w,
		closers: []io.Closer{flushCloser{w}, gw, f},
	}, nil
}
