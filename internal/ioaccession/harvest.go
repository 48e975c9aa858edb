package ioaccession

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
)

// LeafSource gives names of leaves of a sequence index one by one.
type LeafSource interface {
	// NextLeaf returns the name of the next leaf or io.EOF when there
	// are no more leaves.
	NextLeaf() (string, error)
}

// LineSource is a LeafSource over a listing with one leaf name per line.
type LineSource struct {
	sc *bufio.Scanner
}

// NewLineSource creates a LineSource. Blank lines are skipped.
func NewLineSource(r io.Reader) *LineSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &LineSource{sc: sc}
}

// NextLeaf implements LeafSource.
func (l *LineSource) NextLeaf() (string, error) {
	for l.sc.Scan() {
		name := strings.TrimSpace(l.sc.Text())
		if name != "" {
			return name, nil
		}
	}
	if err := l.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// Harvest writes names of all leaves, one per line, and returns their
// number.
func Harvest(ctx context.Context, src LeafSource, w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	var count int
	for {
		name, err := src.NextLeaf()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		if count%1000 == 0 {
			if err = ctx.Err(); err != nil {
				return count, err
			}
			slog.Debug("Harvesting leaves", "leaf", count)
		}
		if _, err = bw.WriteString(name + "\n"); err != nil {
			return count, err
		}
		count++
	}

	if err := bw.Flush(); err != nil {
		return count, err
	}
	gn.Info("Got accessions from <em>%s</em> leaves",
		humanize.Comma(int64(count)))
	return count, nil
}
