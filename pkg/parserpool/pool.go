// Package parserpool provides a pool of gnparser instances for concurrent
// name parsing. It is used to reduce NCBI scientific names to their
// canonical forms.
package parserpool

import (
	"fmt"
	"runtime"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// DefaultCode is used by Canonical. Most of NCBI taxonomy names are
// parsed the same way by all codes, and the botanical code does not turn
// parenthesized words into subgenera.
const DefaultCode = nomcode.Botanical

// Pool provides a pool of gnparser instances for concurrent parsing.
type Pool interface {
	// Parse parses a scientific name string using the specified
	// nomenclatural code. It is safe for concurrent use.
	Parse(nameString string, code nomcode.Code) (parsed.Parsed, error)

	// Canonical returns the simple canonical form of a name, or the name
	// itself if it cannot be parsed.
	Canonical(nameString string) string

	// Close shuts down the parser pools. The pool cannot be used after
	// that.
	Close()
}

// PoolImpl implements the Pool interface using gnparser.NewPool.
type PoolImpl struct {
	pools    map[nomcode.Code]chan gnparser.GNparser
	poolSize int
}

// NewPool creates a parser pool with jobsNum parsers per nomenclatural
// code. If jobsNum is 0, it defaults to runtime.NumCPU(). Botanical,
// zoological and bacterial codes are supported.
func NewPool(jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}

	codes := []nomcode.Code{
		nomcode.Botanical,
		nomcode.Zoological,
		nomcode.Bacterial,
	}
	pools := make(map[nomcode.Code]chan gnparser.GNparser, len(codes))
	for _, code := range codes {
		cfg := gnparser.NewConfig(gnparser.OptCode(code))
		pools[code] = gnparser.NewPool(cfg, poolSize)
	}

	return &PoolImpl{
		pools:    pools,
		poolSize: poolSize,
	}
}

// Parse parses a name with a parser for the given code. It blocks while
// all parsers of that code are busy.
func (p *PoolImpl) Parse(nameString string, code nomcode.Code) (parsed.Parsed, error) {
	ch, ok := p.pools[code]
	if !ok {
		return parsed.Parsed{}, fmt.Errorf("unsupported nomenclatural code: %v", code)
	}

	parser := <-ch
	result := parser.ParseName(nameString)
	ch <- parser

	return result, nil
}

// Canonical returns the simple canonical form of a name parsed with
// DefaultCode. Names that cannot be parsed are returned unchanged.
func (p *PoolImpl) Canonical(nameString string) string {
	res, err := p.Parse(nameString, DefaultCode)
	if err != nil || !res.Parsed || res.Canonical == nil {
		return nameString
	}
	return res.Canonical.Simple
}

// Close shuts down all parser pools.
func (p *PoolImpl) Close() {
	for code, ch := range p.pools {
		close(ch)
		for range ch {
		}
		delete(p.pools, code)
	}
}
