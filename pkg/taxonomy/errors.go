package taxonomy

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntaxdump/pkg/errcode"
)

// ErrTaxIDNotFound is wrapped by errors returned when a parent chain is
// broken before reaching the root.
var ErrTaxIDNotFound = errors.New("taxid not found")

// ErrAmbiguousRank is wrapped by errors returned when a rank that has to
// hold a single taxid holds several.
var ErrAmbiguousRank = errors.New("ambiguous lineage rank")

// ParseError reports a malformed line of a dump file.
func ParseError(file string, line int, err error) error {
	msg := "Cannot parse <em>%s</em>, line %d"
	vars := []any{file, line}
	return &gn.Error{
		Code: errcode.TaxdumpParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s:%d: %w", file, line, err),
	}
}

// MissingNameError reports a node from nodes.dmp that has no scientific
// name in names.dmp.
func MissingNameError(taxID int) error {
	msg := `Taxon <em>%d</em> has no scientific name

<em>Possible causes:</em>
  - nodes.dmp and names.dmp come from different releases
  - names.dmp is truncated`
	vars := []any{taxID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxdumpMissingNameError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: no scientific name for taxid %d",
			fn.Name(), taxID),
	}
}

// TaxIDNotFoundError reports a taxid that is absent from the tree while
// walking towards the root.
func TaxIDNotFoundError(taxID int) error {
	msg := "Cannot find taxid <em>%d</em>"
	vars := []any{taxID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxdumpTaxIDNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %w: %d",
			fn.Name(), ErrTaxIDNotFound, taxID),
	}
}

// CycleError reports a parent chain that comes back to a visited node.
func CycleError(taxID int) error {
	msg := "Parent chain of taxid <em>%d</em> contains a cycle"
	vars := []any{taxID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxdumpCycleError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cycle in parents of taxid %d",
			fn.Name(), taxID),
	}
}

// AmbiguousRankError reports several taxids at the lowest shared rank.
func AmbiguousRankError(rank string, taxIDs []int) error {
	msg := "Ambiguous lowest lineage: multiple taxids at rank <em>%s</em>: %v"
	vars := []any{rank, taxIDs}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxdumpAmbiguousRankError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"from %s: %w: multiple taxids at rank %s: %v",
			fn.Name(), ErrAmbiguousRank, rank, taxIDs,
		),
	}
}
