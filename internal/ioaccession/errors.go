package ioaccession

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntaxdump/pkg/errcode"
)

var errNoHeader = errors.New("header with assembly_accession and taxid not found")

func StoreError(dir string, err error) error {
	msg := "Accession index at <em>%s</em> failed"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AccessionStoreError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: index %s: %w", fn.Name(), dir, err),
	}
}

func StoreNotOpenError(dir string) error {
	msg := `Accession index at <em>%s</em> is not open

<em>How to fix:</em>
  Build the index first: <em>gntaxdump index accession2taxid.gz</em>`
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AccessionStoreNotOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: index %s is not open", fn.Name(), dir),
	}
}

func AssemblySummaryError(line int, err error) error {
	msg := "Cannot parse assembly summary, line <em>%d</em>"
	vars := []any{line}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AssemblySummaryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: line %d: %w", fn.Name(), line, err),
	}
}
