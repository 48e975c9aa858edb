package iolineage

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntaxdump/pkg/errcode"
)

func ExportError(path string, err error) error {
	msg := "Cannot export lineages to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LineageExportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: export to %s: %w", fn.Name(), path, err),
	}
}
