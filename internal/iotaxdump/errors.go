package iotaxdump

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntaxdump/pkg/errcode"
)

func CacheError(path string, err error) error {
	msg := "Cannot use taxonomy cache <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxdumpCacheError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cache %s: %w", fn.Name(), path, err),
	}
}
