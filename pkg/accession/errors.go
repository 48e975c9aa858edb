package accession

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntaxdump/pkg/errcode"
)

var errFieldsNum = errors.New("expected accession and taxid fields")

// ParseError reports a malformed row of accession CSV.
func ParseError(row int, err error) error {
	msg := "Cannot parse accession file, row <em>%d</em>"
	vars := []any{row}
	return &gn.Error{
		Code: errcode.AccessionParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("row %d: %w", row, err),
	}
}
