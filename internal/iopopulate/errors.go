package iopopulate

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntaxdump/pkg/errcode"
)

// NotConnectedError creates an error for when populate
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Populate operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TaxaError creates an error for failures of taxa import.
func TaxaError(stage string, err error) error {
	msg := "Cannot import taxa: <em>%s</em> failed"
	vars := []any{stage}

	return &gn.Error{
		Code: errcode.PopulateTaxaError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("taxa import, %s: %w", stage, err),
	}
}

// CancelledError creates an error for when populate
// operation is cancelled.
func CancelledError(err error) error {
	msg := "Population operation was cancelled"

	return &gn.Error{
		Code: errcode.PopulateCancelledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("population cancelled: %w", err),
	}
}
