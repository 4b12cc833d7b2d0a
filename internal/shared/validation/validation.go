// Package validation marks errors caused by bad client input so the HTTP
// layer can answer 400 without string matching.
package validation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type Error struct {
	msg string
}

func (e *Error) Error() string {
	return e.msg
}

func New(msg string) error {
	return &Error{msg: msg}
}

func Errorf(format string, args ...any) error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// Is reports whether any error in err's chain is a validation error.
func Is(err error) bool {
	var v *Error
	return errors.As(err, &v)
}

// Cents rejects amounts finer than a cent, matching the NUMERIC(12,2) columns.
func Cents(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(2)) {
		return Errorf("%s must have at most 2 decimal places", field)
	}
	return nil
}
