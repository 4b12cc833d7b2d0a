package http

import (
	"bytes"
	"encoding/json"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"moneytracker/internal/shared/validation"
)

// Money is emitted as a JSON number with two decimals.
type Money decimal.Decimal

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*m = Money(d)
	return nil
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.Decimal(m)
}

func moneyPtr(d decimal.Decimal) *Money {
	m := Money(d)
	return &m
}

// dateValue accepts a calendar date ("2024-01-31") or an RFC 3339 timestamp,
// of which only the date part is kept.
type dateValue civil.Date

func (d *dateValue) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return validation.New("dates must be strings in YYYY-MM-DD format")
	}
	parsed, err := parseDate(s)
	if err != nil {
		return err
	}
	*d = dateValue(parsed)
	return nil
}

func (d *dateValue) date() *civil.Date {
	if d == nil {
		return nil
	}
	c := civil.Date(*d)
	return &c
}

func parseDate(s string) (civil.Date, error) {
	if d, err := civil.ParseDate(s); err == nil {
		return d, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return civil.DateOf(t), nil
	}
	return civil.Date{}, validation.Errorf("invalid date %q, use YYYY-MM-DD", s)
}

func parseDecimal(name, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, validation.Errorf("%s must be a number", name)
	}
	return d, nil
}

// optionalDate tells an absent field apart from an explicit null, which
// clears the stored date.
type optionalDate struct {
	Set   bool
	Value *civil.Date
}

func (o *optionalDate) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(b, []byte("null")) {
		o.Value = nil
		return nil
	}
	var d dateValue
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	o.Value = d.date()
	return nil
}
