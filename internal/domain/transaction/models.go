package transaction

import (
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"moneytracker/internal/shared/validation"
)

var ErrNotFound = errors.New("transaction not found")

type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

type Transaction struct {
	ID          string
	UserID      string
	Kind        Kind
	Amount      decimal.Decimal
	CategoryID  string
	Description string
	Date        civil.Date
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateParams identifies the category either by id or by name. A name is
// resolved (and created if needed) by the Service.
type CreateParams struct {
	Kind         Kind
	Amount       *decimal.Decimal
	CategoryID   string
	CategoryName string
	Description  string
	Date         *civil.Date
}

func (p *CreateParams) Validate() error {
	if p.Kind == "" {
		return validation.New("kind is required")
	}
	if !p.Kind.Valid() {
		return validation.New("kind must be income or expense")
	}
	if p.Amount == nil {
		return validation.New("amount is required")
	}
	if !p.Amount.IsPositive() {
		return validation.New("amount must be greater than zero")
	}
	if err := validation.Cents("amount", *p.Amount); err != nil {
		return err
	}
	if p.CategoryID == "" && p.CategoryName == "" {
		return validation.New("categoryId or category is required")
	}
	if p.Date == nil {
		return validation.New("date is required")
	}
	if !p.Date.IsValid() {
		return validation.New("date is invalid")
	}
	if len(p.Description) > 500 {
		return validation.New("description must be 500 characters or less")
	}
	return nil
}

// UpdateParams carries the fields a client supplied; nil means unchanged.
type UpdateParams struct {
	Kind         *Kind
	Amount       *decimal.Decimal
	CategoryID   *string
	CategoryName *string
	Description  *string
	Date         *civil.Date
}

func (p *UpdateParams) Validate() error {
	if p.Kind != nil && !p.Kind.Valid() {
		return validation.New("kind must be income or expense")
	}
	if p.Amount != nil {
		if !p.Amount.IsPositive() {
			return validation.New("amount must be greater than zero")
		}
		if err := validation.Cents("amount", *p.Amount); err != nil {
			return err
		}
	}
	if p.CategoryID != nil && *p.CategoryID == "" {
		return validation.New("categoryId cannot be empty")
	}
	if p.CategoryName != nil && *p.CategoryName == "" {
		return validation.New("category cannot be empty")
	}
	if p.Date != nil && !p.Date.IsValid() {
		return validation.New("date is invalid")
	}
	if p.Description != nil && len(*p.Description) > 500 {
		return validation.New("description must be 500 characters or less")
	}
	return nil
}

// Filter narrows a transaction listing. Zero values match everything.
type Filter struct {
	Kind       Kind
	CategoryID string
	StartDate  *civil.Date
	EndDate    *civil.Date
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
}

func (f *Filter) Validate() error {
	if f.Kind != "" && !f.Kind.Valid() {
		return validation.New("kind must be income or expense")
	}
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return validation.New("startDate must be on or before endDate")
	}
	if f.MinAmount != nil && f.MaxAmount != nil && f.MinAmount.GreaterThan(*f.MaxAmount) {
		return validation.New("minAmount must be less than or equal to maxAmount")
	}
	return nil
}

// Matches reports whether t passes the filter. Date and amount bounds are
// inclusive.
func (f *Filter) Matches(t *Transaction) bool {
	if f.Kind != "" && t.Kind != f.Kind {
		return false
	}
	if f.CategoryID != "" && t.CategoryID != f.CategoryID {
		return false
	}
	if f.StartDate != nil && t.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.Date.After(*f.EndDate) {
		return false
	}
	if f.MinAmount != nil && t.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && t.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	return true
}
