package budget

import (
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"moneytracker/internal/shared/validation"
)

var ErrNotFound = errors.New("budget not found")

type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Budget is the stored record. Spent amount and active status are derived
// by the Aggregator and never persisted.
type Budget struct {
	ID         string
	UserID     string
	CategoryID string
	Amount     decimal.Decimal
	Period     Period
	StartDate  civil.Date
	EndDate    civil.Date
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (b *Budget) validate() error {
	if !b.Amount.IsPositive() {
		return validation.New("budgetAmount must be greater than zero")
	}
	if err := validation.Cents("budgetAmount", b.Amount); err != nil {
		return err
	}
	if !b.Period.Valid() {
		return validation.New("period must be weekly, monthly or yearly")
	}
	if !b.StartDate.IsValid() || !b.EndDate.IsValid() {
		return validation.New("startDate and endDate must be valid dates")
	}
	if b.StartDate.After(b.EndDate) {
		return validation.New("startDate must be on or before endDate")
	}
	return nil
}

type CreateParams struct {
	Category  string
	Amount    *decimal.Decimal
	Period    Period
	StartDate *civil.Date
	EndDate   *civil.Date
}

func (p *CreateParams) Validate() error {
	if p.Category == "" {
		return validation.New("category is required")
	}
	if p.Amount == nil {
		return validation.New("budgetAmount is required")
	}
	if p.Period == "" {
		return validation.New("period is required")
	}
	if p.StartDate == nil || p.EndDate == nil {
		return validation.New("startDate and endDate are required")
	}
	b := Budget{Amount: *p.Amount, Period: p.Period, StartDate: *p.StartDate, EndDate: *p.EndDate}
	return b.validate()
}

// UpdateParams carries the fields a client supplied; nil means unchanged.
// Category is a name and is resolved to an id by the Service.
type UpdateParams struct {
	Category  *string
	Amount    *decimal.Decimal
	Period    *Period
	StartDate *civil.Date
	EndDate   *civil.Date
}

func (p *UpdateParams) Validate() error {
	if p.Category != nil && *p.Category == "" {
		return validation.New("category cannot be empty")
	}
	if p.Amount != nil {
		if !p.Amount.IsPositive() {
			return validation.New("budgetAmount must be greater than zero")
		}
		if err := validation.Cents("budgetAmount", *p.Amount); err != nil {
			return err
		}
	}
	if p.Period != nil && !p.Period.Valid() {
		return validation.New("period must be weekly, monthly or yearly")
	}
	return nil
}

// Apply merges the patch into b and re-checks the record, so a patch that
// moves only one end of the range cannot invert it. p.Category is left to
// the Service, which resolves it once the rest of the patch is known good.
func (b *Budget) Apply(p UpdateParams) error {
	next := *b
	if p.Amount != nil {
		next.Amount = *p.Amount
	}
	if p.Period != nil {
		next.Period = *p.Period
	}
	if p.StartDate != nil {
		next.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		next.EndDate = *p.EndDate
	}
	if err := next.validate(); err != nil {
		return err
	}
	*b = next
	return nil
}
