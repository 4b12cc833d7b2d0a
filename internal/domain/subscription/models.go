package subscription

import (
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"moneytracker/internal/shared/validation"
)

var ErrNotFound = errors.New("subscription not found")

const (
	DefaultCategory     = "Other"
	DefaultReminderDays = 3
	maxReminderDays     = 365
)

type BillingCycle string

const (
	CycleWeekly    BillingCycle = "weekly"
	CycleMonthly   BillingCycle = "monthly"
	CycleQuarterly BillingCycle = "quarterly"
	CycleYearly    BillingCycle = "yearly"
)

func (c BillingCycle) Valid() bool {
	switch c {
	case CycleWeekly, CycleMonthly, CycleQuarterly, CycleYearly:
		return true
	}
	return false
}

// Next returns the billing date one cycle after d. Month arithmetic follows
// time.AddDate, so Jan 31 + 1 month lands in early March.
func (c BillingCycle) Next(d civil.Date) civil.Date {
	switch c {
	case CycleWeekly:
		return d.AddDays(7)
	case CycleMonthly:
		return d.AddMonths(1)
	case CycleQuarterly:
		return d.AddMonths(3)
	case CycleYearly:
		return d.AddYears(1)
	}
	return d
}

type Subscription struct {
	ID              string
	UserID          string
	Name            string
	Category        string
	Amount          decimal.Decimal
	BillingCycle    BillingCycle
	NextBillingDate civil.Date
	IsActive        bool
	Description     *string
	Website         *string
	ReminderDays    int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RollForward moves a past NextBillingDate forward by whole cycles until it
// is today or later. It reports whether the date changed.
func (s *Subscription) RollForward(today civil.Date) bool {
	if !s.BillingCycle.Valid() {
		return false
	}
	moved := false
	for s.NextBillingDate.Before(today) {
		s.NextBillingDate = s.BillingCycle.Next(s.NextBillingDate)
		moved = true
	}
	return moved
}

// ReminderDue reports whether today falls in the reminder window that ends
// on the next billing date.
func (s *Subscription) ReminderDue(today civil.Date) bool {
	if !s.IsActive {
		return false
	}
	windowStart := s.NextBillingDate.AddDays(-s.ReminderDays)
	return !today.Before(windowStart) && !today.After(s.NextBillingDate)
}

// DaysUntilBilling is zero on the billing date itself.
func (s *Subscription) DaysUntilBilling(today civil.Date) int {
	return s.NextBillingDate.DaysSince(today)
}

type CreateParams struct {
	Name            string
	Category        string
	Amount          *decimal.Decimal
	BillingCycle    BillingCycle
	NextBillingDate *civil.Date
	Description     *string
	Website         *string
	ReminderDays    *int
}

func (p *CreateParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" || p.Amount == nil || p.BillingCycle == "" || p.NextBillingDate == nil {
		return validation.New("Name, amount, billing cycle, and next billing date are required")
	}
	if !p.Amount.IsPositive() {
		return validation.New("Amount must be positive")
	}
	if err := validation.Cents("amount", *p.Amount); err != nil {
		return err
	}
	if !p.BillingCycle.Valid() {
		return validation.New("Invalid billing cycle")
	}
	if !p.NextBillingDate.IsValid() {
		return validation.New("nextBillingDate is invalid")
	}
	if p.ReminderDays != nil {
		if err := validateReminderDays(*p.ReminderDays); err != nil {
			return err
		}
	}
	return nil
}

// Subscription builds the record to store, applying defaults for omitted
// fields. New subscriptions are always active.
func (p *CreateParams) Subscription(userID string) *Subscription {
	s := &Subscription{
		UserID:          userID,
		Name:            strings.TrimSpace(p.Name),
		Category:        p.Category,
		Amount:          *p.Amount,
		BillingCycle:    p.BillingCycle,
		NextBillingDate: *p.NextBillingDate,
		IsActive:        true,
		Description:     emptyToNil(p.Description),
		Website:         emptyToNil(p.Website),
		ReminderDays:    DefaultReminderDays,
	}
	if s.Category == "" {
		s.Category = DefaultCategory
	}
	if p.ReminderDays != nil {
		s.ReminderDays = *p.ReminderDays
	}
	return s
}

// UpdateParams carries the fields a client supplied; nil means unchanged.
type UpdateParams struct {
	Name            *string
	Category        *string
	Amount          *decimal.Decimal
	BillingCycle    *BillingCycle
	NextBillingDate *civil.Date
	IsActive        *bool
	Description     *string
	Website         *string
	ReminderDays    *int
}

func (p *UpdateParams) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return validation.New("name cannot be empty")
	}
	if p.Amount != nil {
		if !p.Amount.IsPositive() {
			return validation.New("Amount must be positive")
		}
		if err := validation.Cents("amount", *p.Amount); err != nil {
			return err
		}
	}
	if p.BillingCycle != nil && !p.BillingCycle.Valid() {
		return validation.New("Invalid billing cycle")
	}
	if p.NextBillingDate != nil && !p.NextBillingDate.IsValid() {
		return validation.New("nextBillingDate is invalid")
	}
	if p.ReminderDays != nil {
		return validateReminderDays(*p.ReminderDays)
	}
	return nil
}

func validateReminderDays(n int) error {
	if n < 0 || n > maxReminderDays {
		return validation.Errorf("reminderDays must be between 0 and %d", maxReminderDays)
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
