package savings

import (
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"moneytracker/internal/shared/validation"
)

var ErrNotFound = errors.New("savings goal not found")

const DefaultCategory = "Other"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// SavingsGoal is a target amount the user is saving towards. IsCompleted is
// stored for listing convenience but is always re-derived from the amounts
// before a write.
type SavingsGoal struct {
	ID            string
	UserID        string
	Title         string
	Description   string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Category      string
	TargetDate    *civil.Date
	Priority      Priority
	IsCompleted   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (g *SavingsGoal) validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return validation.New("title is required")
	}
	if len(g.Title) > 200 {
		return validation.New("title must be 200 characters or less")
	}
	if !g.TargetAmount.IsPositive() {
		return validation.New("targetAmount must be greater than zero")
	}
	if g.CurrentAmount.IsNegative() {
		return validation.New("currentAmount cannot be negative")
	}
	if err := validation.Cents("targetAmount", g.TargetAmount); err != nil {
		return err
	}
	if err := validation.Cents("currentAmount", g.CurrentAmount); err != nil {
		return err
	}
	if !g.Priority.Valid() {
		return validation.New("priority must be low, medium or high")
	}
	if g.TargetDate != nil && !g.TargetDate.IsValid() {
		return validation.New("targetDate is invalid")
	}
	return nil
}

func (g *SavingsGoal) deriveCompleted() {
	g.IsCompleted = g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

type CreateParams struct {
	Title         string
	Description   string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	Category      string
	TargetDate    *civil.Date
	Priority      Priority
}

func (p *CreateParams) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return validation.New("title is required")
	}
	if p.TargetAmount == nil {
		return validation.New("targetAmount is required")
	}
	_, err := p.build("")
	return err
}

// build applies defaults and returns a validated goal owned by userID.
func (p *CreateParams) build(userID string) (*SavingsGoal, error) {
	g := &SavingsGoal{
		UserID:        userID,
		Title:         strings.TrimSpace(p.Title),
		Description:   p.Description,
		CurrentAmount: decimal.Zero,
		Category:      p.Category,
		TargetDate:    p.TargetDate,
		Priority:      p.Priority,
	}
	if p.TargetAmount != nil {
		g.TargetAmount = *p.TargetAmount
	}
	if p.CurrentAmount != nil {
		g.CurrentAmount = *p.CurrentAmount
	}
	if g.Category == "" {
		g.Category = DefaultCategory
	}
	if g.Priority == "" {
		g.Priority = PriorityMedium
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	g.deriveCompleted()
	return g, nil
}

// UpdateParams carries the fields a client supplied; nil means unchanged.
// ClearTargetDate removes the target date.
type UpdateParams struct {
	Title           *string
	Description     *string
	TargetAmount    *decimal.Decimal
	CurrentAmount   *decimal.Decimal
	Category        *string
	TargetDate      *civil.Date
	ClearTargetDate bool
	Priority        *Priority
}

func (p *UpdateParams) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return validation.New("title cannot be empty")
	}
	if p.TargetAmount != nil && !p.TargetAmount.IsPositive() {
		return validation.New("targetAmount must be greater than zero")
	}
	if p.CurrentAmount != nil && p.CurrentAmount.IsNegative() {
		return validation.New("currentAmount cannot be negative")
	}
	if p.TargetAmount != nil {
		if err := validation.Cents("targetAmount", *p.TargetAmount); err != nil {
			return err
		}
	}
	if p.CurrentAmount != nil {
		if err := validation.Cents("currentAmount", *p.CurrentAmount); err != nil {
			return err
		}
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return validation.New("priority must be low, medium or high")
	}
	return nil
}

// Apply merges the patch into g and re-derives IsCompleted against the
// resulting amounts, whichever of them the patch touched.
func (g *SavingsGoal) Apply(p UpdateParams) error {
	next := *g
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.TargetAmount != nil {
		next.TargetAmount = *p.TargetAmount
	}
	if p.CurrentAmount != nil {
		next.CurrentAmount = *p.CurrentAmount
	}
	if p.Category != nil {
		next.Category = *p.Category
		if next.Category == "" {
			next.Category = DefaultCategory
		}
	}
	if p.ClearTargetDate {
		next.TargetDate = nil
	} else if p.TargetDate != nil {
		d := *p.TargetDate
		next.TargetDate = &d
	}
	if p.Priority != nil {
		next.Priority = *p.Priority
	}
	if err := next.validate(); err != nil {
		return err
	}
	next.deriveCompleted()
	*g = next
	return nil
}
