package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"moneytracker/internal/domain/category"
	"moneytracker/internal/domain/transaction"
)

// ErrSpentUnavailable marks a summary whose spent amount could not be computed.
var ErrSpentUnavailable = errors.New("failed to compute spent amount")

const maxConcurrentSums = 4

// Summary is a budget with its derived fields.
type Summary struct {
	Budget       *Budget
	CategoryName string
	SpentAmount  decimal.Decimal
	// SpentErr is set when the sum query failed. SpentAmount is then zero
	// and must not be shown as a real total.
	SpentErr error
	IsActive bool
}

// Aggregator derives spent amount, active status and category name for
// budgets at read time.
type Aggregator struct {
	spend      SpendCalculator
	categories CategoryNamer
	now        func() time.Time
}

func NewAggregator(spend SpendCalculator, categories CategoryNamer) *Aggregator {
	return &Aggregator{spend: spend, categories: categories, now: time.Now}
}

// WithClock replaces the wall clock used for IsActive.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// Summarize enriches budgets owned by userID. A failed sum only affects its
// own entry; a failed category lookup fails the whole call.
func (a *Aggregator) Summarize(ctx context.Context, userID string, budgets []*Budget) ([]Summary, error) {
	if len(budgets) == 0 {
		return []Summary{}, nil
	}

	names, err := a.categories.Names(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load category names: %w", err)
	}

	today := civil.DateOf(a.now())
	summaries := make([]Summary, len(budgets))

	var g errgroup.Group
	g.SetLimit(maxConcurrentSums)
	for i, b := range budgets {
		name, ok := names[b.CategoryID]
		if !ok {
			name = category.UnknownName
		}
		summaries[i] = Summary{
			Budget:       b,
			CategoryName: name,
			IsActive:     IsActive(b, today),
		}

		g.Go(func() error {
			spent, err := a.spend.SumExpenses(ctx, userID, b.CategoryID, b.StartDate, b.EndDate)
			if err != nil {
				summaries[i].SpentErr = fmt.Errorf("%w: %w", ErrSpentUnavailable, err)
				return nil
			}
			summaries[i].SpentAmount = spent
			return nil
		})
	}
	_ = g.Wait()

	return summaries, nil
}

// IsActive reports whether today falls inside the budget's range, both ends
// included.
func IsActive(b *Budget, today civil.Date) bool {
	return !today.Before(b.StartDate) && !today.After(b.EndDate)
}

// SumSpent adds up the expense transactions of categoryID dated within
// [start, end]. Callers must pass transactions of a single owner.
func SumSpent(txs []*transaction.Transaction, categoryID string, start, end civil.Date) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.Kind != transaction.KindExpense || t.CategoryID != categoryID {
			continue
		}
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		total = total.Add(t.Amount)
	}
	return total
}
