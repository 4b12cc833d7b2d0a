package budget

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for budget data access.
// Every method is scoped to userID.
type Repository interface {
	Create(ctx context.Context, b *Budget) (*Budget, error)
	// GetByID returns nil, nil when the budget does not exist for userID.
	GetByID(ctx context.Context, userID, id string) (*Budget, error)
	// List returns budgets ordered by creation time, newest first.
	List(ctx context.Context, userID string) ([]*Budget, error)
	// Update writes every mutable column of b. It returns ErrNotFound when
	// the row does not exist for b.UserID.
	Update(ctx context.Context, b *Budget) (*Budget, error)
	// Delete is a no-op when the budget does not exist for userID.
	Delete(ctx context.Context, userID, id string) error
}

// SpendCalculator sums a user's expenses for one category over an
// inclusive date range. No matching rows is a zero sum, not an error.
type SpendCalculator interface {
	SumExpenses(ctx context.Context, userID, categoryID string, start, end civil.Date) (decimal.Decimal, error)
}

// CategoryNamer returns a user's category names keyed by id.
type CategoryNamer interface {
	Names(ctx context.Context, userID string) (map[string]string, error)
}

// CategoryResolver maps a category name to an id, creating it when needed.
type CategoryResolver interface {
	Resolve(ctx context.Context, userID, name string) (string, error)
}
