package transaction

import (
	"context"
)

// Repository defines the interface for transaction data access.
// Every method is scoped to userID; records of other users behave as absent.
type Repository interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Transaction, error)
	// GetByID returns nil, nil when the transaction does not exist for userID.
	GetByID(ctx context.Context, userID, id string) (*Transaction, error)
	// List returns transactions ordered by date, newest first.
	List(ctx context.Context, userID string, filter Filter) ([]*Transaction, error)
	// Update returns ErrNotFound when the transaction does not exist for userID.
	Update(ctx context.Context, userID, id string, params UpdateParams) (*Transaction, error)
	// Delete is a no-op when the transaction does not exist for userID.
	Delete(ctx context.Context, userID, id string) error
}
