package savings

import "context"

// Repository defines the interface for savings goal data access.
type Repository interface {
	Create(ctx context.Context, g *SavingsGoal) (*SavingsGoal, error)
	// GetByID returns nil, nil when the goal does not exist for userID.
	GetByID(ctx context.Context, userID, id string) (*SavingsGoal, error)
	// List returns goals ordered by creation time, newest first.
	List(ctx context.Context, userID string) ([]*SavingsGoal, error)
	// Update returns ErrNotFound when the row does not exist for g.UserID.
	Update(ctx context.Context, g *SavingsGoal) (*SavingsGoal, error)
	Delete(ctx context.Context, userID, id string) error
}
