package category

import "context"

type Repository interface {
	// FindByName returns nil, nil when userID has no category called name.
	FindByName(ctx context.Context, userID, name string) (*Category, error)
	// Create returns ErrDuplicate when (userID, name) already exists.
	Create(ctx context.Context, userID, name string) (*Category, error)
	// ListByUserID returns the user's categories ordered by name.
	ListByUserID(ctx context.Context, userID string) ([]*Category, error)
}
