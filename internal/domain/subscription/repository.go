package subscription

import (
	"context"

	"cloud.google.com/go/civil"
)

// Repository defines the interface for subscription data access.
type Repository interface {
	Create(ctx context.Context, s *Subscription) (*Subscription, error)
	// GetByID returns nil, nil when the subscription does not exist for userID.
	GetByID(ctx context.Context, userID, id string) (*Subscription, error)
	// List returns subscriptions ordered by next billing date, soonest first.
	List(ctx context.Context, userID string) ([]*Subscription, error)
	// Update returns ErrNotFound when the row does not exist for userID.
	Update(ctx context.Context, userID, id string, params UpdateParams) (*Subscription, error)
	Delete(ctx context.Context, userID, id string) error

	// ListActive returns every active subscription across users. It is only
	// used by the reminder job.
	ListActive(ctx context.Context) ([]*Subscription, error)
	SetNextBillingDate(ctx context.Context, userID, id string, next civil.Date) error
}
