package memory

import (
	"context"
	"slices"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"moneytracker/internal/domain/subscription"
)

type SubscriptionRepository struct {
	s *Store
}

func (r *SubscriptionRepository) Create(_ context.Context, sub *subscription.Subscription) (*subscription.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *sub
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.s.now()
	stored.UpdatedAt = stored.CreatedAt
	r.s.subscriptions[stored.ID] = &stored
	cp := stored
	return &cp, nil
}

func (r *SubscriptionRepository) GetByID(_ context.Context, userID, id string) (*subscription.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sub, ok := r.s.subscriptions[id]
	if !ok || sub.UserID != userID {
		return nil, nil
	}
	cp := *sub
	return &cp, nil
}

func (r *SubscriptionRepository) List(_ context.Context, userID string) ([]*subscription.Subscription, error) {
	return r.collect(func(sub *subscription.Subscription) bool { return sub.UserID == userID }), nil
}

func (r *SubscriptionRepository) Update(_ context.Context, userID, id string, params subscription.UpdateParams) (*subscription.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sub, ok := r.s.subscriptions[id]
	if !ok || sub.UserID != userID {
		return nil, subscription.ErrNotFound
	}
	if params.Name != nil {
		sub.Name = *params.Name
	}
	if params.Category != nil {
		sub.Category = *params.Category
	}
	if params.Amount != nil {
		sub.Amount = *params.Amount
	}
	if params.BillingCycle != nil {
		sub.BillingCycle = *params.BillingCycle
	}
	if params.NextBillingDate != nil {
		sub.NextBillingDate = *params.NextBillingDate
	}
	if params.IsActive != nil {
		sub.IsActive = *params.IsActive
	}
	if params.Description != nil {
		v := *params.Description
		sub.Description = &v
	}
	if params.Website != nil {
		v := *params.Website
		sub.Website = &v
	}
	if params.ReminderDays != nil {
		sub.ReminderDays = *params.ReminderDays
	}
	sub.UpdatedAt = r.s.now()
	cp := *sub
	return &cp, nil
}

func (r *SubscriptionRepository) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if sub, ok := r.s.subscriptions[id]; ok && sub.UserID == userID {
		delete(r.s.subscriptions, id)
	}
	return nil
}

func (r *SubscriptionRepository) ListActive(_ context.Context) ([]*subscription.Subscription, error) {
	return r.collect(func(sub *subscription.Subscription) bool { return sub.IsActive }), nil
}

func (r *SubscriptionRepository) SetNextBillingDate(_ context.Context, userID, id string, next civil.Date) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if sub, ok := r.s.subscriptions[id]; ok && sub.UserID == userID {
		sub.NextBillingDate = next
		sub.UpdatedAt = r.s.now()
	}
	return nil
}

// collect returns copies of the matching subscriptions, soonest billing first.
func (r *SubscriptionRepository) collect(keep func(*subscription.Subscription) bool) []*subscription.Subscription {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []*subscription.Subscription{}
	for _, sub := range r.s.subscriptions {
		if keep(sub) {
			cp := *sub
			out = append(out, &cp)
		}
	}
	slices.SortStableFunc(out, func(a, b *subscription.Subscription) int {
		return a.NextBillingDate.Compare(b.NextBillingDate)
	})
	return out
}
