package subscription

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID string) ([]*Subscription, error) {
	subs, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Subscription, error) {
	sub, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	if sub == nil {
		return nil, ErrNotFound
	}
	return sub, nil
}

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Subscription, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	sub, err := s.repo.Create(ctx, params.Subscription(userID))
	if err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	return sub, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, params UpdateParams) (*Subscription, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, userID, id, params)
}

// Delete removes the subscription if userID owns it. Missing ids succeed.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
