package savings

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

func (s *Service) List(ctx context.Context, userID string) ([]*SavingsGoal, error) {
	goals, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	return goals, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*SavingsGoal, error) {
	g, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get savings goal: %w", err)
	}
	if g == nil {
		return nil, ErrNotFound
	}
	return g, nil
}

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*SavingsGoal, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	g, err := params.build(userID)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("create savings goal: %w", err)
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, params UpdateParams) (*SavingsGoal, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	g, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := g.Apply(params); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, g)
}

// Delete removes the goal if userID owns it. Missing ids succeed.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
