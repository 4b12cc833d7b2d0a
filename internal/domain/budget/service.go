package budget

import (
	"context"
	"fmt"
)

// Service contains the business logic for budget operations. Reads always
// go through the Aggregator so derived fields have one source.
type Service struct {
	repo       Repository
	categories CategoryResolver
	aggregator *Aggregator
}

func NewService(repo Repository, categories CategoryResolver, aggregator *Aggregator) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		aggregator: aggregator,
	}
}

func (s *Service) List(ctx context.Context, userID string) ([]Summary, error) {
	budgets, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return s.aggregator.Summarize(ctx, userID, budgets)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Summary, error) {
	b, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get budget: %w", err)
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return s.summarizeOne(ctx, userID, b)
}

// Create resolves the category name (creating it on first use) and stores
// the budget.
func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Summary, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	categoryID, err := s.categories.Resolve(ctx, userID, params.Category)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.Create(ctx, &Budget{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     *params.Amount,
		Period:     params.Period,
		StartDate:  *params.StartDate,
		EndDate:    *params.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("create budget: %w", err)
	}
	return s.summarizeOne(ctx, userID, b)
}

// Update applies a partial change. The category is resolved last, so a
// rejected patch or a missing budget never creates one.
func (s *Service) Update(ctx context.Context, userID, id string, params UpdateParams) (*Summary, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get budget: %w", err)
	}
	if b == nil {
		return nil, ErrNotFound
	}

	if err := b.Apply(params); err != nil {
		return nil, err
	}
	if params.Category != nil {
		categoryID, err := s.categories.Resolve(ctx, userID, *params.Category)
		if err != nil {
			return nil, err
		}
		b.CategoryID = categoryID
	}

	updated, err := s.repo.Update(ctx, b)
	if err != nil {
		return nil, err
	}
	return s.summarizeOne(ctx, userID, updated)
}

// Delete removes the budget if userID owns it. Missing ids succeed.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *Service) summarizeOne(ctx context.Context, userID string, b *Budget) (*Summary, error) {
	summaries, err := s.aggregator.Summarize(ctx, userID, []*Budget{b})
	if err != nil {
		return nil, err
	}
	return &summaries[0], nil
}
