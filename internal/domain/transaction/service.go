package transaction

import (
	"context"
	"fmt"
)

// CategoryResolver maps a category name to an id, creating it when needed.
type CategoryResolver interface {
	Resolve(ctx context.Context, userID, name string) (string, error)
}

// Service contains the business logic for transaction operations
type Service struct {
	repo       Repository
	categories CategoryResolver
}

func NewService(repo Repository, categories CategoryResolver) *Service {
	return &Service{repo: repo, categories: categories}
}

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.CategoryID == "" {
		id, err := s.categories.Resolve(ctx, userID, params.CategoryName)
		if err != nil {
			return nil, err
		}
		params.CategoryID = id
	}

	t, err := s.repo.Create(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Transaction, error) {
	t, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if t == nil {
		return nil, ErrNotFound
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, userID string, filter Filter) ([]*Transaction, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	txs, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Update applies a partial change. A record owned by someone else is
// reported as ErrNotFound, before any category is created for the patch.
func (s *Service) Update(ctx context.Context, userID, id string, params UpdateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.CategoryID == nil && params.CategoryName != nil {
		if _, err := s.Get(ctx, userID, id); err != nil {
			return nil, err
		}
		catID, err := s.categories.Resolve(ctx, userID, *params.CategoryName)
		if err != nil {
			return nil, err
		}
		params.CategoryID = &catID
	}
	return s.repo.Update(ctx, userID, id, params)
}

// Delete removes the transaction if userID owns it. Missing ids succeed.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
