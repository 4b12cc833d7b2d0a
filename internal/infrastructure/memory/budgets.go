package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"moneytracker/internal/domain/budget"
)

type BudgetRepository struct {
	s *Store
}

func (r *BudgetRepository) Create(_ context.Context, b *budget.Budget) (*budget.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *b
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.s.now()
	stored.UpdatedAt = stored.CreatedAt
	r.s.budgets[stored.ID] = &stored
	cp := stored
	return &cp, nil
}

func (r *BudgetRepository) GetByID(_ context.Context, userID, id string) (*budget.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.budgets[id]
	if !ok || b.UserID != userID {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *BudgetRepository) List(_ context.Context, userID string) ([]*budget.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []*budget.Budget{}
	for _, b := range r.s.budgets {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	newestFirst(out, func(b *budget.Budget) time.Time { return b.CreatedAt })
	return out, nil
}

func (r *BudgetRepository) Update(_ context.Context, b *budget.Budget) (*budget.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.budgets[b.ID]
	if !ok || existing.UserID != b.UserID {
		return nil, budget.ErrNotFound
	}
	existing.CategoryID = b.CategoryID
	existing.Amount = b.Amount
	existing.Period = b.Period
	existing.StartDate = b.StartDate
	existing.EndDate = b.EndDate
	existing.UpdatedAt = r.s.now()
	cp := *existing
	return &cp, nil
}

func (r *BudgetRepository) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if b, ok := r.s.budgets[id]; ok && b.UserID == userID {
		delete(r.s.budgets, id)
	}
	return nil
}
