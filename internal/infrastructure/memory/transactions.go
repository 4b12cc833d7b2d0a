package memory

import (
	"context"
	"slices"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"moneytracker/internal/domain/budget"
	"moneytracker/internal/domain/transaction"
)

type TransactionRepository struct {
	s *Store
}

func (r *TransactionRepository) Create(_ context.Context, userID string, params transaction.CreateParams) (*transaction.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	t := &transaction.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Kind:        params.Kind,
		Amount:      *params.Amount,
		CategoryID:  params.CategoryID,
		Description: params.Description,
		Date:        *params.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.s.transactions[t.ID] = t
	cp := *t
	return &cp, nil
}

func (r *TransactionRepository) GetByID(_ context.Context, userID, id string) (*transaction.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.transactions[id]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *TransactionRepository) List(_ context.Context, userID string, filter transaction.Filter) ([]*transaction.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []*transaction.Transaction{}
	for _, t := range r.s.transactions {
		if t.UserID != userID || !filter.Matches(t) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *transaction.Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (r *TransactionRepository) Update(_ context.Context, userID, id string, params transaction.UpdateParams) (*transaction.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.transactions[id]
	if !ok || t.UserID != userID {
		return nil, transaction.ErrNotFound
	}
	if params.Kind != nil {
		t.Kind = *params.Kind
	}
	if params.Amount != nil {
		t.Amount = *params.Amount
	}
	if params.CategoryID != nil {
		t.CategoryID = *params.CategoryID
	}
	if params.Description != nil {
		t.Description = *params.Description
	}
	if params.Date != nil {
		t.Date = *params.Date
	}
	t.UpdatedAt = r.s.now()
	cp := *t
	return &cp, nil
}

func (r *TransactionRepository) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if t, ok := r.s.transactions[id]; ok && t.UserID == userID {
		delete(r.s.transactions, id)
	}
	return nil
}

// SumExpenses implements budget.SpendCalculator.
func (r *TransactionRepository) SumExpenses(_ context.Context, userID, categoryID string, start, end civil.Date) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	owned := make([]*transaction.Transaction, 0, len(r.s.transactions))
	for _, t := range r.s.transactions {
		if t.UserID == userID {
			owned = append(owned, t)
		}
	}
	return budget.SumSpent(owned, categoryID, start, end), nil
}

func newestFirst[T any](items []T, createdAt func(T) time.Time) {
	slices.SortStableFunc(items, func(a, b T) int {
		return createdAt(b).Compare(createdAt(a))
	})
}
