package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"moneytracker/internal/domain/savings"
)

type SavingsRepository struct {
	s *Store
}

func (r *SavingsRepository) Create(_ context.Context, g *savings.SavingsGoal) (*savings.SavingsGoal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *g
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.s.now()
	stored.UpdatedAt = stored.CreatedAt
	r.s.savings[stored.ID] = &stored
	cp := stored
	return &cp, nil
}

func (r *SavingsRepository) GetByID(_ context.Context, userID, id string) (*savings.SavingsGoal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g, ok := r.s.savings[id]
	if !ok || g.UserID != userID {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (r *SavingsRepository) List(_ context.Context, userID string) ([]*savings.SavingsGoal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []*savings.SavingsGoal{}
	for _, g := range r.s.savings {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	newestFirst(out, func(g *savings.SavingsGoal) time.Time { return g.CreatedAt })
	return out, nil
}

func (r *SavingsRepository) Update(_ context.Context, g *savings.SavingsGoal) (*savings.SavingsGoal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.savings[g.ID]
	if !ok || existing.UserID != g.UserID {
		return nil, savings.ErrNotFound
	}
	stored := *g
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = r.s.now()
	r.s.savings[g.ID] = &stored
	cp := stored
	return &cp, nil
}

func (r *SavingsRepository) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if g, ok := r.s.savings[id]; ok && g.UserID == userID {
		delete(r.s.savings, id)
	}
	return nil
}
