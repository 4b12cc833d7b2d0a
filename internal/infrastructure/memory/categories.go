package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"moneytracker/internal/domain/category"
)

type CategoryRepository struct {
	s *Store
}

func (r *CategoryRepository) FindByName(_ context.Context, userID, name string) (*category.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if c := r.find(userID, name); c != nil {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

// Create enforces the same (user, name) uniqueness as the Postgres schema.
func (r *CategoryRepository) Create(_ context.Context, userID, name string) (*category.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.find(userID, name) != nil {
		return nil, category.ErrDuplicate
	}
	c := &category.Category{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		CreatedAt: r.s.now(),
	}
	r.s.categories[c.ID] = c
	cp := *c
	return &cp, nil
}

func (r *CategoryRepository) ListByUserID(_ context.Context, userID string) ([]*category.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []*category.Category{}
	for _, c := range r.s.categories {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *category.Category) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

func (r *CategoryRepository) find(userID, name string) *category.Category {
	for _, c := range r.s.categories {
		if c.UserID == userID && c.Name == name {
			return c
		}
	}
	return nil
}
