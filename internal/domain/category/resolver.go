package category

import (
	"context"
	"errors"
	"fmt"
)

// Resolver maps a category name to its id for a user, creating the category
// on first use. Concurrent first uses of the same name converge on one row.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

func (r *Resolver) Resolve(ctx context.Context, userID, name string) (string, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return "", err
	}

	existing, err := r.repo.FindByName(ctx, userID, name)
	if err != nil {
		return "", fmt.Errorf("find category: %w", err)
	}
	if existing != nil {
		return existing.ID, nil
	}

	created, err := r.repo.Create(ctx, userID, name)
	if err == nil {
		return created.ID, nil
	}
	if !errors.Is(err, ErrDuplicate) {
		return "", fmt.Errorf("create category: %w", err)
	}

	// Lost the insert race; the winner's row is visible now.
	existing, err = r.repo.FindByName(ctx, userID, name)
	if err != nil {
		return "", fmt.Errorf("find category after conflict: %w", err)
	}
	if existing == nil {
		return "", fmt.Errorf("category %q missing after unique violation", name)
	}
	return existing.ID, nil
}

// Names returns the user's categories keyed by id.
func (r *Resolver) Names(ctx context.Context, userID string) (map[string]string, error) {
	cats, err := r.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	return names, nil
}

// List returns the user's categories.
func (r *Resolver) List(ctx context.Context, userID string) ([]*Category, error) {
	cats, err := r.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}
