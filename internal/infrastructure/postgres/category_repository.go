package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"moneytracker/internal/domain/category"
)

type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindByName(ctx context.Context, userID, name string) (*category.Category, error) {
	query := `SELECT id, user_id, name, created_at FROM categories WHERE user_id = $1 AND name = $2`

	var c category.Category
	err := r.db.QueryRowContext(ctx, query, userID, name).Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, userID, name string) (*category.Category, error) {
	query := `
		INSERT INTO categories (id, user_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, created_at
	`

	var c category.Category
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), userID, name).Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt)
	if isUniqueViolation(err) {
		return nil, category.ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) ListByUserID(ctx context.Context, userID string) ([]*category.Category, error) {
	query := `SELECT id, user_id, name, created_at FROM categories WHERE user_id = $1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*category.Category{}
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}
