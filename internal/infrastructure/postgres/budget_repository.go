package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"moneytracker/internal/domain/budget"
)

const budgetColumns = `id, user_id, category_id, budget_amount, period, start_date, end_date, created_at, updated_at`

type BudgetRepository struct {
	db *DB
}

func NewBudgetRepository(db *DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func scanBudget(row rowScanner) (*budget.Budget, error) {
	var b budget.Budget
	err := row.Scan(
		&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.Period,
		&b.StartDate, &b.EndDate, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BudgetRepository) Create(ctx context.Context, b *budget.Budget) (*budget.Budget, error) {
	query := `
		INSERT INTO budgets (id, user_id, category_id, budget_amount, period, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + budgetColumns

	created, err := scanBudget(r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), b.UserID, b.CategoryID, b.Amount, b.Period, b.StartDate, b.EndDate,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}
	return created, nil
}

func (r *BudgetRepository) GetByID(ctx context.Context, userID, id string) (*budget.Budget, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1 AND user_id = $2`

	b, err := scanBudget(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return b, nil
}

func (r *BudgetRepository) List(ctx context.Context, userID string) ([]*budget.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []*budget.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	return budgets, nil
}

func (r *BudgetRepository) Update(ctx context.Context, b *budget.Budget) (*budget.Budget, error) {
	query := `
		UPDATE budgets
		SET category_id = $1,
		    budget_amount = $2,
		    period = $3,
		    start_date = $4,
		    end_date = $5,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $6 AND user_id = $7
		RETURNING ` + budgetColumns

	updated, err := scanBudget(r.db.QueryRowContext(
		ctx, query,
		b.CategoryID, b.Amount, b.Period, b.StartDate, b.EndDate, b.ID, b.UserID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, budget.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return updated, nil
}

func (r *BudgetRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}
