package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"moneytracker/internal/domain/savings"
)

const savingsColumns = `id, user_id, title, description, target_amount, current_amount, category,
	target_date, priority, is_completed, created_at, updated_at`

type SavingsRepository struct {
	db *DB
}

func NewSavingsRepository(db *DB) *SavingsRepository {
	return &SavingsRepository{db: db}
}

func scanSavingsGoal(row rowScanner) (*savings.SavingsGoal, error) {
	var g savings.SavingsGoal
	var targetDate sql.NullTime

	err := row.Scan(
		&g.ID, &g.UserID, &g.Title, &g.Description, &g.TargetAmount, &g.CurrentAmount,
		&g.Category, &targetDate, &g.Priority, &g.IsCompleted, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if targetDate.Valid {
		d := civil.DateOf(targetDate.Time)
		g.TargetDate = &d
	}
	return &g, nil
}

func (r *SavingsRepository) Create(ctx context.Context, g *savings.SavingsGoal) (*savings.SavingsGoal, error) {
	query := `
		INSERT INTO savings_goals (id, user_id, title, description, target_amount, current_amount,
		                           category, target_date, priority, is_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + savingsColumns

	created, err := scanSavingsGoal(r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), g.UserID, g.Title, g.Description, g.TargetAmount, g.CurrentAmount,
		g.Category, g.TargetDate, g.Priority, g.IsCompleted,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create savings goal: %w", err)
	}
	return created, nil
}

func (r *SavingsRepository) GetByID(ctx context.Context, userID, id string) (*savings.SavingsGoal, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	query := `SELECT ` + savingsColumns + ` FROM savings_goals WHERE id = $1 AND user_id = $2`

	g, err := scanSavingsGoal(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get savings goal: %w", err)
	}
	return g, nil
}

func (r *SavingsRepository) List(ctx context.Context, userID string) ([]*savings.SavingsGoal, error) {
	query := `SELECT ` + savingsColumns + ` FROM savings_goals WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list savings goals: %w", err)
	}
	defer rows.Close()

	goals := []*savings.SavingsGoal{}
	for rows.Next() {
		g, err := scanSavingsGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan savings goal: %w", err)
		}
		goals = append(goals, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating savings goals: %w", err)
	}

	return goals, nil
}

// Update writes the whole record; the service has already merged the patch
// and re-derived is_completed.
func (r *SavingsRepository) Update(ctx context.Context, g *savings.SavingsGoal) (*savings.SavingsGoal, error) {
	query := `
		UPDATE savings_goals
		SET title = $1,
		    description = $2,
		    target_amount = $3,
		    current_amount = $4,
		    category = $5,
		    target_date = $6,
		    priority = $7,
		    is_completed = $8,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $9 AND user_id = $10
		RETURNING ` + savingsColumns

	updated, err := scanSavingsGoal(r.db.QueryRowContext(
		ctx, query,
		g.Title, g.Description, g.TargetAmount, g.CurrentAmount, g.Category,
		g.TargetDate, g.Priority, g.IsCompleted, g.ID, g.UserID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, savings.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update savings goal: %w", err)
	}
	return updated, nil
}

func (r *SavingsRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM savings_goals WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("failed to delete savings goal: %w", err)
	}
	return nil
}
