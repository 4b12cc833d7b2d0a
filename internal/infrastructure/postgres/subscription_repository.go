package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"moneytracker/internal/domain/subscription"
)

const subscriptionColumns = `id, user_id, name, category, amount, billing_cycle, next_billing_date,
	is_active, description, website, reminder_days, created_at, updated_at`

type SubscriptionRepository struct {
	db *DB
}

func NewSubscriptionRepository(db *DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func scanSubscription(row rowScanner) (*subscription.Subscription, error) {
	var s subscription.Subscription
	var description, website sql.NullString

	err := row.Scan(
		&s.ID, &s.UserID, &s.Name, &s.Category, &s.Amount, &s.BillingCycle, &s.NextBillingDate,
		&s.IsActive, &description, &website, &s.ReminderDays, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		s.Description = &description.String
	}
	if website.Valid {
		s.Website = &website.String
	}
	return &s, nil
}

func (r *SubscriptionRepository) scanAll(rows *sql.Rows) ([]*subscription.Subscription, error) {
	defer rows.Close()

	subs := []*subscription.Subscription{}
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}
	return subs, nil
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) (*subscription.Subscription, error) {
	query := `
		INSERT INTO subscriptions (id, user_id, name, category, amount, billing_cycle, next_billing_date,
		                           is_active, description, website, reminder_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + subscriptionColumns

	created, err := scanSubscription(r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), s.UserID, s.Name, s.Category, s.Amount, s.BillingCycle, s.NextBillingDate,
		s.IsActive, s.Description, s.Website, s.ReminderDays,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return created, nil
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, userID, id string) (*subscription.Subscription, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1 AND user_id = $2`

	s, err := scanSubscription(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return s, nil
}

func (r *SubscriptionRepository) List(ctx context.Context, userID string) ([]*subscription.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1 ORDER BY next_billing_date ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return r.scanAll(rows)
}

func (r *SubscriptionRepository) Update(ctx context.Context, userID, id string, params subscription.UpdateParams) (*subscription.Subscription, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, subscription.ErrNotFound
	}

	query := `
		UPDATE subscriptions
		SET name = COALESCE($1, name),
		    category = COALESCE($2, category),
		    amount = COALESCE($3, amount),
		    billing_cycle = COALESCE($4, billing_cycle),
		    next_billing_date = COALESCE($5, next_billing_date),
		    is_active = COALESCE($6, is_active),
		    description = COALESCE($7, description),
		    website = COALESCE($8, website),
		    reminder_days = COALESCE($9, reminder_days),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $10 AND user_id = $11
		RETURNING ` + subscriptionColumns

	s, err := scanSubscription(r.db.QueryRowContext(
		ctx, query,
		params.Name, params.Category, params.Amount, params.BillingCycle, params.NextBillingDate,
		params.IsActive, params.Description, params.Website, params.ReminderDays,
		id, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, subscription.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	return s, nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) ListActive(ctx context.Context) ([]*subscription.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE is_active ORDER BY user_id, next_billing_date`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active subscriptions: %w", err)
	}
	return r.scanAll(rows)
}

func (r *SubscriptionRepository) SetNextBillingDate(ctx context.Context, userID, id string, next civil.Date) error {
	query := `
		UPDATE subscriptions
		SET next_billing_date = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND user_id = $3
	`

	if _, err := r.db.ExecContext(ctx, query, next, id, userID); err != nil {
		return fmt.Errorf("failed to set next billing date: %w", err)
	}
	return nil
}
