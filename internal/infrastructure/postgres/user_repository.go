package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"moneytracker/internal/domain/user"
)

const userColumns = `id, firebase_uid, email, display_name, avatar_url, created_at, updated_at`

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	var displayName, avatarURL sql.NullString

	err := row.Scan(&u.ID, &u.FirebaseUID, &u.Email, &displayName, &avatarURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if displayName.Valid {
		u.DisplayName = &displayName.String
	}
	if avatarURL.Valid {
		u.AvatarURL = &avatarURL.String
	}
	return &u, nil
}

// Upsert keeps the stored email when the token carries none.
func (r *UserRepository) Upsert(ctx context.Context, params user.UpsertParams) (*user.User, error) {
	query := `
		INSERT INTO users (id, firebase_uid, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (firebase_uid) DO UPDATE
		SET email = CASE WHEN EXCLUDED.email = '' THEN users.email ELSE EXCLUDED.email END,
		    updated_at = CASE WHEN EXCLUDED.email IN ('', users.email) THEN users.updated_at ELSE CURRENT_TIMESTAMP END
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query, uuid.NewString(), params.FirebaseUID, params.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByFirebaseUID(ctx context.Context, firebaseUID string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE firebase_uid = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, firebaseUID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, firebaseUID string, params user.UpdateProfileParams) (*user.User, error) {
	query := `
		UPDATE users
		SET display_name = COALESCE($1, display_name),
		    avatar_url = COALESCE($2, avatar_url),
		    updated_at = CURRENT_TIMESTAMP
		WHERE firebase_uid = $3
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query, params.DisplayName, params.AvatarURL, firebaseUID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}
