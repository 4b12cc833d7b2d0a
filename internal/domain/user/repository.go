package user

import "context"

// Repository defines the interface for user data access
type Repository interface {
	// Upsert creates the user on first sight and refreshes the email
	// otherwise.
	Upsert(ctx context.Context, params UpsertParams) (*User, error)
	// GetByFirebaseUID returns nil, nil when no profile exists.
	GetByFirebaseUID(ctx context.Context, firebaseUID string) (*User, error)
	// UpdateProfile returns ErrNotFound when no profile exists.
	UpdateProfile(ctx context.Context, firebaseUID string, params UpdateProfileParams) (*User, error)
}
