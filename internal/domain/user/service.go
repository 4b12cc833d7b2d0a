package user

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Profile returns the caller's profile, creating it on first access. An
// existing row is only written when the token carries a new email.
func (s *Service) Profile(ctx context.Context, firebaseUID, email string) (*User, error) {
	u, err := s.repo.GetByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u != nil && (email == "" || u.Email == email) {
		return u, nil
	}

	u, err = s.repo.Upsert(ctx, UpsertParams{FirebaseUID: firebaseUID, Email: email})
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return u, nil
}

func (s *Service) UpdateProfile(ctx context.Context, firebaseUID, email string, params UpdateProfileParams) (*User, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.DisplayName != nil {
		name := strings.TrimSpace(*params.DisplayName)
		params.DisplayName = &name
	}

	// Profiles are created lazily, so make sure the row exists first.
	if _, err := s.Profile(ctx, firebaseUID, email); err != nil {
		return nil, err
	}
	return s.repo.UpdateProfile(ctx, firebaseUID, params)
}
