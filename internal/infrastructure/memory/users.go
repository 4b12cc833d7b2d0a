package memory

import (
	"context"

	"github.com/google/uuid"

	"moneytracker/internal/domain/user"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Upsert(_ context.Context, params user.UpsertParams) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[params.FirebaseUID]
	if !ok {
		now := r.s.now()
		u = &user.User{
			ID:          uuid.NewString(),
			FirebaseUID: params.FirebaseUID,
			Email:       params.Email,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		r.s.users[params.FirebaseUID] = u
	} else if params.Email != "" && params.Email != u.Email {
		u.Email = params.Email
		u.UpdatedAt = r.s.now()
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) GetByFirebaseUID(_ context.Context, firebaseUID string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[firebaseUID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, firebaseUID string, params user.UpdateProfileParams) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[firebaseUID]
	if !ok {
		return nil, user.ErrNotFound
	}
	if params.DisplayName != nil {
		v := *params.DisplayName
		u.DisplayName = &v
	}
	if params.AvatarURL != nil {
		v := *params.AvatarURL
		u.AvatarURL = &v
	}
	u.UpdatedAt = r.s.now()
	cp := *u
	return &cp, nil
}
