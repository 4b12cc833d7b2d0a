package subscription

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/civil"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	CreateFunc             func(ctx context.Context, s *Subscription) (*Subscription, error)
	GetByIDFunc            func(ctx context.Context, userID, id string) (*Subscription, error)
	ListFunc               func(ctx context.Context, userID string) ([]*Subscription, error)
	UpdateFunc             func(ctx context.Context, userID, id string, params UpdateParams) (*Subscription, error)
	DeleteFunc             func(ctx context.Context, userID, id string) error
	ListActiveFunc         func(ctx context.Context) ([]*Subscription, error)
	SetNextBillingDateFunc func(ctx context.Context, userID, id string, next civil.Date) error
}

func (m *MockRepository) Create(ctx context.Context, s *Subscription) (*Subscription, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	return s, nil
}

func (m *MockRepository) GetByID(ctx context.Context, userID, id string) (*Subscription, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, nil
}

func (m *MockRepository) List(ctx context.Context, userID string) ([]*Subscription, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, userID, id string, params UpdateParams) (*Subscription, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params)
	}
	return nil, ErrNotFound
}

func (m *MockRepository) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockRepository) ListActive(ctx context.Context) ([]*Subscription, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *MockRepository) SetNextBillingDate(ctx context.Context, userID, id string, next civil.Date) error {
	if m.SetNextBillingDateFunc != nil {
		return m.SetNextBillingDateFunc(ctx, userID, id, next)
	}
	return nil
}

func TestService_CreateValidatesFirst(t *testing.T) {
	svc := NewService(&MockRepository{
		CreateFunc: func(ctx context.Context, s *Subscription) (*Subscription, error) {
			t.Error("repository should not be called")
			return s, nil
		},
	})

	_, err := svc.Create(context.Background(), "u1", CreateParams{Name: "Gym", Amount: decPtr("-3")})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestService_UpdateRejectsBadCycle(t *testing.T) {
	svc := NewService(&MockRepository{
		UpdateFunc: func(ctx context.Context, userID, id string, params UpdateParams) (*Subscription, error) {
			t.Error("repository should not be called")
			return nil, nil
		},
	})

	cycle := BillingCycle("fortnightly")
	if _, err := svc.Update(context.Background(), "u1", "s1", UpdateParams{BillingCycle: &cycle}); err == nil {
		t.Error("expected validation error")
	}
}

func TestService_GetMissing(t *testing.T) {
	_, err := NewService(&MockRepository{}).Get(context.Background(), "u1", "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}
