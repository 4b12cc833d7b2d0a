package transaction

import (
	"context"
	"errors"
	"testing"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	CreateFunc  func(ctx context.Context, userID string, params CreateParams) (*Transaction, error)
	GetByIDFunc func(ctx context.Context, userID, id string) (*Transaction, error)
	ListFunc    func(ctx context.Context, userID string, filter Filter) ([]*Transaction, error)
	UpdateFunc  func(ctx context.Context, userID, id string, params UpdateParams) (*Transaction, error)
	DeleteFunc  func(ctx context.Context, userID, id string) error
}

func (m *MockRepository) Create(ctx context.Context, userID string, params CreateParams) (*Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockRepository) GetByID(ctx context.Context, userID, id string) (*Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, nil
}

func (m *MockRepository) List(ctx context.Context, userID string, filter Filter) ([]*Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, filter)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, userID, id string, params UpdateParams) (*Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params)
	}
	return nil, nil
}

func (m *MockRepository) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

type stubResolver struct {
	ids map[string]string
}

func (s stubResolver) Resolve(ctx context.Context, userID, name string) (string, error) {
	if id, ok := s.ids[name]; ok {
		return id, nil
	}
	return "", errors.New("unexpected category " + name)
}

func newTestService(repo *MockRepository) *Service {
	return NewService(repo, stubResolver{ids: map[string]string{"Food": "cat-food"}})
}

func TestService_Create(t *testing.T) {
	t.Run("validation runs before the repository", func(t *testing.T) {
		called := false
		svc := newTestService(&MockRepository{
			CreateFunc: func(ctx context.Context, userID string, params CreateParams) (*Transaction, error) {
				called = true
				return nil, nil
			},
		})

		_, err := svc.Create(context.Background(), "u1", CreateParams{Kind: KindExpense})
		if err == nil {
			t.Fatal("expected validation error")
		}
		if called {
			t.Error("repository should not be called for invalid input")
		}
	})

	t.Run("assigns owner", func(t *testing.T) {
		svc := newTestService(&MockRepository{
			CreateFunc: func(ctx context.Context, userID string, params CreateParams) (*Transaction, error) {
				return &Transaction{ID: "tx-1", UserID: userID, Kind: params.Kind, Amount: *params.Amount}, nil
			},
		})

		tx, err := svc.Create(context.Background(), "u1", CreateParams{
			Kind:       KindIncome,
			Amount:     decPtr("100"),
			CategoryID: "salary",
			Date:       datePtr(2024, 3, 1),
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if tx.UserID != "u1" {
			t.Errorf("UserID = %q, want u1", tx.UserID)
		}
	})
}

func TestService_CreateResolvesCategoryName(t *testing.T) {
	svc := newTestService(&MockRepository{
		CreateFunc: func(ctx context.Context, userID string, params CreateParams) (*Transaction, error) {
			if params.CategoryID != "cat-food" {
				t.Errorf("CategoryID = %q, want cat-food", params.CategoryID)
			}
			return &Transaction{ID: "tx-1", UserID: userID, CategoryID: params.CategoryID}, nil
		},
	})

	_, err := svc.Create(context.Background(), "u1", CreateParams{
		Kind:         KindExpense,
		Amount:       decPtr("9.99"),
		CategoryName: "Food",
		Date:         datePtr(2024, 1, 2),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
}

func TestService_Get(t *testing.T) {
	tests := []struct {
		name    string
		repo    *MockRepository
		wantErr error
	}{
		{
			name: "found",
			repo: &MockRepository{GetByIDFunc: func(ctx context.Context, userID, id string) (*Transaction, error) {
				return &Transaction{ID: id, UserID: userID}, nil
			}},
		},
		{
			name:    "missing",
			repo:    &MockRepository{},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(tt.repo, stubResolver{}).Get(context.Background(), "u1", "tx-1")
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Get() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_Update(t *testing.T) {
	svc := newTestService(&MockRepository{
		UpdateFunc: func(ctx context.Context, userID, id string, params UpdateParams) (*Transaction, error) {
			return nil, ErrNotFound
		},
	})

	_, err := svc.Update(context.Background(), "u2", "tx-of-u1", UpdateParams{Description: strPtr("x")})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}

	_, err = svc.Update(context.Background(), "u1", "tx-1", UpdateParams{Amount: decPtr("-1")})
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want validation error", err)
	}
}

type countingResolver struct {
	calls int
}

func (c *countingResolver) Resolve(ctx context.Context, userID, name string) (string, error) {
	c.calls++
	return "cat-" + name, nil
}

func TestService_UpdateCategoryName(t *testing.T) {
	phantom := "Phantom"

	t.Run("missing transaction creates no category", func(t *testing.T) {
		resolver := &countingResolver{}
		svc := NewService(&MockRepository{
			GetByIDFunc: func(ctx context.Context, userID, id string) (*Transaction, error) {
				return nil, nil
			},
			UpdateFunc: func(ctx context.Context, userID, id string, params UpdateParams) (*Transaction, error) {
				t.Error("repository update should not be called")
				return nil, nil
			},
		}, resolver)

		_, err := svc.Update(context.Background(), "u1", "missing", UpdateParams{CategoryName: &phantom})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("Update() error = %v, want ErrNotFound", err)
		}
		if resolver.calls != 0 {
			t.Errorf("category resolved %d times, want 0", resolver.calls)
		}
	})

	t.Run("existing transaction gets the resolved id", func(t *testing.T) {
		resolver := &countingResolver{}
		var gotCategory string
		svc := NewService(&MockRepository{
			GetByIDFunc: func(ctx context.Context, userID, id string) (*Transaction, error) {
				return &Transaction{ID: id, UserID: userID, CategoryID: "cat-Food"}, nil
			},
			UpdateFunc: func(ctx context.Context, userID, id string, params UpdateParams) (*Transaction, error) {
				gotCategory = *params.CategoryID
				return &Transaction{ID: id, UserID: userID, CategoryID: gotCategory}, nil
			},
		}, resolver)

		if _, err := svc.Update(context.Background(), "u1", "tx-1", UpdateParams{CategoryName: &phantom}); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if resolver.calls != 1 || gotCategory != "cat-Phantom" {
			t.Errorf("calls = %d, category = %q", resolver.calls, gotCategory)
		}
	})
}

func TestService_ListRejectsBadFilter(t *testing.T) {
	svc := newTestService(&MockRepository{
		ListFunc: func(ctx context.Context, userID string, filter Filter) ([]*Transaction, error) {
			t.Error("repository should not be called")
			return nil, nil
		},
	})

	_, err := svc.List(context.Background(), "u1", Filter{Kind: "bogus"})
	if err == nil {
		t.Error("expected error for invalid filter")
	}
}
