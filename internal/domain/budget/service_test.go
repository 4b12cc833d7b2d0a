package budget

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"moneytracker/internal/shared/validation"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	CreateFunc  func(ctx context.Context, b *Budget) (*Budget, error)
	GetByIDFunc func(ctx context.Context, userID, id string) (*Budget, error)
	ListFunc    func(ctx context.Context, userID string) ([]*Budget, error)
	UpdateFunc  func(ctx context.Context, b *Budget) (*Budget, error)
	DeleteFunc  func(ctx context.Context, userID, id string) error
}

func (m *MockRepository) Create(ctx context.Context, b *Budget) (*Budget, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, b)
	}
	return b, nil
}

func (m *MockRepository) GetByID(ctx context.Context, userID, id string) (*Budget, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, nil
}

func (m *MockRepository) List(ctx context.Context, userID string) ([]*Budget, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, b *Budget) (*Budget, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, b)
	}
	return b, nil
}

func (m *MockRepository) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

type stubResolver struct {
	calls int
}

func (s *stubResolver) Resolve(ctx context.Context, userID, name string) (string, error) {
	s.calls++
	return "cat-" + name, nil
}

func newTestService(repo *MockRepository, resolver *stubResolver) *Service {
	agg := NewAggregator(&stubSpend{}, stubNames{names: map[string]string{"cat-Food": "Food", "cat-Rent": "Rent"}}).
		WithClock(fixedClock(date(2024, 1, 15)))
	return NewService(repo, resolver, agg)
}

func TestService_Create(t *testing.T) {
	t.Run("resolves category and summarizes", func(t *testing.T) {
		resolver := &stubResolver{}
		var stored *Budget
		svc := newTestService(&MockRepository{
			CreateFunc: func(ctx context.Context, b *Budget) (*Budget, error) {
				stored = b
				b.ID = "b1"
				return b, nil
			},
		}, resolver)

		got, err := svc.Create(context.Background(), "u1", CreateParams{
			Category:  "Food",
			Amount:    decPtr("300"),
			Period:    PeriodMonthly,
			StartDate: datePtr(date(2024, 1, 1)),
			EndDate:   datePtr(date(2024, 1, 31)),
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if stored.UserID != "u1" || stored.CategoryID != "cat-Food" {
			t.Errorf("stored = %+v", stored)
		}
		if got.CategoryName != "Food" || !got.IsActive || !got.SpentAmount.IsZero() {
			t.Errorf("summary = %+v", got)
		}
	})

	t.Run("invalid input has no side effect", func(t *testing.T) {
		resolver := &stubResolver{}
		svc := newTestService(&MockRepository{
			CreateFunc: func(ctx context.Context, b *Budget) (*Budget, error) {
				t.Error("repository should not be called")
				return b, nil
			},
		}, resolver)

		_, err := svc.Create(context.Background(), "u1", CreateParams{Category: "Food", Amount: decPtr("0")})
		if err == nil {
			t.Fatal("expected error")
		}
		if resolver.calls != 0 {
			t.Error("category must not be created for invalid input")
		}
	})
}

func TestService_Update(t *testing.T) {
	existing := func() *Budget {
		return &Budget{
			ID:         "b1",
			UserID:     "u1",
			CategoryID: "cat-Food",
			Amount:     decimal.RequireFromString("100"),
			Period:     PeriodMonthly,
			StartDate:  date(2024, 1, 1),
			EndDate:    date(2024, 1, 31),
		}
	}

	t.Run("other owner is not found", func(t *testing.T) {
		svc := newTestService(&MockRepository{
			GetByIDFunc: func(ctx context.Context, userID, id string) (*Budget, error) {
				if userID != "u1" {
					return nil, nil
				}
				return existing(), nil
			},
		}, &stubResolver{})

		_, err := svc.Update(context.Background(), "u2", "b1", UpdateParams{Amount: decPtr("5")})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Update() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("category rename resolves new id", func(t *testing.T) {
		rent := "Rent"
		svc := newTestService(&MockRepository{
			GetByIDFunc: func(ctx context.Context, userID, id string) (*Budget, error) {
				return existing(), nil
			},
		}, &stubResolver{})

		got, err := svc.Update(context.Background(), "u1", "b1", UpdateParams{Category: &rent})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if got.Budget.CategoryID != "cat-Rent" || got.CategoryName != "Rent" {
			t.Errorf("summary = %+v", got)
		}
		if !got.Budget.Amount.Equal(decimal.RequireFromString("100")) {
			t.Errorf("Amount changed to %s", got.Budget.Amount)
		}
	})

	ghost := "Ghost"
	tests := []struct {
		name    string
		stored  *Budget
		params  UpdateParams
		wantErr func(error) bool
	}{
		{
			name:    "inverted range",
			stored:  existing(),
			params:  UpdateParams{Category: &ghost, StartDate: datePtr(date(2024, 3, 1))},
			wantErr: validation.Is,
		},
		{
			name:    "sub-cent amount",
			stored:  existing(),
			params:  UpdateParams{Category: &ghost, Amount: decPtr("10.005")},
			wantErr: validation.Is,
		},
		{
			name:    "missing budget",
			stored:  nil,
			params:  UpdateParams{Category: &ghost},
			wantErr: func(err error) bool { return errors.Is(err, ErrNotFound) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+" creates no category", func(t *testing.T) {
			resolver := &stubResolver{}
			svc := newTestService(&MockRepository{
				GetByIDFunc: func(ctx context.Context, userID, id string) (*Budget, error) {
					return tt.stored, nil
				},
				UpdateFunc: func(ctx context.Context, b *Budget) (*Budget, error) {
					t.Error("repository update should not be called")
					return b, nil
				},
			}, resolver)

			_, err := svc.Update(context.Background(), "u1", "b1", tt.params)
			if !tt.wantErr(err) {
				t.Fatalf("Update() error = %v", err)
			}
			if resolver.calls != 0 {
				t.Errorf("category resolved %d times, want 0", resolver.calls)
			}
		})
	}
}

func TestService_Get(t *testing.T) {
	svc := newTestService(&MockRepository{}, &stubResolver{})

	_, err := svc.Get(context.Background(), "u1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}
