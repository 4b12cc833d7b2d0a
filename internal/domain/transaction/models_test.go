package transaction

import (
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"moneytracker/internal/shared/validation"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func datePtr(y int, m int, d int) *civil.Date {
	date := civil.Date{Year: y, Month: time.Month(m), Day: d}
	return &date
}

func strPtr(s string) *string { return &s }

func kindPtr(k Kind) *Kind { return &k }

func TestCreateParams_Validate(t *testing.T) {
	valid := func() CreateParams {
		return CreateParams{
			Kind:       KindExpense,
			Amount:     decPtr("12.50"),
			CategoryID: "cat-1",
			Date:       datePtr(2024, 1, 5),
		}
	}

	tests := []struct {
		name    string
		mutate  func(p *CreateParams)
		wantErr string
	}{
		{name: "valid", mutate: func(p *CreateParams) {}},
		{name: "missing kind", mutate: func(p *CreateParams) { p.Kind = "" }, wantErr: "kind is required"},
		{name: "invalid kind", mutate: func(p *CreateParams) { p.Kind = "transfer" }, wantErr: "kind must be income or expense"},
		{name: "missing amount", mutate: func(p *CreateParams) { p.Amount = nil }, wantErr: "amount is required"},
		{name: "zero amount", mutate: func(p *CreateParams) { p.Amount = decPtr("0") }, wantErr: "amount must be greater than zero"},
		{name: "negative amount", mutate: func(p *CreateParams) { p.Amount = decPtr("-3") }, wantErr: "amount must be greater than zero"},
		{name: "missing category", mutate: func(p *CreateParams) { p.CategoryID = "" }, wantErr: "categoryId or category is required"},
		{name: "category by name", mutate: func(p *CreateParams) { p.CategoryID = ""; p.CategoryName = "Food" }},
		{name: "missing date", mutate: func(p *CreateParams) { p.Date = nil }, wantErr: "date is required"},
		{name: "invalid date", mutate: func(p *CreateParams) { p.Date = datePtr(2024, 2, 30) }, wantErr: "date is invalid"},
		{
			name:    "description too long",
			mutate:  func(p *CreateParams) { p.Description = strings.Repeat("a", 501) },
			wantErr: "description must be 500 characters or less",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error %q, got nil", tt.wantErr)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
			}
			if !validation.Is(err) {
				t.Error("Validate() error should be a validation error")
			}
		})
	}
}

func TestUpdateParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  UpdateParams
		wantErr bool
	}{
		{name: "empty patch", params: UpdateParams{}, wantErr: false},
		{name: "valid amount", params: UpdateParams{Amount: decPtr("1.00")}, wantErr: false},
		{name: "zero amount", params: UpdateParams{Amount: decPtr("0")}, wantErr: true},
		{name: "invalid kind", params: UpdateParams{Kind: kindPtr("gift")}, wantErr: true},
		{name: "empty category", params: UpdateParams{CategoryID: strPtr("")}, wantErr: true},
		{name: "description ok", params: UpdateParams{Description: strPtr("lunch")}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	tx := &Transaction{
		Kind:       KindExpense,
		Amount:     decimal.RequireFromString("20.00"),
		CategoryID: "food",
		Date:       civil.Date{Year: 2024, Month: 1, Day: 15},
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "empty filter", filter: Filter{}, want: true},
		{name: "kind match", filter: Filter{Kind: KindExpense}, want: true},
		{name: "kind mismatch", filter: Filter{Kind: KindIncome}, want: false},
		{name: "category mismatch", filter: Filter{CategoryID: "rent"}, want: false},
		{name: "start inclusive", filter: Filter{StartDate: datePtr(2024, 1, 15)}, want: true},
		{name: "after end", filter: Filter{EndDate: datePtr(2024, 1, 14)}, want: false},
		{name: "min inclusive", filter: Filter{MinAmount: decPtr("20")}, want: true},
		{name: "above max", filter: Filter{MaxAmount: decPtr("19.99")}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tx); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Validate(t *testing.T) {
	f := Filter{StartDate: datePtr(2024, 2, 1), EndDate: datePtr(2024, 1, 1)}
	if err := f.Validate(); err == nil {
		t.Error("expected error for inverted date range")
	}

	f = Filter{MinAmount: decPtr("10"), MaxAmount: decPtr("5")}
	if err := f.Validate(); err == nil {
		t.Error("expected error for inverted amount range")
	}

	f = Filter{Kind: "bogus"}
	if err := f.Validate(); err == nil {
		t.Error("expected error for unknown kind")
	}
}
