package subscription

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(n int) *int {
	return &n
}

func TestBillingCycle_Next(t *testing.T) {
	start := date(2024, 1, 15)
	tests := []struct {
		cycle BillingCycle
		want  civil.Date
	}{
		{CycleWeekly, date(2024, 1, 22)},
		{CycleMonthly, date(2024, 2, 15)},
		{CycleQuarterly, date(2024, 4, 15)},
		{CycleYearly, date(2025, 1, 15)},
	}

	for _, tt := range tests {
		t.Run(string(tt.cycle), func(t *testing.T) {
			if got := tt.cycle.Next(start); got != tt.want {
				t.Errorf("Next() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSubscription_RollForward(t *testing.T) {
	tests := []struct {
		name      string
		cycle     BillingCycle
		next      civil.Date
		today     civil.Date
		want      civil.Date
		wantMoved bool
	}{
		{"future date untouched", CycleMonthly, date(2024, 3, 10), date(2024, 3, 1), date(2024, 3, 10), false},
		{"today untouched", CycleMonthly, date(2024, 3, 1), date(2024, 3, 1), date(2024, 3, 1), false},
		{"one cycle behind", CycleMonthly, date(2024, 2, 10), date(2024, 3, 1), date(2024, 3, 10), true},
		{"several weeks behind", CycleWeekly, date(2024, 1, 1), date(2024, 1, 20), date(2024, 1, 22), true},
		{"lands on today", CycleWeekly, date(2024, 1, 6), date(2024, 1, 13), date(2024, 1, 13), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Subscription{BillingCycle: tt.cycle, NextBillingDate: tt.next}
			moved := s.RollForward(tt.today)
			if moved != tt.wantMoved || s.NextBillingDate != tt.want {
				t.Errorf("RollForward() = %v, %s; want %v, %s", moved, s.NextBillingDate, tt.wantMoved, tt.want)
			}
		})
	}
}

func TestSubscription_ReminderDue(t *testing.T) {
	s := &Subscription{IsActive: true, NextBillingDate: date(2024, 5, 10), ReminderDays: 3}

	tests := []struct {
		today civil.Date
		want  bool
	}{
		{date(2024, 5, 6), false},
		{date(2024, 5, 7), true},
		{date(2024, 5, 10), true},
		{date(2024, 5, 11), false},
	}
	for _, tt := range tests {
		if got := s.ReminderDue(tt.today); got != tt.want {
			t.Errorf("ReminderDue(%s) = %v, want %v", tt.today, got, tt.want)
		}
	}

	s.IsActive = false
	if s.ReminderDue(date(2024, 5, 9)) {
		t.Error("inactive subscription must not be due")
	}
}

func TestCreateParams(t *testing.T) {
	valid := func() CreateParams {
		return CreateParams{
			Name:            "Streaming",
			Amount:          decPtr("15.99"),
			BillingCycle:    CycleMonthly,
			NextBillingDate: func() *civil.Date { d := date(2024, 6, 1); return &d }(),
		}
	}

	tests := []struct {
		name    string
		mutate  func(p *CreateParams)
		wantErr string
	}{
		{"valid", func(p *CreateParams) {}, ""},
		{"missing name", func(p *CreateParams) { p.Name = "" }, "Name, amount, billing cycle, and next billing date are required"},
		{"missing date", func(p *CreateParams) { p.NextBillingDate = nil }, "Name, amount, billing cycle, and next billing date are required"},
		{"zero amount", func(p *CreateParams) { p.Amount = decPtr("0") }, "Amount must be positive"},
		{"bad cycle", func(p *CreateParams) { p.BillingCycle = "daily" }, "Invalid billing cycle"},
		{"negative reminder", func(p *CreateParams) { p.ReminderDays = intPtr(-1) }, "reminderDays must be between 0 and 365"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}

	t.Run("defaults", func(t *testing.T) {
		p := valid()
		s := p.Subscription("u1")
		if s.Category != DefaultCategory || s.ReminderDays != DefaultReminderDays || !s.IsActive {
			t.Errorf("defaults not applied: %+v", s)
		}
		if s.Description != nil || s.Website != nil {
			t.Error("omitted optional fields should be nil")
		}
	})

	t.Run("explicit zero reminder days kept", func(t *testing.T) {
		p := valid()
		p.ReminderDays = intPtr(0)
		if s := p.Subscription("u1"); s.ReminderDays != 0 {
			t.Errorf("ReminderDays = %d, want 0", s.ReminderDays)
		}
	})
}
