package services

import (
	"testing"
	"time"

	"pocketbook/internal/core"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOneOffChecker_DueIn(t *testing.T) {
	due := date(2026, 10, 15)
	tests := []struct {
		name  string
		month time.Time
		want  bool
	}{
		{"same month", date(2026, 10, 1), true},
		{"next month", date(2026, 11, 1), false},
		{"same month last year", date(2025, 10, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := OneOffChecker{}.DueIn(due, tt.month)
			if ok != tt.want {
				t.Fatalf("OneOffChecker.DueIn() = %v, want %v", ok, tt.want)
			}
			if ok && !got.Equal(due) {
				t.Errorf("OneOffChecker.DueIn() day = %v, want %v", got, due)
			}
		})
	}
}

func TestMonthlyChecker_DueIn(t *testing.T) {
	tests := []struct {
		name    string
		due     time.Time
		month   time.Time
		want    bool
		wantDay time.Time
	}{
		{"first month", date(2026, 1, 10), date(2026, 1, 1), true, date(2026, 1, 10)},
		{"later month", date(2026, 1, 10), date(2026, 10, 1), true, date(2026, 10, 10)},
		{"before start", date(2026, 5, 10), date(2026, 4, 1), false, time.Time{}},
		{"31st in february", date(2026, 1, 31), date(2026, 2, 1), true, date(2026, 2, 28)},
		{"31st in leap february", date(2027, 12, 31), date(2028, 2, 1), true, date(2028, 2, 29)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MonthlyChecker{}.DueIn(tt.due, tt.month)
			if ok != tt.want {
				t.Fatalf("MonthlyChecker.DueIn() = %v, want %v", ok, tt.want)
			}
			if !got.Equal(tt.wantDay) {
				t.Errorf("MonthlyChecker.DueIn() day = %v, want %v", got, tt.wantDay)
			}
		})
	}
}

func TestYearlyChecker_DueIn(t *testing.T) {
	due := date(2025, 3, 20)
	tests := []struct {
		name  string
		month time.Time
		want  bool
	}{
		{"anniversary month", date(2026, 3, 1), true},
		{"first year", date(2025, 3, 1), true},
		{"other month", date(2026, 4, 1), false},
		{"before first year", date(2024, 3, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := (YearlyChecker{}).DueIn(due, tt.month); ok != tt.want {
				t.Errorf("YearlyChecker.DueIn() = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestGetDuenessChecker(t *testing.T) {
	tests := []struct {
		name    string
		expense core.Expense
		want    DuenessChecker
		wantErr bool
	}{
		{"one-off ignores frequency", core.Expense{Recurrence: core.OneOff, Frequency: core.Yearly}, OneOffChecker{}, false},
		{"recurring monthly", core.Expense{Recurrence: core.Recurring, Frequency: core.Monthly}, MonthlyChecker{}, false},
		{"recurring yearly", core.Expense{Recurrence: core.Recurring, Frequency: core.Yearly}, YearlyChecker{}, false},
		{"legacy record without frequency", core.Expense{Recurrence: core.Recurring}, MonthlyChecker{}, false},
		{"unknown frequency", core.Expense{Recurrence: core.Recurring, Frequency: "weekly"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetDuenessChecker(tt.expense)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetDuenessChecker() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("GetDuenessChecker() = %T, want %T", got, tt.want)
			}
		})
	}
}
