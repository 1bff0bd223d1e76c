package shifttime

import (
	"testing"
	"time"
)

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02T15:04", value, time.Local)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return ts
}

func TestCalculateWorkHours(t *testing.T) {
	tests := []struct {
		name         string
		start        string
		end          string
		lunchMinutes int
		want         float64
	}{
		{
			name:         "same day with lunch",
			start:        "2024-01-10T09:00",
			end:          "2024-01-10T17:30",
			lunchMinutes: 60,
			want:         7.5,
		},
		{
			name:         "overnight rollover",
			start:        "2024-01-10T22:00",
			end:          "2024-01-11T06:00",
			lunchMinutes: 30,
			want:         7.5,
		},
		{
			name:         "overnight entered as same-day clock times",
			start:        "2024-01-10T16:00",
			end:          "2024-01-10T01:30",
			lunchMinutes: 0,
			want:         9.5,
		},
		{
			name:         "no lunch",
			start:        "2024-01-10T08:00",
			end:          "2024-01-10T16:00",
			lunchMinutes: 0,
			want:         8,
		},
		{
			name:         "lunch exceeds elapsed span goes negative",
			start:        "2024-01-10T09:00",
			end:          "2024-01-10T09:30",
			lunchMinutes: 60,
			want:         -0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateWorkHours(mustParse(t, tt.start), mustParse(t, tt.end), tt.lunchMinutes)
			if got != tt.want {
				t.Errorf("CalculateWorkHours() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShiftDate(t *testing.T) {
	start := mustParse(t, "2024-01-10T22:00")
	got := ShiftDate(start)
	if got.Format(DateLayout) != "2024-01-10" {
		t.Errorf("ShiftDate() = %s, want 2024-01-10", got.Format(DateLayout))
	}
}

func TestPlannedWindow(t *testing.T) {
	t.Run("same day", func(t *testing.T) {
		start, end, err := PlannedWindow("2024-03-01", "09:00", "18:00")
		if err != nil {
			t.Fatalf("PlannedWindow() error = %v", err)
		}
		if !end.After(start) {
			t.Errorf("end %v not after start %v", end, start)
		}
		if end.Sub(start).Hours() != 9 {
			t.Errorf("window = %v hours, want 9", end.Sub(start).Hours())
		}
	})

	t.Run("rolls to next day", func(t *testing.T) {
		start, end, err := PlannedWindow("2024-03-01", "16:00", "01:30")
		if err != nil {
			t.Fatalf("PlannedWindow() error = %v", err)
		}
		if end.Day() != 2 {
			t.Errorf("end day = %d, want 2", end.Day())
		}
		if end.Sub(start).Hours() != 9.5 {
			t.Errorf("window = %v hours, want 9.5", end.Sub(start).Hours())
		}
	})

	t.Run("invalid clock", func(t *testing.T) {
		if _, _, err := PlannedWindow("2024-03-01", "9am", "18:00"); err == nil {
			t.Error("expected error for invalid clock value")
		}
	})
}

func TestFormatWorkHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{8, "8h"},
		{8.5, "8h 30m"},
		{7.999, "8h"},
		{0.25, "0h 15m"},
	}
	for _, tt := range tests {
		if got := FormatWorkHours(tt.hours); got != tt.want {
			t.Errorf("FormatWorkHours(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}
