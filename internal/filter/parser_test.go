package filter

import (
	"testing"
	"time"
)

func TestParseDateRangeAt(t *testing.T) {
	// Reference point in June so earlier months roll into next year
	now := time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC)

	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantFrom time.Time
		wantTo   time.Time
	}{
		{name: "same month short", input: "Jul 1-15", wantFrom: date(2026, 7, 1), wantTo: date(2026, 7, 15)},
		{name: "same month long", input: "July 1-15", wantFrom: date(2026, 7, 1), wantTo: date(2026, 7, 15)},
		{name: "current month stays this year", input: "Jun 20-30", wantFrom: date(2026, 6, 20), wantTo: date(2026, 6, 30)},
		{name: "past month rolls forward", input: "Mar 1-15", wantFrom: date(2027, 3, 1), wantTo: date(2027, 3, 15)},
		{name: "cross month", input: "August 1 - September 15", wantFrom: date(2026, 8, 1), wantTo: date(2026, 9, 15)},
		{name: "cross year", input: "Dec 25 - Jan 5", wantFrom: date(2026, 12, 25), wantTo: date(2027, 1, 5)},
		{name: "entire month", input: "October", wantFrom: date(2026, 10, 1), wantTo: date(2026, 10, 31)},
		{name: "entire february", input: "Feb", wantFrom: date(2027, 2, 1), wantTo: date(2027, 2, 28)},
		{name: "sept abbreviation", input: "sept", wantFrom: date(2026, 9, 1), wantTo: date(2026, 9, 30)},
		{name: "empty string", input: "", wantErr: true},
		{name: "invalid format", input: "not a date", wantErr: true},
		{name: "invalid day", input: "Jul 50-60", wantErr: true},
		{name: "invalid month", input: "Xxx 1-15", wantErr: true},
		{name: "reversed", input: "Jul 15-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := ParseDateRangeAt(tt.input, now)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDateRangeAt(%q) expected error, got %v - %v", tt.input, from, to)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateRangeAt(%q) unexpected error: %v", tt.input, err)
			}

			if !from.Equal(tt.wantFrom) {
				t.Errorf("from = %v, want %v", from, tt.wantFrom)
			}

			// End of range is the last second of the final day
			wantTo := tt.wantTo.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
			if !to.Equal(wantTo) {
				t.Errorf("to = %v, want %v", to, wantTo)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input string
		want  time.Month
	}{
		{"jan", time.January},
		{"January", time.January},
		{"JANUARY", time.January},
		{" may ", time.May},
		{"sept", time.September},
		{"dec", time.December},
		{"invalid", time.Month(0)},
		{"", time.Month(0)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseMonth(tt.input); got != tt.want {
				t.Errorf("parseMonth(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestYearForMonth(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		month time.Month
		want  int
	}{
		{time.May, 2027},
		{time.June, 2026},
		{time.December, 2026},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			if got := yearForMonth(tt.month, now); got != tt.want {
				t.Errorf("yearForMonth(%v) = %d, want %d", tt.month, got, tt.want)
			}
		})
	}
}

func TestCriteria_SetDateRange(t *testing.T) {
	c := New("")
	if err := c.SetDateRange("March"); err != nil {
		t.Fatalf("SetDateRange() error = %v", err)
	}
	if c.DateFrom == nil || c.DateTo == nil {
		t.Fatal("SetDateRange() should set both bounds")
	}

	before := c.Clone()
	if err := c.SetDateRange("garbage"); err == nil {
		t.Fatal("SetDateRange() expected error")
	}
	if !c.DateFrom.Equal(*before.DateFrom) {
		t.Error("failed SetDateRange() must not change the bounds")
	}
}
