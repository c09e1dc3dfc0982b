package utils

import (
	"testing"
	"time"
)

func TestParseFilingDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2021-11-15", "2021-11-15"},
		{"2008-02-14T00:00:00.000Z", "2008-02-14"},
		{"2024-05-01T10:30:00Z", "2024-05-01"},
	}
	for _, tt := range tests {
		got := ParseFilingDate(tt.in)
		if got.IsZero() {
			t.Errorf("ParseFilingDate(%q) returned zero time", tt.in)
			continue
		}
		if got.Format("2006-01-02") != tt.want {
			t.Errorf("ParseFilingDate(%q) = %s, want %s", tt.in, got.Format("2006-01-02"), tt.want)
		}
	}

	if got := ParseFilingDate("not-a-date"); !got.IsZero() {
		t.Errorf("ParseFilingDate(garbage) = %v, want zero time", got)
	}
	if got := ParseFilingDate(""); !got.IsZero() {
		t.Errorf("ParseFilingDate(empty) = %v, want zero time", got)
	}
}

func TestFilingQuarter(t *testing.T) {
	tests := []struct {
		date    string
		quarter int
	}{
		{"2021-01-01", 1},
		{"2021-03-31", 1},
		{"2021-04-01", 2},
		{"2021-06-30", 2},
		{"2021-07-15", 3},
		{"2021-11-15", 4},
		{"2021-12-31", 4},
	}
	for _, tt := range tests {
		d, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			t.Fatalf("bad test date %q: %v", tt.date, err)
		}
		if got := FilingQuarter(d); got != tt.quarter {
			t.Errorf("FilingQuarter(%s) = %d, want %d", tt.date, got, tt.quarter)
		}
		if got := FilingQuarter(d); d.Year() != 2021 || got < 1 || got > 4 {
			t.Errorf("FilingQuarter(%s) = %d out of range", tt.date, got)
		}
	}
}

func TestQuarterLabel(t *testing.T) {
	d, _ := time.Parse("2006-01-02", "2021-11-15")
	if got := QuarterLabel(d); got != "Q4" {
		t.Errorf("QuarterLabel = %q, want Q4", got)
	}
}
