package datemath_test

import (
	"testing"
	"time"

	"github.com/lyanh238/VNASelf/pkg/datemath"
)

var ict = time.FixedZone("+07:00", 7*3600)

func TestNewParser(t *testing.T) {
	if _, err := datemath.NewParser(ict); err != nil {
		t.Fatalf("unexpected error creating parser: %v", err)
	}
	if _, err := datemath.NewParser(nil); err == nil {
		t.Fatalf("expected error for nil location")
	}
}

func TestParse(t *testing.T) {
	parser, _ := datemath.NewParser(ict)
	// Tuesday, October 21, 2025, mid-afternoon
	baseTime := time.Date(2025, 10, 21, 15, 30, 0, 0, ict)
	startOfBase := time.Date(2025, 10, 21, 0, 0, 0, 0, ict)

	tests := []struct {
		name    string
		date    string
		want    time.Time
		wantErr bool
	}{
		{name: "absolute date", date: "2025-10-25", want: time.Date(2025, 10, 25, 0, 0, 0, 0, ict)},
		{name: "today", date: "today", want: startOfBase},
		{name: "tomorrow", date: "tomorrow", want: startOfBase.AddDate(0, 0, 1)},
		{name: "in 3 days", date: "in 3 days", want: startOfBase.AddDate(0, 0, 3)},
		{name: "in 2 weeks", date: "in 2 weeks", want: startOfBase.AddDate(0, 0, 14)},
		{name: "in 1 month", date: "in 1 month", want: startOfBase.AddDate(0, 1, 0)},
		{name: "next friday", date: "next friday", want: time.Date(2025, 10, 24, 0, 0, 0, 0, ict)},
		{name: "next tuesday wraps a week", date: "next tuesday", want: startOfBase.AddDate(0, 0, 7)},
		{name: "empty", date: "", wantErr: true},
		{name: "garbage", date: "someday", wantErr: true},
		{name: "unknown weekday", date: "next blursday", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parser.Parse(tc.date, baseTime)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.date)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("Parse(%q) = %v, want %v", tc.date, got, tc.want)
			}
		})
	}
}

func TestEndOfDay(t *testing.T) {
	parser, _ := datemath.NewParser(ict)
	start := time.Date(2025, 10, 21, 0, 0, 0, 0, ict)

	end := parser.EndOfDay(start)
	if !end.Equal(start.AddDate(0, 0, 1)) {
		t.Errorf("EndOfDay should be the next midnight, got %v", end)
	}
}
