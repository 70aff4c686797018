package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{name: "regular day", in: "2025-07-01", want: New(2025, time.July, 1)},
		{name: "leap day", in: "2024-02-29", want: New(2024, time.February, 29)},
		{name: "not a leap year", in: "2025-02-29", wantErr: true},
		{name: "day out of range", in: "2025-02-30", wantErr: true},
		{name: "month out of range", in: "2025-13-01", wantErr: true},
		{name: "single digit month rejected", in: "2025-7-1", wantErr: true},
		{name: "garbage", in: "not-a-date", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestAdd_NormalizesAcrossMonths(t *testing.T) {
	d := MustParse("2025-01-31")
	if got := d.Add(1); got != MustParse("2025-02-01") {
		t.Errorf("Add(1) = %v, want 2025-02-01", got)
	}
	if got := d.Add(-31); got != MustParse("2024-12-31") {
		t.Errorf("Add(-31) = %v, want 2024-12-31", got)
	}
}

func TestTrailing(t *testing.T) {
	to := MustParse("2025-06-10")
	r := Trailing(to, 7)
	if r.From != MustParse("2025-06-04") {
		t.Fatalf("Trailing from = %v, want 2025-06-04", r.From)
	}

	testCases := []struct {
		day  string
		want bool
	}{
		{"2025-06-10", true},  // today
		{"2025-06-07", true},  // 3 days ago
		{"2025-06-04", true},  // oldest day still in window
		{"2025-06-03", false}, // one day too old
		{"2025-05-31", false}, // 10 days ago
		{"2025-06-11", false}, // future
	}
	for _, tc := range testCases {
		if got := r.Contains(MustParse(tc.day)); got != tc.want {
			t.Errorf("Contains(%s) = %v, want %v", tc.day, got, tc.want)
		}
	}
}

func TestStartOfMonth(t *testing.T) {
	if got := MustParse("2025-06-10").StartOfMonth(); got != MustParse("2025-06-01") {
		t.Errorf("StartOfMonth = %v, want 2025-06-01", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := MustParse("2025-03-15")
	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(data) != `"2025-03-15"` {
		t.Fatalf("MarshalJSON = %s, want \"2025-03-15\"", data)
	}
	var back Date
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
