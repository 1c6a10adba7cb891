package date

import (
	"testing"
	"time"
)

// TestTime assert that Time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.Time() != d2.Time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid Time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	today := New(2025, time.March, 1)
	testCases := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{input: "2025-07-01", want: New(2025, 7, 1)},
		{input: "2025-7-1", want: New(2025, 7, 1)},
		{input: "", want: today},
		{input: "Today", want: today},
		{input: "yesterday", want: New(2025, time.February, 28)},
		{input: "-3d", want: New(2025, time.February, 26)},
		{input: "+31d", want: New(2025, time.April, 1)},
		{input: "-xd", wantErr: true},
		{input: "01/07/2025", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := parse(tc.input, today)
		if (err != nil) != tc.wantErr {
			t.Errorf("parse(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("parse(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestNew_Normalizes(t *testing.T) {
	if got, want := New(2025, time.January, 32), New(2025, time.February, 1); got != want {
		t.Errorf("New(2025, 1, 32) = %v, want %v", got, want)
	}
	if !New(2025, 1, 1).Before(New(2025, 1, 2)) || !New(2025, 1, 2).After(New(2025, 1, 1)) {
		t.Errorf("Before/After are inconsistent")
	}
}
