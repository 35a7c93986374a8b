package jalali

import (
	"testing"
	"time"
)

func tehran(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tehran")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	return loc
}

func TestParseDate_TermAnchors(t *testing.T) {
	loc := tehran(t)

	got, err := ParseDate("1403/06/31", loc)
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	y, m, d := got.Date()
	if y != 2024 || m != time.September || d != 21 {
		t.Errorf("1403/06/31 = %v, want 2024-09-21", got)
	}
	if got.Weekday() != time.Saturday {
		t.Errorf("term start should be a Saturday, got %v", got.Weekday())
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("ParseDate should return midnight, got %v", got)
	}

	got, err = ParseDate("1403/10/20", loc)
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	y, m, d = got.Date()
	if y != 2025 || m != time.January || d != 9 {
		t.Errorf("1403/10/20 = %v, want 2025-01-09", got)
	}
}

func TestParseDate_PersianDigits(t *testing.T) {
	loc := tehran(t)
	a, err := ParseDate("۱۴۰۳/۰۶/۳۱", loc)
	if err != nil {
		t.Fatalf("ParseDate persian digits: %v", err)
	}
	b, _ := ParseDate("1403/06/31", loc)
	if !a.Equal(b) {
		t.Errorf("digit encodings of the same date should agree: %v vs %v", a, b)
	}
}

func TestParseDate_DashSeparator(t *testing.T) {
	loc := tehran(t)
	a, err := ParseDate("1403-06-31", loc)
	if err != nil {
		t.Fatalf("ParseDate with dashes: %v", err)
	}
	b, _ := ParseDate("1403/06/31", loc)
	if !a.Equal(b) {
		t.Error("dash and slash separators should parse identically")
	}
}

func TestParseDate_RejectsNonexistentDay(t *testing.T) {
	loc := tehran(t)
	// Mehr has 30 days; a naive conversion would normalize this forward.
	if _, err := ParseDate("1403/07/31", loc); err == nil {
		t.Error("1403/07/31 does not exist and must be rejected")
	}
}

func TestParseDate_Malformed(t *testing.T) {
	loc := tehran(t)
	for _, bad := range []string{"", "1403/06", "1403/06/31/1", "1403/13/01", "1403/00/10", "abc/de/fg"} {
		if _, err := ParseDate(bad, loc); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}
