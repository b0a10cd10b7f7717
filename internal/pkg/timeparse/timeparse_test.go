package timeparse

import (
	"testing"
)

func TestExtractDateKey(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"2025-11-27T18:09:57.000Z", "2025-11-27", true},
		{"2025-11-27T18:09:57+08:00", "2025-11-27", true},
		{"2025-11-27 18:09:57", "2025-11-27", true},
		{"2025-11-27", "2025-11-27", true},
		{"logged at 2025-01-05 06:00", "2025-01-05", true},
		{"18:09:57", "", false},
		{"18:09", "", false},
		{"", "", false},
		{"   ", "", false},
		{"2025-13-01T00:00:00Z", "", false},
		{"2025-00-10", "", false},
		{"garbage", "", false},
	}
	for _, c := range cases {
		got, ok := ExtractDateKey(c.input)
		if ok != c.ok {
			t.Errorf("ExtractDateKey(%q) ok = %v, want %v", c.input, ok, c.ok)
			continue
		}
		if ok && got.String() != c.want {
			t.Errorf("ExtractDateKey(%q) = %s, want %s", c.input, got, c.want)
		}
	}
}

func TestExtractMinuteOfDay(t *testing.T) {
	cases := []struct {
		input string
		want  int
		ok    bool
	}{
		{"07:58", 478, true},
		{"7:58", 478, true},
		{"18:05:00", 1085, true},
		{"00:00", 0, true},
		{"23:59", 1439, true},
		{"2025-11-27T18:09:57.000Z", 1089, true},
		{"2025-11-27 18:09:57", 1089, true},
		{"ends 9:30 sharp", 570, true},
		{"24:00", 0, false},
		{"18:60", 0, false},
		{"", 0, false},
		{"no time here", 0, false},
	}
	for _, c := range cases {
		got, ok := ExtractMinuteOfDay(c.input)
		if ok != c.ok {
			t.Errorf("ExtractMinuteOfDay(%q) ok = %v, want %v", c.input, ok, c.ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("ExtractMinuteOfDay(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}

// The same wall-clock instant written with different zone suffixes must
// normalize identically: the digits are the record, not the zone.
func TestExtractIgnoresZoneMarkers(t *testing.T) {
	variants := []string{
		"2025-11-27T07:58:00Z",
		"2025-11-27T07:58:00.000Z",
		"2025-11-27T07:58:00+08:00",
		"2025-11-27T07:58:00-05:00",
		"2025-11-27 07:58:00",
	}
	for _, v := range variants {
		key, ok := ExtractDateKey(v)
		if !ok || key.String() != "2025-11-27" {
			t.Errorf("ExtractDateKey(%q) = %s, %v; want 2025-11-27", v, key, ok)
		}
		minute, ok := ExtractMinuteOfDay(v)
		if !ok || minute != 478 {
			t.Errorf("ExtractMinuteOfDay(%q) = %d, %v; want 478", v, minute, ok)
		}
	}
}

func TestMinuteLabel(t *testing.T) {
	cases := []struct {
		minute int
		want   string
	}{
		{0, "00:00"},
		{478, "07:58"},
		{720, "12:00"},
		{1439, "23:59"},
	}
	for _, c := range cases {
		if got := MinuteLabel(c.minute); got != c.want {
			t.Errorf("MinuteLabel(%d) = %q, want %q", c.minute, got, c.want)
		}
	}
}

func TestDBTime(t *testing.T) {
	if got := DBTime(nil); got != nil {
		t.Errorf("DBTime(nil) = %v, want nil", *got)
	}
	minute := 1085
	got := DBTime(&minute)
	if got == nil || *got != "18:05:00" {
		t.Errorf("DBTime(1085) = %v, want 18:05:00", got)
	}
}
