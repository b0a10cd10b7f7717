// Package timeparse extracts calendar dates and times-of-day from the raw
// string representations the biometric devices and the HR store produce.
//
// Every value in this domain is a literal wall-clock fact: "the device
// recorded 18:09 on 2025-11-27". Parsing through time.Time and a location
// would silently shift those digits, so this package works on the string
// digits alone and never applies timezone arithmetic.
package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DateKey identifies a calendar date independent of any timezone.
type DateKey struct {
	Year  int
	Month int
	Day   int
}

func (k DateKey) IsZero() bool {
	return k.Year == 0 && k.Month == 0 && k.Day == 0
}

// String renders the key as "YYYY-MM-DD".
func (k DateKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, k.Month, k.Day)
}

var (
	leadingDateRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	looseDateRe   = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)

	pureTimeRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	isoTimeRe  = regexp.MustCompile(`T(\d{2}):(\d{2})`)
	spaceRe    = regexp.MustCompile(`\s(\d{2}):(\d{2})`)
	looseRe    = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// ExtractDateKey returns the calendar date a raw value encodes.
// A leading "YYYY-MM-DD" segment is matched verbatim; failing that, the
// first such segment anywhere in the string. Trailing zone markers are
// ignored entirely: "2025-11-27T18:09:57.000Z" yields 2025-11-27 no matter
// what zone the suffix claims. The second return is false when no date can
// be confidently extracted.
func ExtractDateKey(value string) (DateKey, bool) {
	str := strings.TrimSpace(value)
	if str == "" {
		return DateKey{}, false
	}

	m := leadingDateRe.FindStringSubmatch(str)
	if m == nil {
		m = looseDateRe.FindStringSubmatch(str)
	}
	if m == nil {
		return DateKey{}, false
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return DateKey{}, false
	}
	return DateKey{Year: year, Month: month, Day: day}, true
}

// ExtractMinuteOfDay returns minutes since midnight (0-1439) for any
// supported raw representation, trying formats in priority order: a pure
// time-of-day string ("HH:MM" or "HH:MM:SS"), a T-separated timestamp, a
// space-separated datetime, then any "HH:MM" pattern as a last resort.
// The digits are taken as the wall-clock value of record; a zone marker in
// the input changes nothing.
func ExtractMinuteOfDay(value string) (int, bool) {
	str := strings.TrimSpace(value)
	if str == "" {
		return 0, false
	}

	for _, re := range []*regexp.Regexp{pureTimeRe, isoTimeRe, spaceRe, looseRe} {
		m := re.FindStringSubmatch(str)
		if m == nil {
			continue
		}
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		if hours > 23 || minutes > 59 {
			continue
		}
		return hours*60 + minutes, true
	}
	return 0, false
}

// MinuteLabel renders a minute-of-day as "HH:MM".
func MinuteLabel(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// DBTime converts a minute-of-day to the "HH:MM:SS" form the TIME columns
// store. Nil input stays nil.
func DBTime(minute *int) *string {
	if minute == nil {
		return nil
	}
	s := MinuteLabel(*minute) + ":00"
	return &s
}
