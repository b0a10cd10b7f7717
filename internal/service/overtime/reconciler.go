package overtime

import (
	"sort"

	"github.com/danny20232023/hris-sub003/internal/domain/overtime"
	"github.com/danny20232023/hris-sub003/internal/domain/timeclock"
	"github.com/danny20232023/hris-sub003/internal/pkg/timeparse"
)

// Minute-of-day boundary between the AM and PM halves. Exactly 12:00 is PM.
const noonMinute = 720

const minutesPerDay = 1440

// matchLogs selects the raw logs that count toward an overtime window:
// same calendar date as the entry and a time-of-day inside
// [fromMinute, toMinute], both boundaries inclusive. Values that cannot be
// classified are dropped silently; duplicates are kept because downstream
// only needs min/max per half. Returns sorted minute-of-day values.
func matchLogs(logs []timeclock.RawLog, target timeparse.DateKey, fromMinute, toMinute int) []int {
	var matched []int
	for _, log := range logs {
		key, ok := timeparse.ExtractDateKey(log.Checktime)
		if !ok || key != target {
			continue
		}
		minute, ok := timeparse.ExtractMinuteOfDay(log.Checktime)
		if !ok {
			continue
		}
		if minute < fromMinute || minute > toMinute {
			continue
		}
		matched = append(matched, minute)
	}
	sort.Ints(matched)
	return matched
}

type segments struct {
	amFrom, amTo *int
	pmFrom, pmTo *int
}

// segment partitions matched minutes at noon and takes the earliest and
// latest of each half. A half with no logs keeps nil bounds.
func segment(minutes []int) segments {
	var s segments
	for _, m := range minutes {
		m := m
		if m < noonMinute {
			if s.amFrom == nil || m < *s.amFrom {
				s.amFrom = &m
			}
			if s.amTo == nil || m > *s.amTo {
				s.amTo = &m
			}
		} else {
			if s.pmFrom == nil || m < *s.pmFrom {
				s.pmFrom = &m
			}
			if s.pmTo == nil || m > *s.pmTo {
				s.pmTo = &m
			}
		}
	}
	return s
}

// renderedHours converts the segment spans to decimal hours. A negative
// span means the half wrapped past midnight (device clock skew or a
// genuinely overnight shift), so a day is added back. The result is never
// negative.
func renderedHours(s segments) float64 {
	total := 0
	for _, half := range [][2]*int{{s.amFrom, s.amTo}, {s.pmFrom, s.pmTo}} {
		from, to := half[0], half[1]
		if from == nil || to == nil {
			continue
		}
		diff := *to - *from
		if diff < 0 {
			diff += minutesPerDay
		}
		if diff > 0 {
			total += diff
		}
	}
	return float64(total) / 60
}

// computeWindow runs the full reconciliation pipeline for one date entry:
// normalize the permitted window, match the raw logs against date and
// window, split at noon, and price the spans in decimal hours. An
// unparseable date or window yields the empty result — the window is a
// precondition for any match.
func computeWindow(logs []timeclock.RawLog, date string, windowFrom, windowTo *string) overtime.ComputedWindow {
	if windowFrom == nil || windowTo == nil {
		return overtime.ComputedWindow{}
	}
	fromMinute, okFrom := timeparse.ExtractMinuteOfDay(*windowFrom)
	toMinute, okTo := timeparse.ExtractMinuteOfDay(*windowTo)
	if !okFrom || !okTo {
		return overtime.ComputedWindow{}
	}
	target, ok := timeparse.ExtractDateKey(date)
	if !ok {
		return overtime.ComputedWindow{}
	}

	matched := matchLogs(logs, target, fromMinute, toMinute)
	if len(matched) == 0 {
		return overtime.ComputedWindow{}
	}

	s := segment(matched)
	return overtime.ComputedWindow{
		AmFrom:        s.amFrom,
		AmTo:          s.amTo,
		PmFrom:        s.pmFrom,
		PmTo:          s.pmTo,
		RenderedHours: renderedHours(s),
	}
}

// windowResponse renders a computed window with "HH:MM" labels for the
// handler layer.
func windowResponse(w overtime.ComputedWindow) *overtime.ComputedWindowResponse {
	label := func(m *int) *string {
		if m == nil {
			return nil
		}
		s := timeparse.MinuteLabel(*m)
		return &s
	}
	return &overtime.ComputedWindowResponse{
		AmFrom:        label(w.AmFrom),
		AmTo:          label(w.AmTo),
		PmFrom:        label(w.PmFrom),
		PmTo:          label(w.PmTo),
		RenderedHours: w.RenderedHours,
	}
}
