package overtime

import (
	"testing"

	"github.com/danny20232023/hris-sub003/internal/domain/overtime"
	"github.com/danny20232023/hris-sub003/internal/domain/timeclock"
	"github.com/danny20232023/hris-sub003/internal/pkg/timeparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func rawLogs(employeeID string, checktimes ...string) []timeclock.RawLog {
	logs := make([]timeclock.RawLog, 0, len(checktimes))
	for i, ct := range checktimes {
		logs = append(logs, timeclock.RawLog{
			ID:         int64(i + 1),
			EmployeeID: employeeID,
			Checktime:  ct,
		})
	}
	return logs
}

func TestMatchLogs_InclusiveBoundaries(t *testing.T) {
	target := timeparse.DateKey{Year: 2025, Month: 11, Day: 27}
	logs := rawLogs("EMP-001",
		"2025-11-27T06:59:00Z", // one minute below
		"2025-11-27T07:00:00Z", // exactly the lower bound
		"2025-11-27T18:00:00Z", // exactly the upper bound
		"2025-11-27T18:01:00Z", // one minute above
	)

	matched := matchLogs(logs, target, 7*60, 18*60)
	assert.Equal(t, []int{7 * 60, 18 * 60}, matched)
}

func TestMatchLogs_FiltersOtherDates(t *testing.T) {
	target := timeparse.DateKey{Year: 2025, Month: 11, Day: 27}
	logs := rawLogs("EMP-001",
		"2025-11-26T10:00:00Z",
		"2025-11-27T10:00:00Z",
		"2025-11-28T10:00:00Z",
	)

	matched := matchLogs(logs, target, 0, 1439)
	assert.Equal(t, []int{600}, matched)
}

func TestMatchLogs_DropsUnparseableKeepsDuplicates(t *testing.T) {
	target := timeparse.DateKey{Year: 2025, Month: 11, Day: 27}
	logs := rawLogs("EMP-001",
		"2025-11-27T10:00:00Z",
		"2025-11-27T10:00:00Z", // duplicate punch, kept
		"garbage",
	)

	matched := matchLogs(logs, target, 0, 1439)
	assert.Equal(t, []int{600, 600}, matched)
}

func TestSegment_NoonBoundary(t *testing.T) {
	// 11:59 is the last morning minute; 12:00 sharp belongs to the afternoon.
	s := segment([]int{719, 720})

	require.NotNil(t, s.amFrom)
	require.NotNil(t, s.pmFrom)
	assert.Equal(t, 719, *s.amFrom)
	assert.Equal(t, 719, *s.amTo)
	assert.Equal(t, 720, *s.pmFrom)
	assert.Equal(t, 720, *s.pmTo)
}

func TestSegment_MinMaxPerHalf(t *testing.T) {
	s := segment([]int{478, 500, 490, 721, 1022, 785})

	assert.Equal(t, 478, *s.amFrom)
	assert.Equal(t, 500, *s.amTo)
	assert.Equal(t, 721, *s.pmFrom)
	assert.Equal(t, 1022, *s.pmTo)
}

func TestSegment_OneHalfOnly(t *testing.T) {
	s := segment([]int{478})

	require.NotNil(t, s.amFrom)
	assert.Equal(t, 478, *s.amFrom)
	assert.Equal(t, 478, *s.amTo)
	assert.Nil(t, s.pmFrom)
	assert.Nil(t, s.pmTo)
}

func TestRenderedHours(t *testing.T) {
	tests := []struct {
		name string
		s    segments
		want float64
	}{
		{
			name: "single punch per half contributes zero",
			s:    segments{amFrom: intPtr(478), amTo: intPtr(478)},
			want: 0,
		},
		{
			name: "both halves accumulate",
			s: segments{
				amFrom: intPtr(8 * 60), amTo: intPtr(11 * 60),
				pmFrom: intPtr(13 * 60), pmTo: intPtr(17 * 60),
			},
			want: 7,
		},
		{
			name: "negative span rolls over midnight",
			s:    segments{pmFrom: intPtr(23 * 60), pmTo: intPtr(60)},
			want: 2,
		},
		{
			name: "empty",
			s:    segments{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, renderedHours(tt.s), 1e-9)
		})
	}
}

func TestComputeWindow_FullDay(t *testing.T) {
	logs := rawLogs("EMP-001",
		"2025-11-27T07:58:00Z",
		"2025-11-27T12:01:00Z",
		"2025-11-27T13:05:00Z",
		"2025-11-27T17:02:00Z",
	)

	w := computeWindow(logs, "2025-11-27", strPtr("07:00:00"), strPtr("18:00:00"))

	require.False(t, w.Empty())
	assert.Equal(t, 478, *w.AmFrom) // 07:58
	assert.Equal(t, 478, *w.AmTo)
	assert.Equal(t, 721, *w.PmFrom) // 12:01
	assert.Equal(t, 1022, *w.PmTo)  // 17:02
	assert.InDelta(t, 301.0/60, w.RenderedHours, 1e-9)
}

func TestComputeWindow_NothingInWindow(t *testing.T) {
	// Punches exist but all fall before the permitted window opens.
	logs := rawLogs("EMP-001",
		"2025-11-27T06:00:00Z",
		"2025-11-27T06:00:30Z",
		"2025-11-27T06:01:00Z",
	)

	w := computeWindow(logs, "2025-11-27", strPtr("08:00:00"), strPtr("17:00:00"))

	assert.True(t, w.Empty())
	assert.Zero(t, w.RenderedHours)
}

func TestComputeWindow_ZoneSuffixIgnored(t *testing.T) {
	// Identical wall-clock digits must land on identical minutes no matter
	// what zone marker the device appended.
	variants := [][]string{
		{"2025-11-27T07:58:00Z", "2025-11-27T17:02:00Z"},
		{"2025-11-27T07:58:00+08:00", "2025-11-27T17:02:00+08:00"},
		{"2025-11-27T07:58:00-05:00", "2025-11-27T17:02:00-05:00"},
		{"2025-11-27 07:58:00", "2025-11-27 17:02:00"},
	}

	for _, pair := range variants {
		w := computeWindow(rawLogs("EMP-001", pair...), "2025-11-27", strPtr("07:00:00"), strPtr("18:00:00"))
		require.False(t, w.Empty(), "variant %v", pair)
		assert.Equal(t, 478, *w.AmFrom, "variant %v", pair)
		assert.Equal(t, 1022, *w.PmTo, "variant %v", pair)
	}
}

func TestComputeWindow_MissingWindow(t *testing.T) {
	logs := rawLogs("EMP-001", "2025-11-27T10:00:00Z")

	assert.True(t, computeWindow(logs, "2025-11-27", nil, strPtr("18:00:00")).Empty())
	assert.True(t, computeWindow(logs, "2025-11-27", strPtr("07:00:00"), nil).Empty())
	assert.True(t, computeWindow(logs, "not-a-date", strPtr("07:00:00"), strPtr("18:00:00")).Empty())
}

func TestWindowResponse_Labels(t *testing.T) {
	resp := windowResponse(overtime.ComputedWindow{
		AmFrom:        intPtr(478),
		AmTo:          intPtr(478),
		PmFrom:        intPtr(721),
		PmTo:          intPtr(1022),
		RenderedHours: 301.0 / 60,
	})

	assert.Equal(t, "07:58", *resp.AmFrom)
	assert.Equal(t, "12:01", *resp.PmFrom)
	assert.Equal(t, "17:02", *resp.PmTo)
	assert.InDelta(t, 301.0/60, resp.RenderedHours, 1e-9)
}
