package timeclock

import (
	"context"

	"github.com/danny20232023/hris-sub003/internal/pkg/timeparse"
)

// RawLogRepository reads captured attendance timestamps from the biometric
// log store. An empty result is a valid answer (the employee produced no
// logs that day) and is distinct from an error.
type RawLogRepository interface {
	// ListForDate returns all logs whose literal date segment equals the
	// given calendar date, ordered by checktime ascending.
	ListForDate(ctx context.Context, employeeID string, date timeparse.DateKey) ([]RawLog, error)
}
