package postgresql

import (
	"context"
	"fmt"

	"github.com/danny20232023/hris-sub003/internal/domain/timeclock"
	"github.com/danny20232023/hris-sub003/internal/pkg/database"
	"github.com/danny20232023/hris-sub003/internal/pkg/timeparse"
)

type rawLogRepository struct {
	db *database.DB
}

// ListForDate implements timeclock.RawLogRepository. The checktime column
// holds whatever text the capture device produced, so the date filter
// compares the leading "YYYY-MM-DD" segment of the stored text. No zone
// conversion happens in the database.
func (r *rawLogRepository) ListForDate(ctx context.Context, employeeID string, date timeparse.DateKey) ([]timeclock.RawLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, checktime, device_sn, captured_at
		FROM attendance_logs
		WHERE employee_id = $1
		  AND left(checktime, 10) = $2
		ORDER BY checktime, id
	`

	rows, err := q.Query(ctx, query, employeeID, date.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance logs: %w", err)
	}
	defer rows.Close()

	var logs []timeclock.RawLog
	for rows.Next() {
		var log timeclock.RawLog
		if err := rows.Scan(&log.ID, &log.EmployeeID, &log.Checktime, &log.DeviceSN, &log.CapturedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance log: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance logs: %w", err)
	}

	return logs, nil
}

func NewRawLogRepository(db *database.DB) timeclock.RawLogRepository {
	return &rawLogRepository{db: db}
}
