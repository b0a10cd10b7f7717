package timeclock

import "time"

// RawLog is a single attendance timestamp as captured by a biometric
// device. Checktime is stored verbatim in whatever shape the capture
// bridge produced: a zoned ISO timestamp, a space-separated datetime, or a
// bare time-of-day. The reconciliation core classifies these values; it
// never rewrites them.
type RawLog struct {
	ID         int64
	EmployeeID string
	Checktime  string
	DeviceSN   *string
	CapturedAt time.Time
}
