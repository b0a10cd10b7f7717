package overtime

import "time"

// Permission (transaction) statuses.
const (
	StatusForApproval = "For Approval"
	StatusApproved    = "Approved"
	StatusReturned    = "Returned"
	StatusCancelled   = "Cancelled"
)

// Date entry rendering statuses.
const (
	DateStatusNotRendered = "Not Rendered"
	DateStatusRendered    = "Rendered"
	DateStatusApproved    = "Approved"
	DateStatusReturned    = "Returned"
	DateStatusCancelled   = "Cancelled"
)

// Permission is a supervisor-approved overtime authorization: a permitted
// clock-in/out window plus one date entry per (employee, calendar date)
// pair. Once approved it is immutable except through the approval toggles
// and TotalRendered, which is derived from the rendered entries every time
// one of them is saved.
type Permission struct {
	ID            string
	OTNo          string
	Details       *string
	DateIssued    time.Time
	WindowFrom    *string // "HH:MM:SS", literal wall-clock time-of-day
	WindowTo      *string
	TotalRendered *float64
	Remarks       *string
	Status        string
	CreatedBy     *string
	CreatedAt     time.Time
	UpdatedBy     *string
	UpdatedAt     *time.Time
	ApprovedBy    *string
	ApprovedAt    *time.Time

	Dates []DateEntry
}

// DateEntry is one overtime date for one employee under a permission.
// Date is the calendar date as "YYYY-MM-DD" — a key, not an instant, so it
// is carried as a string end to end. The four rendered fields are the only
// fields the reconciliation core ever writes; when present they are
// times-of-day on the entry's own calendar date.
type DateEntry struct {
	ID           string
	PermissionID string
	EmployeeID   string
	OTType       *string
	Date         string
	AmFrom       *string // "HH:MM:SS"
	AmTo         *string
	PmFrom       *string
	PmTo         *string
	Status       string
	UpdatedBy    *string
	UpdatedAt    *time.Time

	// Read-only header fields joined in by list queries so the
	// orchestrator can compute a row without re-fetching the permission.
	OTNo             string
	WindowFrom       *string
	WindowTo         *string
	PermissionStatus string
}

// ComputedWindow is the in-memory result of one reconciliation run for one
// date entry: matched attendance split at noon, minute-of-day per bound.
// It lives as pending state until an explicit save persists it into the
// entry's rendered fields, and is discarded without trace otherwise.
type ComputedWindow struct {
	AmFrom        *int
	AmTo          *int
	PmFrom        *int
	PmTo          *int
	RenderedHours float64
}

// Empty reports whether no log matched: all bounds absent. Callers use
// this to distinguish "nothing in window" from a genuine zero-hour result
// computed from equal from/to pairs.
func (w ComputedWindow) Empty() bool {
	return w.AmFrom == nil && w.AmTo == nil && w.PmFrom == nil && w.PmTo == nil
}
