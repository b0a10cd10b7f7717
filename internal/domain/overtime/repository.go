package overtime

import (
	"context"
)

// OvertimeRepository defines data access for overtime transactions and
// their per-employee-per-date rows in the HR store.
type OvertimeRepository interface {
	// CreatePermission inserts a header and its date rows in one transaction.
	CreatePermission(ctx context.Context, p Permission) (Permission, error)

	// GetPermission retrieves a header together with its date rows.
	GetPermission(ctx context.Context, id string) (Permission, error)

	// ListPermissions retrieves headers (with date rows) matching the filter.
	ListPermissions(ctx context.Context, filter ListFilter) ([]Permission, error)

	// UpdatePermission updates header fields; when p.Dates is non-nil the
	// existing date rows are replaced in the same transaction.
	UpdatePermission(ctx context.Context, p Permission, replaceDates bool) error

	// SetStatus advances the approval status, stamping approver columns
	// when the new status is Approved.
	SetStatus(ctx context.Context, id string, status string, actor *string) error

	// DeletePermission removes a header and its date rows.
	DeletePermission(ctx context.Context, id string) error

	// CountIssuedOn counts transactions issued on a calendar day, used for
	// OT number generation.
	CountIssuedOn(ctx context.Context, day string) (int, error)

	// ListDateEntries retrieves date rows joined with their header's
	// window and status.
	ListDateEntries(ctx context.Context, filter DateEntryFilter) ([]DateEntry, error)

	// GetDateEntry retrieves one date row joined with its header fields.
	GetDateEntry(ctx context.Context, id string) (DateEntry, error)

	// UpdateDateEntry updates a date row's mutable fields.
	UpdateDateEntry(ctx context.Context, e DateEntry) error

	// SaveRenderedTimes replaces the four rendered time fields and the
	// rendering status atomically. A nil field clears the column.
	SaveRenderedTimes(ctx context.Context, id string, amFrom, amTo, pmFrom, pmTo *string, status string, actor *string) error
}
