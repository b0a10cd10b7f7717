package overtime

import (
	"context"
)

// OvertimeService defines business logic for overtime transactions and the
// rendered-hours reconciliation over biometric logs.
type OvertimeService interface {
	// CreatePermission creates a transaction with its date rows and a
	// generated OT number.
	CreatePermission(ctx context.Context, req CreatePermissionRequest) (PermissionResponse, error)

	// GetPermission retrieves one transaction with its date rows.
	GetPermission(ctx context.Context, id string) (PermissionResponse, error)

	// ListPermissions retrieves transactions matching the filter.
	ListPermissions(ctx context.Context, filter ListFilter) ([]PermissionResponse, error)

	// UpdatePermission updates header fields and optionally replaces the
	// date rows.
	UpdatePermission(ctx context.Context, req UpdatePermissionRequest) (PermissionResponse, error)

	// SetStatus advances the approval status.
	SetStatus(ctx context.Context, req SetStatusRequest) error

	// DeletePermission removes a transaction and its date rows.
	DeletePermission(ctx context.Context, id string) error

	// ListDateEntries retrieves date rows, each annotated with any pending
	// computed window held in memory.
	ListDateEntries(ctx context.Context, filter DateEntryFilter) ([]DateEntryResponse, error)

	// UpdateDateEntry manually edits a date row.
	UpdateDateEntry(ctx context.Context, req UpdateDateEntryRequest) error

	// ComputeEntry reconciles one date row against the employee's raw logs
	// and, when any log matches, holds the result as pending state.
	ComputeEntry(ctx context.Context, entryID string) (ComputeOutcome, error)

	// ComputeAll reconciles every date row matching the filter, row errors
	// suppressed into the aggregate tally.
	ComputeAll(ctx context.Context, filter DateEntryFilter) (BatchSummary, error)

	// SaveEntry persists one pending window into its date row.
	SaveEntry(ctx context.Context, entryID string) error

	// SaveAll persists every pending window, each row independently; rows
	// that fail keep their pending state for retry.
	SaveAll(ctx context.Context) (BatchSummary, error)

	// DiscardPending drops a pending window without persisting it.
	DiscardPending(entryID string) error

	// RawLogs returns the (cached) raw attendance logs for an employee and
	// calendar date.
	RawLogs(ctx context.Context, employeeID string, date string) ([]RawLogResponse, error)
}
