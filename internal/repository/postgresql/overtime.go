package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/danny20232023/hris-sub003/internal/domain/overtime"
	"github.com/danny20232023/hris-sub003/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type overtimeRepository struct {
	db *database.DB
}

const dateEntryColumns = `
		d.id, d.overtime_id, d.employee_id, d.ot_type,
		to_char(d.ot_date, 'YYYY-MM-DD'),
		d.am_from::text, d.am_to::text, d.pm_from::text, d.pm_to::text,
		d.status, d.updated_by, d.updated_at,
		o.otno, o.window_from::text, o.window_to::text, o.status
`

func scanDateEntry(row pgx.Row) (overtime.DateEntry, error) {
	var e overtime.DateEntry
	err := row.Scan(
		&e.ID, &e.PermissionID, &e.EmployeeID, &e.OTType,
		&e.Date,
		&e.AmFrom, &e.AmTo, &e.PmFrom, &e.PmTo,
		&e.Status, &e.UpdatedBy, &e.UpdatedAt,
		&e.OTNo, &e.WindowFrom, &e.WindowTo, &e.PermissionStatus,
	)
	return e, err
}

// CreatePermission implements overtime.OvertimeRepository.
func (o *overtimeRepository) CreatePermission(ctx context.Context, p overtime.Permission) (overtime.Permission, error) {
	err := WithTransaction(ctx, o.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		q := GetQuerier(txCtx, o.db)

		query := `
			INSERT INTO employee_overtimes (
				id, otno, details, date_issued, window_from, window_to,
				remarks, status, created_by
			) VALUES ($1, $2, $3, $4::date, $5::time, $6::time, $7, $8, $9)
			RETURNING created_at
		`
		err := q.QueryRow(txCtx, query,
			p.ID, p.OTNo, p.Details, p.DateIssued.Format("2006-01-02"),
			p.WindowFrom, p.WindowTo, p.Remarks, p.Status, p.CreatedBy,
		).Scan(&p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert overtime transaction: %w", err)
		}

		for i := range p.Dates {
			if err := insertDateEntry(txCtx, q, p.Dates[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return overtime.Permission{}, err
	}
	return p, nil
}

func insertDateEntry(ctx context.Context, q database.Querier, e overtime.DateEntry) error {
	query := `
		INSERT INTO employee_overtimes_dates (
			id, overtime_id, employee_id, ot_type, ot_date, status, updated_by
		) VALUES ($1, $2, $3, $4, $5::date, $6, $7)
	`
	_, err := q.Exec(ctx, query,
		e.ID, e.PermissionID, e.EmployeeID, e.OTType, e.Date, e.Status, e.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert overtime date: %w", err)
	}
	return nil
}

// GetPermission implements overtime.OvertimeRepository.
func (o *overtimeRepository) GetPermission(ctx context.Context, id string) (overtime.Permission, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT id, otno, details, date_issued, window_from::text, window_to::text,
			   total_rendered, remarks, status,
			   created_by, created_at, updated_by, updated_at, approved_by, approved_at
		FROM employee_overtimes
		WHERE id = $1
	`

	var p overtime.Permission
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.OTNo, &p.Details, &p.DateIssued, &p.WindowFrom, &p.WindowTo,
		&p.TotalRendered, &p.Remarks, &p.Status,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedBy, &p.UpdatedAt, &p.ApprovedBy, &p.ApprovedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.Permission{}, overtime.ErrPermissionNotFound
		}
		return overtime.Permission{}, fmt.Errorf("failed to get overtime transaction: %w", err)
	}

	p.Dates, err = o.ListDateEntries(ctx, overtime.DateEntryFilter{PermissionID: &id})
	if err != nil {
		return overtime.Permission{}, err
	}

	return p, nil
}

// ListPermissions implements overtime.OvertimeRepository.
func (o *overtimeRepository) ListPermissions(ctx context.Context, filter overtime.ListFilter) ([]overtime.Permission, error) {
	q := GetQuerier(ctx, o.db)

	var sb strings.Builder
	sb.WriteString(`
		SELECT DISTINCT o.id, o.otno, o.details, o.date_issued,
			   o.window_from::text, o.window_to::text,
			   o.total_rendered, o.remarks, o.status,
			   o.created_by, o.created_at, o.updated_by, o.updated_at,
			   o.approved_by, o.approved_at
		FROM employee_overtimes o
	`)
	if filter.EmployeeID != nil {
		sb.WriteString(" JOIN employee_overtimes_dates d ON d.overtime_id = o.id")
	}
	sb.WriteString(" WHERE 1=1")

	var args []interface{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		fmt.Fprintf(&sb, " AND o.status = $%d", len(args))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		fmt.Fprintf(&sb, " AND d.employee_id = $%d", len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		fmt.Fprintf(&sb, " AND o.date_issued >= $%d::date", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		fmt.Fprintf(&sb, " AND o.date_issued <= $%d::date", len(args))
	}
	sb.WriteString(" ORDER BY o.date_issued DESC, o.otno DESC")

	rows, err := q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime transactions: %w", err)
	}
	defer rows.Close()

	var permissions []overtime.Permission
	for rows.Next() {
		var p overtime.Permission
		err := rows.Scan(
			&p.ID, &p.OTNo, &p.Details, &p.DateIssued, &p.WindowFrom, &p.WindowTo,
			&p.TotalRendered, &p.Remarks, &p.Status,
			&p.CreatedBy, &p.CreatedAt, &p.UpdatedBy, &p.UpdatedAt,
			&p.ApprovedBy, &p.ApprovedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime transaction: %w", err)
		}
		permissions = append(permissions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read overtime transactions: %w", err)
	}

	for i := range permissions {
		id := permissions[i].ID
		permissions[i].Dates, err = o.ListDateEntries(ctx, overtime.DateEntryFilter{PermissionID: &id})
		if err != nil {
			return nil, err
		}
	}

	return permissions, nil
}

// UpdatePermission implements overtime.OvertimeRepository.
func (o *overtimeRepository) UpdatePermission(ctx context.Context, p overtime.Permission, replaceDates bool) error {
	return WithTransaction(ctx, o.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		q := GetQuerier(txCtx, o.db)

		query := `
			UPDATE employee_overtimes
			SET details = $2, date_issued = $3::date,
				window_from = $4::time, window_to = $5::time,
				remarks = $6, updated_by = $7, updated_at = now()
			WHERE id = $1
		`
		tag, err := q.Exec(txCtx, query,
			p.ID, p.Details, p.DateIssued.Format("2006-01-02"),
			p.WindowFrom, p.WindowTo, p.Remarks, p.UpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to update overtime transaction: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return overtime.ErrPermissionNotFound
		}

		if !replaceDates {
			return nil
		}

		if _, err := q.Exec(txCtx, `DELETE FROM employee_overtimes_dates WHERE overtime_id = $1`, p.ID); err != nil {
			return fmt.Errorf("failed to clear overtime dates: %w", err)
		}
		for i := range p.Dates {
			if err := insertDateEntry(txCtx, q, p.Dates[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetStatus implements overtime.OvertimeRepository.
func (o *overtimeRepository) SetStatus(ctx context.Context, id string, status string, actor *string) error {
	q := GetQuerier(ctx, o.db)

	var query string
	if status == overtime.StatusApproved {
		query = `
			UPDATE employee_overtimes
			SET status = $2, approved_by = $3, approved_at = now(),
				updated_by = $3, updated_at = now()
			WHERE id = $1
		`
	} else {
		query = `
			UPDATE employee_overtimes
			SET status = $2, updated_by = $3, updated_at = now()
			WHERE id = $1
		`
	}

	tag, err := q.Exec(ctx, query, id, status, actor)
	if err != nil {
		return fmt.Errorf("failed to set overtime status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return overtime.ErrPermissionNotFound
	}
	return nil
}

// DeletePermission implements overtime.OvertimeRepository.
func (o *overtimeRepository) DeletePermission(ctx context.Context, id string) error {
	return WithTransaction(ctx, o.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		q := GetQuerier(txCtx, o.db)

		if _, err := q.Exec(txCtx, `DELETE FROM employee_overtimes_dates WHERE overtime_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete overtime dates: %w", err)
		}

		tag, err := q.Exec(txCtx, `DELETE FROM employee_overtimes WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete overtime transaction: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return overtime.ErrPermissionNotFound
		}
		return nil
	})
}

// CountIssuedOn implements overtime.OvertimeRepository.
func (o *overtimeRepository) CountIssuedOn(ctx context.Context, day string) (int, error) {
	q := GetQuerier(ctx, o.db)

	var count int
	err := q.QueryRow(ctx, `SELECT count(*) FROM employee_overtimes WHERE date_issued = $1::date`, day).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count overtime transactions: %w", err)
	}
	return count, nil
}

// ListDateEntries implements overtime.OvertimeRepository.
func (o *overtimeRepository) ListDateEntries(ctx context.Context, filter overtime.DateEntryFilter) ([]overtime.DateEntry, error) {
	q := GetQuerier(ctx, o.db)

	var sb strings.Builder
	sb.WriteString("SELECT " + dateEntryColumns + `
		FROM employee_overtimes_dates d
		JOIN employee_overtimes o ON o.id = d.overtime_id
		WHERE 1=1
	`)

	var args []interface{}
	if filter.PermissionID != nil {
		args = append(args, *filter.PermissionID)
		fmt.Fprintf(&sb, " AND d.overtime_id = $%d", len(args))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		fmt.Fprintf(&sb, " AND d.employee_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		fmt.Fprintf(&sb, " AND d.status = $%d", len(args))
	}
	if filter.PermissionStatus != nil {
		args = append(args, *filter.PermissionStatus)
		fmt.Fprintf(&sb, " AND o.status = $%d", len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		fmt.Fprintf(&sb, " AND d.ot_date >= $%d::date", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		fmt.Fprintf(&sb, " AND d.ot_date <= $%d::date", len(args))
	}
	sb.WriteString(" ORDER BY d.ot_date, d.employee_id")

	rows, err := q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime dates: %w", err)
	}
	defer rows.Close()

	var entries []overtime.DateEntry
	for rows.Next() {
		e, err := scanDateEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime date: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read overtime dates: %w", err)
	}

	return entries, nil
}

// GetDateEntry implements overtime.OvertimeRepository.
func (o *overtimeRepository) GetDateEntry(ctx context.Context, id string) (overtime.DateEntry, error) {
	q := GetQuerier(ctx, o.db)

	query := "SELECT " + dateEntryColumns + `
		FROM employee_overtimes_dates d
		JOIN employee_overtimes o ON o.id = d.overtime_id
		WHERE d.id = $1
	`

	e, err := scanDateEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.DateEntry{}, overtime.ErrDateEntryNotFound
		}
		return overtime.DateEntry{}, fmt.Errorf("failed to get overtime date: %w", err)
	}
	return e, nil
}

// UpdateDateEntry implements overtime.OvertimeRepository.
func (o *overtimeRepository) UpdateDateEntry(ctx context.Context, e overtime.DateEntry) error {
	q := GetQuerier(ctx, o.db)

	query := `
		UPDATE employee_overtimes_dates
		SET ot_type = $2,
			am_from = $3::time, am_to = $4::time,
			pm_from = $5::time, pm_to = $6::time,
			status = $7, updated_by = $8, updated_at = now()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		e.ID, e.OTType, e.AmFrom, e.AmTo, e.PmFrom, e.PmTo, e.Status, e.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update overtime date: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return overtime.ErrDateEntryNotFound
	}
	return nil
}

// SaveRenderedTimes implements overtime.OvertimeRepository. Alongside the
// date entry it refreshes the header's total_rendered with the sum of hours
// over the transaction's rendered entries, so the header total always agrees
// with what has actually been saved.
func (o *overtimeRepository) SaveRenderedTimes(ctx context.Context, id string, amFrom, amTo, pmFrom, pmTo *string, status string, actor *string) error {
	return WithTransaction(ctx, o.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		q := GetQuerier(txCtx, o.db)

		query := `
			UPDATE employee_overtimes_dates
			SET am_from = $2::time, am_to = $3::time,
				pm_from = $4::time, pm_to = $5::time,
				status = $6, updated_by = $7, updated_at = now()
			WHERE id = $1
		`

		tag, err := q.Exec(txCtx, query, id, amFrom, amTo, pmFrom, pmTo, status, actor)
		if err != nil {
			return fmt.Errorf("failed to save rendered times: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return overtime.ErrDateEntryNotFound
		}

		// Spans ending past midnight wrap, so each half is measured
		// modulo a day. A half with equal bounds contributes zero.
		totalQuery := `
			UPDATE employee_overtimes
			SET total_rendered = (
				SELECT round(COALESCE(SUM(
					CASE WHEN d.am_from IS NOT NULL AND d.am_to IS NOT NULL
						THEN mod(86400 + extract(epoch FROM d.am_to)::bigint - extract(epoch FROM d.am_from)::bigint, 86400)
						ELSE 0 END
					+ CASE WHEN d.pm_from IS NOT NULL AND d.pm_to IS NOT NULL
						THEN mod(86400 + extract(epoch FROM d.pm_to)::bigint - extract(epoch FROM d.pm_from)::bigint, 86400)
						ELSE 0 END
				), 0) / 3600.0, 2)
				FROM employee_overtimes_dates d
				WHERE d.overtime_id = employee_overtimes.id AND d.status = $2
			), updated_by = $3, updated_at = now()
			WHERE id = (SELECT overtime_id FROM employee_overtimes_dates WHERE id = $1)
		`

		if _, err := q.Exec(txCtx, totalQuery, id, overtime.DateStatusRendered, actor); err != nil {
			return fmt.Errorf("failed to refresh total rendered hours: %w", err)
		}
		return nil
	})
}

func NewOvertimeRepository(db *database.DB) overtime.OvertimeRepository {
	return &overtimeRepository{db: db}
}
