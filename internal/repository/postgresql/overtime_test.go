package postgresql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danny20232023/hris-sub003/internal/domain/overtime"
	"github.com/danny20232023/hris-sub003/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*database.DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &database.DB{Pool: mock}, mock
}

func dateEntryRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "overtime_id", "employee_id", "ot_type",
		"ot_date",
		"am_from", "am_to", "pm_from", "pm_to",
		"status", "updated_by", "updated_at",
		"otno", "window_from", "window_to", "o_status",
	})
}

func strp(s string) *string { return &s }

func TestOvertimeRepository_GetDateEntry(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOvertimeRepository(db)

	mock.ExpectQuery("FROM employee_overtimes_dates d").
		WithArgs("entry-1").
		WillReturnRows(dateEntryRows().AddRow(
			"entry-1", "perm-1", "EMP-001", nil,
			"2025-11-27",
			nil, nil, nil, nil,
			overtime.DateStatusNotRendered, nil, nil,
			"20251127OT-001", strp("07:00:00"), strp("18:00:00"), overtime.StatusApproved,
		))

	e, err := repo.GetDateEntry(context.Background(), "entry-1")

	require.NoError(t, err)
	assert.Equal(t, "entry-1", e.ID)
	assert.Equal(t, "2025-11-27", e.Date)
	assert.Equal(t, "20251127OT-001", e.OTNo)
	assert.Equal(t, "07:00:00", *e.WindowFrom)
	assert.Equal(t, overtime.StatusApproved, e.PermissionStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOvertimeRepository_GetDateEntry_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOvertimeRepository(db)

	mock.ExpectQuery("FROM employee_overtimes_dates d").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetDateEntry(context.Background(), "missing")

	assert.ErrorIs(t, err, overtime.ErrDateEntryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOvertimeRepository_ListDateEntries_Filters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOvertimeRepository(db)

	mock.ExpectQuery("FROM employee_overtimes_dates d").
		WithArgs("EMP-001", overtime.StatusApproved).
		WillReturnRows(dateEntryRows().AddRow(
			"entry-1", "perm-1", "EMP-001", nil,
			"2025-11-27",
			nil, nil, nil, nil,
			overtime.DateStatusNotRendered, nil, nil,
			"20251127OT-001", strp("07:00:00"), strp("18:00:00"), overtime.StatusApproved,
		))

	approved := overtime.StatusApproved
	emp := "EMP-001"
	entries, err := repo.ListDateEntries(context.Background(), overtime.DateEntryFilter{
		EmployeeID:       &emp,
		PermissionStatus: &approved,
	})

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "EMP-001", entries[0].EmployeeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOvertimeRepository_SaveRenderedTimes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOvertimeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE employee_overtimes_dates").
		WithArgs("entry-1", strp("07:58:00"), strp("07:58:00"), strp("12:01:00"), strp("17:02:00"), overtime.DateStatusRendered, strp("user-1")).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("SET total_rendered").
		WithArgs("entry-1", overtime.DateStatusRendered, strp("user-1")).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := repo.SaveRenderedTimes(context.Background(), "entry-1",
		strp("07:58:00"), strp("07:58:00"), strp("12:01:00"), strp("17:02:00"),
		overtime.DateStatusRendered, strp("user-1"),
	)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOvertimeRepository_SaveRenderedTimes_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOvertimeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE employee_overtimes_dates").
		WithArgs("missing", (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), overtime.DateStatusRendered, (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := repo.SaveRenderedTimes(context.Background(), "missing", nil, nil, nil, nil, overtime.DateStatusRendered, nil)

	assert.ErrorIs(t, err, overtime.ErrDateEntryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOvertimeRepository_CountIssuedOn(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOvertimeRepository(db)

	mock.ExpectQuery("SELECT count").
		WithArgs("2025-11-27").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountIssuedOn(context.Background(), "2025-11-27")

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOvertimeRepository_SetStatus_ApprovedStampsApprover(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOvertimeRepository(db)

	mock.ExpectExec("approved_by").
		WithArgs("perm-1", overtime.StatusApproved, strp("user-1")).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.SetStatus(context.Background(), "perm-1", overtime.StatusApproved, strp("user-1"))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOvertimeRepository_SetStatus_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOvertimeRepository(db)

	mock.ExpectExec("UPDATE employee_overtimes").
		WithArgs("missing", overtime.StatusReturned, (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SetStatus(context.Background(), "missing", overtime.StatusReturned, nil)

	assert.ErrorIs(t, err, overtime.ErrPermissionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOvertimeRepository_CreatePermission(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOvertimeRepository(db)

	p := overtime.Permission{
		ID:         "perm-1",
		OTNo:       "20251127OT-001",
		DateIssued: time.Date(2025, 11, 27, 0, 0, 0, 0, time.UTC),
		WindowFrom: strp("07:00:00"),
		WindowTo:   strp("18:00:00"),
		Status:     overtime.StatusForApproval,
		Dates: []overtime.DateEntry{
			{ID: "entry-1", PermissionID: "perm-1", EmployeeID: "EMP-001", Date: "2025-11-27", Status: overtime.DateStatusNotRendered},
			{ID: "entry-2", PermissionID: "perm-1", EmployeeID: "EMP-002", Date: "2025-11-27", Status: overtime.DateStatusNotRendered},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO employee_overtimes").
		WithArgs("perm-1", "20251127OT-001", (*string)(nil), "2025-11-27", strp("07:00:00"), strp("18:00:00"), (*string)(nil), overtime.StatusForApproval, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec("INSERT INTO employee_overtimes_dates").
		WithArgs("entry-1", "perm-1", "EMP-001", (*string)(nil), "2025-11-27", overtime.DateStatusNotRendered, (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO employee_overtimes_dates").
		WithArgs("entry-2", "perm-1", "EMP-002", (*string)(nil), "2025-11-27", overtime.DateStatusNotRendered, (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	created, err := repo.CreatePermission(context.Background(), p)

	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOvertimeRepository_CreatePermission_RollsBackOnDateInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOvertimeRepository(db)

	p := overtime.Permission{
		ID:         "perm-1",
		OTNo:       "20251127OT-001",
		DateIssued: time.Date(2025, 11, 27, 0, 0, 0, 0, time.UTC),
		Status:     overtime.StatusForApproval,
		Dates: []overtime.DateEntry{
			{ID: "entry-1", PermissionID: "perm-1", EmployeeID: "EMP-001", Date: "2025-11-27", Status: overtime.DateStatusNotRendered},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO employee_overtimes").
		WithArgs("perm-1", "20251127OT-001", (*string)(nil), "2025-11-27", (*string)(nil), (*string)(nil), (*string)(nil), overtime.StatusForApproval, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec("INSERT INTO employee_overtimes_dates").
		WithArgs("entry-1", "perm-1", "EMP-001", (*string)(nil), "2025-11-27", overtime.DateStatusNotRendered, (*string)(nil)).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	_, err := repo.CreatePermission(context.Background(), p)

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
