package overtime

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/danny20232023/hris-sub003/internal/domain/overtime"
	"github.com/danny20232023/hris-sub003/internal/domain/timeclock"
	"github.com/danny20232023/hris-sub003/internal/pkg/database"
	"github.com/danny20232023/hris-sub003/internal/pkg/timeparse"
	"github.com/danny20232023/hris-sub003/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

// OvertimeServiceImpl reconciles overtime date rows against raw biometric
// logs and manages the transactions they belong to.
//
// It owns two pieces of in-memory state: a raw-log cache keyed by
// (employee, calendar date), additive for the process lifetime, and the
// pending computed windows keyed by date-entry id. A pending window is
// written only by its own entry's compute/save/discard calls; batch
// operations walk a snapshot of rows sequentially, so later rows see the
// cache entries earlier rows populated.
type OvertimeServiceImpl struct {
	db   *database.DB
	repo overtime.OvertimeRepository
	logs timeclock.RawLogRepository

	mu       sync.Mutex
	logCache map[string][]timeclock.RawLog
	pending  map[string]overtime.ComputedWindow
}

func NewOvertimeService(db *database.DB, repo overtime.OvertimeRepository, logs timeclock.RawLogRepository) *OvertimeServiceImpl {
	return &OvertimeServiceImpl{
		db:       db,
		repo:     repo,
		logs:     logs,
		logCache: make(map[string][]timeclock.RawLog),
		pending:  make(map[string]overtime.ComputedWindow),
	}
}

// actorFromContext pulls the acting user id out of the JWT claims, nil
// when the call is unauthenticated (tests, internal jobs).
func actorFromContext(ctx context.Context) *string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil
	}
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		return &userID
	}
	return nil
}

// ensureSeconds normalizes "HH:MM" to the stored "HH:MM:SS" form.
func ensureSeconds(t string) string {
	if len(t) == 5 {
		return t + ":00"
	}
	return t
}

func ensureSecondsPtr(t *string) *string {
	if t == nil || *t == "" {
		return nil
	}
	s := ensureSeconds(*t)
	return &s
}

// ========================================
// TRANSACTION CRUD
// ========================================

// CreatePermission implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) CreatePermission(ctx context.Context, req overtime.CreatePermissionRequest) (overtime.PermissionResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.PermissionResponse{}, err
	}

	actor := actorFromContext(ctx)

	dateIssued := time.Now()
	if req.DateIssued != nil && *req.DateIssued != "" {
		parsed, err := time.Parse("2006-01-02", *req.DateIssued)
		if err != nil {
			return overtime.PermissionResponse{}, fmt.Errorf("failed to parse date_issued: %w", err)
		}
		dateIssued = parsed
	}

	otno, err := s.nextOTNo(ctx, dateIssued)
	if err != nil {
		return overtime.PermissionResponse{}, err
	}

	windowFrom := ensureSeconds(req.WindowFrom)
	windowTo := ensureSeconds(req.WindowTo)
	p := overtime.Permission{
		ID:         uuid.New().String(),
		OTNo:       otno,
		Details:    req.Details,
		DateIssued: dateIssued,
		WindowFrom: &windowFrom,
		WindowTo:   &windowTo,
		Remarks:    req.Remarks,
		Status:     overtime.StatusForApproval,
		CreatedBy:  actor,
	}
	for _, d := range req.Dates {
		p.Dates = append(p.Dates, overtime.DateEntry{
			ID:           uuid.New().String(),
			PermissionID: p.ID,
			EmployeeID:   d.EmployeeID,
			OTType:       d.OTType,
			Date:         d.Date,
			Status:       overtime.DateStatusNotRendered,
			UpdatedBy:    actor,
		})
	}

	created, err := s.repo.CreatePermission(ctx, p)
	if err != nil {
		return overtime.PermissionResponse{}, fmt.Errorf("failed to create overtime transaction: %w", err)
	}

	return s.toPermissionResponse(created), nil
}

// nextOTNo generates "YYYYMMDDOT-NNN", sequenced per issuance day.
func (s *OvertimeServiceImpl) nextOTNo(ctx context.Context, dateIssued time.Time) (string, error) {
	day := dateIssued.Format("2006-01-02")
	count, err := s.repo.CountIssuedOn(ctx, day)
	if err != nil {
		return "", fmt.Errorf("failed to sequence OT number: %w", err)
	}
	return fmt.Sprintf("%sOT-%03d", dateIssued.Format("20060102"), count+1), nil
}

// GetPermission implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) GetPermission(ctx context.Context, id string) (overtime.PermissionResponse, error) {
	p, err := s.repo.GetPermission(ctx, id)
	if err != nil {
		return overtime.PermissionResponse{}, err
	}
	return s.toPermissionResponse(p), nil
}

// ListPermissions implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) ListPermissions(ctx context.Context, filter overtime.ListFilter) ([]overtime.PermissionResponse, error) {
	permissions, err := s.repo.ListPermissions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime transactions: %w", err)
	}
	responses := make([]overtime.PermissionResponse, 0, len(permissions))
	for _, p := range permissions {
		responses = append(responses, s.toPermissionResponse(p))
	}
	return responses, nil
}

// UpdatePermission implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) UpdatePermission(ctx context.Context, req overtime.UpdatePermissionRequest) (overtime.PermissionResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.PermissionResponse{}, err
	}

	p, err := s.repo.GetPermission(ctx, req.ID)
	if err != nil {
		return overtime.PermissionResponse{}, err
	}

	actor := actorFromContext(ctx)
	if req.Details != nil {
		p.Details = req.Details
	}
	if req.Remarks != nil {
		p.Remarks = req.Remarks
	}
	if req.WindowFrom != nil {
		p.WindowFrom = ensureSecondsPtr(req.WindowFrom)
	}
	if req.WindowTo != nil {
		p.WindowTo = ensureSecondsPtr(req.WindowTo)
	}
	if req.DateIssued != nil && *req.DateIssued != "" {
		parsed, err := time.Parse("2006-01-02", *req.DateIssued)
		if err != nil {
			return overtime.PermissionResponse{}, fmt.Errorf("failed to parse date_issued: %w", err)
		}
		p.DateIssued = parsed
	}
	p.UpdatedBy = actor

	replaceDates := len(req.Dates) > 0
	if replaceDates {
		p.Dates = nil
		for _, d := range req.Dates {
			p.Dates = append(p.Dates, overtime.DateEntry{
				ID:           uuid.New().String(),
				PermissionID: p.ID,
				EmployeeID:   d.EmployeeID,
				OTType:       d.OTType,
				Date:         d.Date,
				Status:       overtime.DateStatusNotRendered,
				UpdatedBy:    actor,
			})
		}
	}

	if err := s.repo.UpdatePermission(ctx, p, replaceDates); err != nil {
		return overtime.PermissionResponse{}, fmt.Errorf("failed to update overtime transaction: %w", err)
	}

	return s.GetPermission(ctx, req.ID)
}

// SetStatus implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) SetStatus(ctx context.Context, req overtime.SetStatusRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.SetStatus(ctx, req.ID, req.Status, actorFromContext(ctx))
}

// DeletePermission implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) DeletePermission(ctx context.Context, id string) error {
	return s.repo.DeletePermission(ctx, id)
}

// UpdateDateEntry implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) UpdateDateEntry(ctx context.Context, req overtime.UpdateDateEntryRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	e, err := s.repo.GetDateEntry(ctx, req.ID)
	if err != nil {
		return err
	}

	if req.OTType != nil {
		e.OTType = req.OTType
	}
	if req.AmFrom != nil {
		e.AmFrom = ensureSecondsPtr(req.AmFrom)
	}
	if req.AmTo != nil {
		e.AmTo = ensureSecondsPtr(req.AmTo)
	}
	if req.PmFrom != nil {
		e.PmFrom = ensureSecondsPtr(req.PmFrom)
	}
	if req.PmTo != nil {
		e.PmTo = ensureSecondsPtr(req.PmTo)
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
	e.UpdatedBy = actorFromContext(ctx)

	return s.repo.UpdateDateEntry(ctx, e)
}

// ListDateEntries implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) ListDateEntries(ctx context.Context, filter overtime.DateEntryFilter) ([]overtime.DateEntryResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.repo.ListDateEntries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime dates: %w", err)
	}

	responses := make([]overtime.DateEntryResponse, 0, len(entries))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		r := toDateEntryResponse(e)
		if w, ok := s.pending[e.ID]; ok {
			r.Pending = windowResponse(w)
		}
		responses = append(responses, r)
	}
	return responses, nil
}

// ========================================
// RECONCILIATION
// ========================================

// fetchLogs returns the raw logs for one (employee, date) pair, serving
// repeats from the session cache. Only successful fetches are cached; an
// empty result is a valid, cacheable answer.
func (s *OvertimeServiceImpl) fetchLogs(ctx context.Context, employeeID string, date timeparse.DateKey) ([]timeclock.RawLog, error) {
	cacheKey := employeeID + "|" + date.String()

	s.mu.Lock()
	if logs, ok := s.logCache[cacheKey]; ok {
		s.mu.Unlock()
		return logs, nil
	}
	s.mu.Unlock()

	logs, err := s.logs.ListForDate(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch raw logs: %w", err)
	}

	s.mu.Lock()
	s.logCache[cacheKey] = logs
	s.mu.Unlock()
	return logs, nil
}

// computeRow runs the reconciliation pipeline for one date row and, when
// anything matched, parks the result as that row's pending window.
func (s *OvertimeServiceImpl) computeRow(ctx context.Context, e overtime.DateEntry) (overtime.ComputeOutcome, error) {
	if e.PermissionStatus != overtime.StatusApproved {
		return overtime.ComputeOutcome{}, overtime.ErrNotApproved
	}

	date, ok := timeparse.ExtractDateKey(e.Date)
	if !ok {
		return overtime.ComputeOutcome{}, fmt.Errorf("overtime date %q has no parseable calendar date", e.Date)
	}

	logs, err := s.fetchLogs(ctx, e.EmployeeID, date)
	if err != nil {
		return overtime.ComputeOutcome{}, err
	}
	if len(logs) == 0 {
		return overtime.ComputeOutcome{EntryID: e.ID, Status: overtime.ComputeStatusNoLogs}, nil
	}

	w := computeWindow(logs, e.Date, e.WindowFrom, e.WindowTo)
	if w.Empty() {
		return overtime.ComputeOutcome{EntryID: e.ID, Status: overtime.ComputeStatusOutOfRange}, nil
	}

	s.mu.Lock()
	s.pending[e.ID] = w
	s.mu.Unlock()

	return overtime.ComputeOutcome{
		EntryID: e.ID,
		Status:  overtime.ComputeStatusComputed,
		Window:  windowResponse(w),
	}, nil
}

// ComputeEntry implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) ComputeEntry(ctx context.Context, entryID string) (overtime.ComputeOutcome, error) {
	e, err := s.repo.GetDateEntry(ctx, entryID)
	if err != nil {
		return overtime.ComputeOutcome{}, err
	}
	return s.computeRow(ctx, e)
}

// ComputeAll implements overtime.OvertimeService. It walks a snapshot of
// the rows matching the filter, in list order, suppressing per-row errors
// into the tally; one bad row never aborts the batch.
func (s *OvertimeServiceImpl) ComputeAll(ctx context.Context, filter overtime.DateEntryFilter) (overtime.BatchSummary, error) {
	if err := filter.Validate(); err != nil {
		return overtime.BatchSummary{}, err
	}

	// Only approved transactions are eligible for rendering.
	approved := overtime.StatusApproved
	filter.PermissionStatus = &approved

	entries, err := s.repo.ListDateEntries(ctx, filter)
	if err != nil {
		return overtime.BatchSummary{}, fmt.Errorf("failed to list overtime dates: %w", err)
	}

	var summary overtime.BatchSummary
	for _, e := range entries {
		outcome, err := s.computeRow(ctx, e)
		switch {
		case err != nil:
			summary.Failed++
		case outcome.Status == overtime.ComputeStatusComputed:
			summary.Succeeded++
		default:
			summary.Skipped++
		}
	}
	return summary, nil
}

// saveRow persists one pending window into its date row and clears the
// pending state on success. Failures leave the pending window in place so
// the row can be retried.
func (s *OvertimeServiceImpl) saveRow(ctx context.Context, entryID string, w overtime.ComputedWindow, actor *string) error {
	err := s.repo.SaveRenderedTimes(ctx, entryID,
		timeparse.DBTime(w.AmFrom), timeparse.DBTime(w.AmTo),
		timeparse.DBTime(w.PmFrom), timeparse.DBTime(w.PmTo),
		overtime.DateStatusRendered, actor,
	)
	if err != nil {
		return fmt.Errorf("failed to save rendered times: %w", err)
	}

	s.mu.Lock()
	delete(s.pending, entryID)
	s.mu.Unlock()
	return nil
}

// SaveEntry implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) SaveEntry(ctx context.Context, entryID string) error {
	s.mu.Lock()
	w, ok := s.pending[entryID]
	s.mu.Unlock()
	if !ok {
		return overtime.ErrNoPendingWindow
	}
	return s.saveRow(ctx, entryID, w, actorFromContext(ctx))
}

// SaveAll implements overtime.OvertimeService. Rows are independent
// per-employee-per-date records; there is no all-or-nothing guarantee, and
// the tally reports each row's fate separately.
func (s *OvertimeServiceImpl) SaveAll(ctx context.Context) (overtime.BatchSummary, error) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	snapshot := make(map[string]overtime.ComputedWindow, len(ids))
	for _, id := range ids {
		snapshot[id] = s.pending[id]
	}
	s.mu.Unlock()
	sort.Strings(ids)

	actor := actorFromContext(ctx)
	var summary overtime.BatchSummary
	for _, id := range ids {
		if err := s.saveRow(ctx, id, snapshot[id], actor); err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
	}
	return summary, nil
}

// DiscardPending implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) DiscardPending(entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[entryID]; !ok {
		return overtime.ErrNoPendingWindow
	}
	delete(s.pending, entryID)
	return nil
}

// RawLogs implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) RawLogs(ctx context.Context, employeeID string, date string) ([]overtime.RawLogResponse, error) {
	if validator.IsEmpty(employeeID) {
		return nil, validator.ValidationErrors{{Field: "employee_id", Message: "employee_id is required"}}
	}
	key, ok := timeparse.ExtractDateKey(date)
	if !ok {
		return nil, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}

	logs, err := s.fetchLogs(ctx, employeeID, key)
	if err != nil {
		return nil, err
	}

	responses := make([]overtime.RawLogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, overtime.RawLogResponse{
			EmployeeID: log.EmployeeID,
			Checktime:  log.Checktime,
			DeviceSN:   log.DeviceSN,
		})
	}
	return responses, nil
}

// ========================================
// MAPPING
// ========================================

func toDateEntryResponse(e overtime.DateEntry) overtime.DateEntryResponse {
	return overtime.DateEntryResponse{
		ID:               e.ID,
		PermissionID:     e.PermissionID,
		OTNo:             e.OTNo,
		EmployeeID:       e.EmployeeID,
		OTType:           e.OTType,
		Date:             e.Date,
		AmFrom:           e.AmFrom,
		AmTo:             e.AmTo,
		PmFrom:           e.PmFrom,
		PmTo:             e.PmTo,
		Status:           e.Status,
		WindowFrom:       e.WindowFrom,
		WindowTo:         e.WindowTo,
		PermissionStatus: e.PermissionStatus,
	}
}

func (s *OvertimeServiceImpl) toPermissionResponse(p overtime.Permission) overtime.PermissionResponse {
	dates := make([]overtime.DateEntryResponse, 0, len(p.Dates))
	s.mu.Lock()
	for _, e := range p.Dates {
		r := toDateEntryResponse(e)
		if w, ok := s.pending[e.ID]; ok {
			r.Pending = windowResponse(w)
		}
		dates = append(dates, r)
	}
	s.mu.Unlock()

	return overtime.PermissionResponse{
		ID:            p.ID,
		OTNo:          p.OTNo,
		Details:       p.Details,
		DateIssued:    p.DateIssued.Format("2006-01-02"),
		WindowFrom:    p.WindowFrom,
		WindowTo:      p.WindowTo,
		TotalRendered: p.TotalRendered,
		Remarks:       p.Remarks,
		Status:        p.Status,
		ApprovedBy:    p.ApprovedBy,
		Dates:         dates,
	}
}
