package overtime

import (
	"github.com/danny20232023/hris-sub003/internal/pkg/validator"
)

// ========================================
// OVERTIME DTOs
// ========================================

type DateEntryInput struct {
	EmployeeID string  `json:"employee_id"`
	OTType     *string `json:"ot_type,omitempty"`
	Date       string  `json:"date"` // YYYY-MM-DD
}

type CreatePermissionRequest struct {
	Details    *string          `json:"details,omitempty"`
	DateIssued *string          `json:"date_issued,omitempty"` // YYYY-MM-DD, defaults to today
	WindowFrom string           `json:"window_from"`           // HH:MM or HH:MM:SS
	WindowTo   string           `json:"window_to"`
	Remarks    *string          `json:"remarks,omitempty"`
	Dates      []DateEntryInput `json:"dates"`
}

func (r *CreatePermissionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WindowFrom) {
		errs = append(errs, validator.ValidationError{
			Field:   "window_from",
			Message: "window_from is required",
		})
	} else if !validator.IsValidTimeOfDay(r.WindowFrom) {
		errs = append(errs, validator.ValidationError{
			Field:   "window_from",
			Message: "window_from must be in HH:MM or HH:MM:SS format",
		})
	}

	if validator.IsEmpty(r.WindowTo) {
		errs = append(errs, validator.ValidationError{
			Field:   "window_to",
			Message: "window_to is required",
		})
	} else if !validator.IsValidTimeOfDay(r.WindowTo) {
		errs = append(errs, validator.ValidationError{
			Field:   "window_to",
			Message: "window_to must be in HH:MM or HH:MM:SS format",
		})
	}

	if r.DateIssued != nil && *r.DateIssued != "" {
		if _, valid := validator.IsValidDate(*r.DateIssued); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date_issued",
				Message: "date_issued must be in YYYY-MM-DD format",
			})
		}
	}

	if len(r.Dates) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "dates",
			Message: "at least one overtime date is required",
		})
	}
	for _, d := range r.Dates {
		if validator.IsEmpty(d.EmployeeID) {
			errs = append(errs, validator.ValidationError{
				Field:   "dates.employee_id",
				Message: "employee_id is required for every overtime date",
			})
			break
		}
		if _, valid := validator.IsValidDate(d.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "dates.date",
				Message: "date must be in YYYY-MM-DD format",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePermissionRequest struct {
	ID         string           `json:"-"`
	Details    *string          `json:"details,omitempty"`
	DateIssued *string          `json:"date_issued,omitempty"`
	WindowFrom *string          `json:"window_from,omitempty"`
	WindowTo   *string          `json:"window_to,omitempty"`
	Remarks    *string          `json:"remarks,omitempty"`
	Dates      []DateEntryInput `json:"dates,omitempty"` // replaces existing date rows when present
}

func (r *UpdatePermissionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WindowFrom != nil && !validator.IsValidTimeOfDay(*r.WindowFrom) {
		errs = append(errs, validator.ValidationError{
			Field:   "window_from",
			Message: "window_from must be in HH:MM or HH:MM:SS format",
		})
	}
	if r.WindowTo != nil && !validator.IsValidTimeOfDay(*r.WindowTo) {
		errs = append(errs, validator.ValidationError{
			Field:   "window_to",
			Message: "window_to must be in HH:MM or HH:MM:SS format",
		})
	}
	if r.DateIssued != nil && *r.DateIssued != "" {
		if _, valid := validator.IsValidDate(*r.DateIssued); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date_issued",
				Message: "date_issued must be in YYYY-MM-DD format",
			})
		}
	}
	for _, d := range r.Dates {
		if validator.IsEmpty(d.EmployeeID) {
			errs = append(errs, validator.ValidationError{
				Field:   "dates.employee_id",
				Message: "employee_id is required for every overtime date",
			})
			break
		}
		if _, valid := validator.IsValidDate(d.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "dates.date",
				Message: "date must be in YYYY-MM-DD format",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *SetStatusRequest) Validate() error {
	valid := []string{StatusForApproval, StatusApproved, StatusReturned, StatusCancelled}
	if !validator.IsInSlice(r.Status, valid) {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be one of: For Approval, Approved, Returned, Cancelled",
		}}
	}
	return nil
}

type ListFilter struct {
	Status     *string `json:"status,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	DateFrom   *string `json:"date_from,omitempty"` // YYYY-MM-DD, on otdateissued
	DateTo     *string `json:"date_to,omitempty"`
}

type DateEntryFilter struct {
	PermissionID     *string `json:"permission_id,omitempty"`
	EmployeeID       *string `json:"employee_id,omitempty"`
	Status           *string `json:"status,omitempty"`
	PermissionStatus *string `json:"permission_status,omitempty"`
	DateFrom         *string `json:"date_from,omitempty"` // YYYY-MM-DD, on the entry date
	DateTo           *string `json:"date_to,omitempty"`
}

func (f *DateEntryFilter) Validate() error {
	var errs validator.ValidationErrors

	for field, v := range map[string]*string{"date_from": f.DateFrom, "date_to": f.DateTo} {
		if v != nil && *v != "" {
			if _, valid := validator.IsValidDate(*v); !valid {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if f.Status != nil && *f.Status != "" {
		valid := []string{DateStatusNotRendered, DateStatusRendered, DateStatusApproved, DateStatusReturned, DateStatusCancelled}
		if !validator.IsInSlice(*f.Status, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: Not Rendered, Rendered, Approved, Returned, Cancelled",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateDateEntryRequest struct {
	ID     string  `json:"-"`
	OTType *string `json:"ot_type,omitempty"`
	AmFrom *string `json:"am_from,omitempty"` // HH:MM or HH:MM:SS
	AmTo   *string `json:"am_to,omitempty"`
	PmFrom *string `json:"pm_from,omitempty"`
	PmTo   *string `json:"pm_to,omitempty"`
	Status *string `json:"status,omitempty"`
}

func (r *UpdateDateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	for field, v := range map[string]*string{
		"am_from": r.AmFrom, "am_to": r.AmTo,
		"pm_from": r.PmFrom, "pm_to": r.PmTo,
	} {
		if v != nil && *v != "" && !validator.IsValidTimeOfDay(*v) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be in HH:MM or HH:MM:SS format",
			})
		}
	}

	if r.Status != nil {
		valid := []string{DateStatusNotRendered, DateStatusRendered, DateStatusApproved, DateStatusReturned, DateStatusCancelled}
		if !validator.IsInSlice(*r.Status, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: Not Rendered, Rendered, Approved, Returned, Cancelled",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type DateEntryResponse struct {
	ID               string                  `json:"id"`
	PermissionID     string                  `json:"permission_id"`
	OTNo             string                  `json:"ot_no,omitempty"`
	EmployeeID       string                  `json:"employee_id"`
	OTType           *string                 `json:"ot_type,omitempty"`
	Date             string                  `json:"date"`
	AmFrom           *string                 `json:"am_from,omitempty"`
	AmTo             *string                 `json:"am_to,omitempty"`
	PmFrom           *string                 `json:"pm_from,omitempty"`
	PmTo             *string                 `json:"pm_to,omitempty"`
	Status           string                  `json:"status"`
	WindowFrom       *string                 `json:"window_from,omitempty"`
	WindowTo         *string                 `json:"window_to,omitempty"`
	PermissionStatus string                  `json:"permission_status,omitempty"`
	Pending          *ComputedWindowResponse `json:"pending,omitempty"`
}

type PermissionResponse struct {
	ID            string              `json:"id"`
	OTNo          string              `json:"ot_no"`
	Details       *string             `json:"details,omitempty"`
	DateIssued    string              `json:"date_issued"`
	WindowFrom    *string             `json:"window_from,omitempty"`
	WindowTo      *string             `json:"window_to,omitempty"`
	TotalRendered *float64            `json:"total_rendered,omitempty"`
	Remarks       *string             `json:"remarks,omitempty"`
	Status        string              `json:"status"`
	ApprovedBy    *string             `json:"approved_by,omitempty"`
	Dates         []DateEntryResponse `json:"dates"`
}

// ComputedWindowResponse carries a pending window with its bounds rendered
// as "HH:MM" labels.
type ComputedWindowResponse struct {
	AmFrom        *string `json:"am_from"`
	AmTo          *string `json:"am_to"`
	PmFrom        *string `json:"pm_from"`
	PmTo          *string `json:"pm_to"`
	RenderedHours float64 `json:"rendered_hours"`
}

// Compute outcomes. No-logs and out-of-range are reported distinctly so
// the user knows whether to chase a device outage or the window definition.
const (
	ComputeStatusComputed   = "computed"
	ComputeStatusNoLogs     = "no-logs"
	ComputeStatusOutOfRange = "out-of-range"
)

type ComputeOutcome struct {
	EntryID string                  `json:"entry_id"`
	Status  string                  `json:"status"`
	Window  *ComputedWindowResponse `json:"window,omitempty"`
}

// BatchSummary is the aggregate tally of a compute-all or save-all run.
// Rows are counted independently; the three counters always sum to the
// number of rows visited.
type BatchSummary struct {
	Succeeded int `json:"succeeded"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

type RawLogResponse struct {
	EmployeeID string  `json:"employee_id"`
	Checktime  string  `json:"checktime"`
	DeviceSN   *string `json:"device_sn,omitempty"`
}
