package http

import (
	"encoding/json"
	"net/http"

	"github.com/danny20232023/hris-sub003/internal/domain/overtime"
	"github.com/danny20232023/hris-sub003/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OvertimeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
	ListDates(w http.ResponseWriter, r *http.Request)
	UpdateDate(w http.ResponseWriter, r *http.Request)
	ComputeDate(w http.ResponseWriter, r *http.Request)
	ComputeAll(w http.ResponseWriter, r *http.Request)
	SaveDate(w http.ResponseWriter, r *http.Request)
	SaveAll(w http.ResponseWriter, r *http.Request)
	DiscardPending(w http.ResponseWriter, r *http.Request)
	RawLogs(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService) OvertimeHandler {
	return &overtimeHandlerImpl{
		overtimeService: overtimeService,
	}
}

func queryParam(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return &v
	}
	return nil
}

// Create implements OvertimeHandler.
func (h *overtimeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req overtime.CreatePermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.overtimeService.CreatePermission(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime transaction created", result)
}

// List implements OvertimeHandler.
func (h *overtimeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := overtime.ListFilter{
		Status:     queryParam(r, "status"),
		EmployeeID: queryParam(r, "employee_id"),
		DateFrom:   queryParam(r, "date_from"),
		DateTo:     queryParam(r, "date_to"),
	}

	result, err := h.overtimeService.ListPermissions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements OvertimeHandler.
func (h *overtimeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.overtimeService.GetPermission(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements OvertimeHandler.
func (h *overtimeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req overtime.UpdatePermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.overtimeService.UpdatePermission(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime transaction updated", result)
}

// Delete implements OvertimeHandler.
func (h *overtimeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.overtimeService.DeletePermission(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime transaction deleted", nil)
}

// SetStatus implements OvertimeHandler.
func (h *overtimeHandlerImpl) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req overtime.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.overtimeService.SetStatus(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime status updated", nil)
}

// ListDates implements OvertimeHandler.
func (h *overtimeHandlerImpl) ListDates(w http.ResponseWriter, r *http.Request) {
	filter := overtime.DateEntryFilter{
		PermissionID:     queryParam(r, "transaction_id"),
		EmployeeID:       queryParam(r, "employee_id"),
		Status:           queryParam(r, "status"),
		PermissionStatus: queryParam(r, "transaction_status"),
		DateFrom:         queryParam(r, "date_from"),
		DateTo:           queryParam(r, "date_to"),
	}

	result, err := h.overtimeService.ListDateEntries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateDate implements OvertimeHandler.
func (h *overtimeHandlerImpl) UpdateDate(w http.ResponseWriter, r *http.Request) {
	var req overtime.UpdateDateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.overtimeService.UpdateDateEntry(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime date updated", nil)
}

// ComputeDate implements OvertimeHandler.
func (h *overtimeHandlerImpl) ComputeDate(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.overtimeService.ComputeEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, outcome)
}

// ComputeAll implements OvertimeHandler.
func (h *overtimeHandlerImpl) ComputeAll(w http.ResponseWriter, r *http.Request) {
	filter := overtime.DateEntryFilter{
		PermissionID: queryParam(r, "transaction_id"),
		EmployeeID:   queryParam(r, "employee_id"),
		Status:       queryParam(r, "status"),
		DateFrom:     queryParam(r, "date_from"),
		DateTo:       queryParam(r, "date_to"),
	}

	summary, err := h.overtimeService.ComputeAll(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// SaveDate implements OvertimeHandler.
func (h *overtimeHandlerImpl) SaveDate(w http.ResponseWriter, r *http.Request) {
	if err := h.overtimeService.SaveEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rendered times saved", nil)
}

// SaveAll implements OvertimeHandler.
func (h *overtimeHandlerImpl) SaveAll(w http.ResponseWriter, r *http.Request) {
	summary, err := h.overtimeService.SaveAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// DiscardPending implements OvertimeHandler.
func (h *overtimeHandlerImpl) DiscardPending(w http.ResponseWriter, r *http.Request) {
	if err := h.overtimeService.DiscardPending(chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pending result discarded", nil)
}

// RawLogs implements OvertimeHandler.
func (h *overtimeHandlerImpl) RawLogs(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	date := chi.URLParam(r, "date")

	result, err := h.overtimeService.RawLogs(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
