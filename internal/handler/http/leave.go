package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/peoplehub/hr-backend-go/internal/domain/leave"
	"github.com/peoplehub/hr-backend-go/internal/handler/http/middleware"
	"github.com/peoplehub/hr-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	SubmitRequest(w http.ResponseWriter, r *http.Request)
	DecideRequest(w http.ResponseWriter, r *http.Request)
	DeleteRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)

	CreateAllotment(w http.ResponseWriter, r *http.Request)
	EditAllotment(w http.ResponseWriter, r *http.Request)
	DeleteAllotment(w http.ResponseWriter, r *http.Request)
	ListAllotments(w http.ResponseWriter, r *http.Request)
	LedgerHistory(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	workflow leave.WorkflowService
}

func NewLeaveHandler(workflow leave.WorkflowService) LeaveHandler {
	return &LeaveHandlerImpl{workflow: workflow}
}

// SubmitRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.SubmitRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.workflow.Submit(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted", created)
}

// DecideRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) DecideRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.DecideRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")

	decided, err := h.workflow.Decide(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, decided)
}

// DeleteRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.workflow.DeleteRequest(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request deleted", nil)
}

// GetMyRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.workflow.ListMyRequests(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// ListRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	status := leave.RequestStatus(r.URL.Query().Get("status"))
	requests, err := h.workflow.ListRequests(r.Context(), actor, status)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// CreateAllotment implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateAllotment(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateAllotmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.workflow.CreateAllotment(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Allotment created", created)
}

// EditAllotment implements LeaveHandler.
func (h *LeaveHandlerImpl) EditAllotment(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.UpdateAllotmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.workflow.EditAllotment(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, updated)
}

// DeleteAllotment implements LeaveHandler.
func (h *LeaveHandlerImpl) DeleteAllotment(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.workflow.DeleteAllotment(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Allotment deleted", nil)
}

// ListAllotments implements LeaveHandler.
func (h *LeaveHandlerImpl) ListAllotments(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	allotments, err := h.workflow.ListAllotments(r.Context(), actor, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, allotments)
}

// LedgerHistory implements LeaveHandler.
func (h *LeaveHandlerImpl) LedgerHistory(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	categoryID := chi.URLParam(r, "categoryID")
	employeeID := r.URL.Query().Get("employee_id")

	history, err := h.workflow.LedgerHistory(r.Context(), actor, employeeID, categoryID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, history)
}
