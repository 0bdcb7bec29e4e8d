package http

import (
	"net/http"
	"time"

	"github.com/peoplehub/hr-backend-go/internal/domain/penalty"
	"github.com/peoplehub/hr-backend-go/internal/handler/http/middleware"
	"github.com/peoplehub/hr-backend-go/internal/handler/http/response"
	"github.com/peoplehub/hr-backend-go/internal/service/attendance"
	"github.com/peoplehub/hr-backend-go/internal/service/ledger"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ListMyPenalties(w http.ResponseWriter, r *http.Request)
	Reconcile(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	clockInService *attendance.ClockInServiceImpl
	penaltyService penalty.Service
	ledgerService  *ledger.LedgerServiceImpl
}

func NewAttendanceHandler(
	clockInService *attendance.ClockInServiceImpl,
	penaltyService penalty.Service,
	ledgerService *ledger.LedgerServiceImpl,
) AttendanceHandler {
	return &AttendanceHandlerImpl{
		clockInService: clockInService,
		penaltyService: penaltyService,
		ledgerService:  ledgerService,
	}
}

// ClockIn implements AttendanceHandler. The timestamp is server-side; the
// client only announces presence.
func (h *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.clockInService.ClockIn(r.Context(), actor.EmployeeID, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Clock-in recorded", result)
}

// ListMyPenalties implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListMyPenalties(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := actor.EmployeeID
	if id := r.URL.Query().Get("employee_id"); id != "" && actor.IsApprover() {
		employeeID = id
	}

	penalties, err := h.penaltyService.ListForEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, penalties)
}

// Reconcile implements AttendanceHandler. Approver-only manual trigger for
// the balance reconciliation sweep.
func (h *AttendanceHandlerImpl) Reconcile(w http.ResponseWriter, r *http.Request) {
	count, err := h.ledgerService.ReconcileAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Reconciliation complete", map[string]int{"reconciled": count})
}
