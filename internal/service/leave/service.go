package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/peoplehub/hr-backend-go/internal/domain/category"
	"github.com/peoplehub/hr-backend-go/internal/domain/leave"
	"github.com/peoplehub/hr-backend-go/internal/domain/notification"
	"github.com/peoplehub/hr-backend-go/internal/domain/user"
	"github.com/peoplehub/hr-backend-go/internal/pkg/database"
	"github.com/peoplehub/hr-backend-go/internal/pkg/validator"
	"github.com/peoplehub/hr-backend-go/internal/repository/postgresql"
)

type WorkflowServiceImpl struct {
	db         *database.DB
	categories category.CategoryRepository
	allotments leave.AllotmentRepository
	requests   leave.LeaveRequestRepository
	ledger     leave.Ledger
	notifier   notification.Service
}

func NewWorkflowService(
	db *database.DB,
	categories category.CategoryRepository,
	allotments leave.AllotmentRepository,
	requests leave.LeaveRequestRepository,
	ledger leave.Ledger,
	notifier notification.Service,
) *WorkflowServiceImpl {
	return &WorkflowServiceImpl{
		db:         db,
		categories: categories,
		allotments: allotments,
		requests:   requests,
		ledger:     ledger,
		notifier:   notifier,
	}
}

// Submit implements leave.WorkflowService. Employees submit for themselves;
// HR and admins may submit on behalf of another employee. The balance check
// here is advisory for pending requests, the authoritative check happens
// again at approval time.
func (s *WorkflowServiceImpl) Submit(ctx context.Context, actor user.Actor, req leave.SubmitRequestRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	employeeID := actor.EmployeeID
	if req.EmployeeID != "" && req.EmployeeID != actor.EmployeeID {
		if !actor.IsApprover() {
			return leave.RequestResponse{}, user.ErrUnauthorized
		}
		employeeID = req.EmployeeID
	}

	cat, err := s.categories.GetByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return leave.RequestResponse{}, category.ErrInvalidCategory
		}
		return leave.RequestResponse{}, fmt.Errorf("failed to resolve category: %w", err)
	}
	if !cat.IsActive {
		return leave.RequestResponse{}, category.ErrInvalidCategory
	}

	request, err := buildRequest(employeeID, cat, req)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	// An allotment must exist and cover the request before anything is
	// persisted.
	if err := s.ledger.CheckSufficientBalance(ctx, employeeID, cat.ID, request.Amount, ""); err != nil {
		return leave.RequestResponse{}, err
	}

	created, err := s.requests.Create(ctx, request)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	created.CategoryName = &cat.Name
	created.CategoryUnit = cat.Unit

	s.notifier.NotifySubmitted(ctx, created)

	return toRequestResponse(created), nil
}

// buildRequest derives the request amount from its shape: a half-day marker
// forces 0.5 day, a short-leave range derives minutes, otherwise the amount
// is the inclusive day count of the date range.
func buildRequest(employeeID string, cat category.LeaveCategory, req leave.SubmitRequestRequest) (leave.LeaveRequest, error) {
	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	if end.Before(start) {
		return leave.LeaveRequest{}, fieldError("end_date", "end_date must not be before start_date")
	}

	request := leave.LeaveRequest{
		EmployeeID: employeeID,
		CategoryID: cat.ID,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Source:     leave.SourceEmployee,
		Status:     leave.StatusPending,
		HalfDay:    leave.HalfDay(req.HalfDay),
	}

	switch {
	case req.HalfDay != "":
		if cat.Unit != category.UnitDays {
			return leave.LeaveRequest{}, leave.ErrUnitMismatch
		}
		if !start.Equal(end) {
			return leave.LeaveRequest{}, fieldError("half_day", "a half-day request must cover a single day")
		}
		request.Amount = leave.DaysFloat(0.5)

	case req.ShortStart != "":
		if cat.Unit != category.UnitHoursMinutes {
			return leave.LeaveRequest{}, leave.ErrUnitMismatch
		}
		if !start.Equal(end) {
			return leave.LeaveRequest{}, fieldError("short_start", "a short-leave request must cover a single day")
		}
		startMin, endMin := mustClockMinutes(req.ShortStart), mustClockMinutes(req.ShortEnd)
		if endMin <= startMin {
			return leave.LeaveRequest{}, fieldError("short_end", "short_end must be after short_start")
		}
		shortStart := start.Add(time.Duration(startMin) * time.Minute)
		shortEnd := start.Add(time.Duration(endMin) * time.Minute)
		request.ShortStart = &shortStart
		request.ShortEnd = &shortEnd
		request.Amount = leave.FromMinutes(endMin - startMin)

	default:
		if cat.Unit != category.UnitDays {
			return leave.LeaveRequest{}, leave.ErrUnitMismatch
		}
		days := int(end.Sub(start).Hours()/24) + 1
		request.Amount = leave.DaysFloat(float64(days))
	}

	return request, nil
}

// mustClockMinutes assumes the value already passed Validate.
func mustClockMinutes(s string) int {
	m, _ := validator.ParseClockTime(s)
	return m
}

func fieldError(field, message string) error {
	return validator.ValidationErrors{{Field: field, Message: message}}
}

// Decide implements leave.WorkflowService. Approval re-checks the balance
// authoritatively and then recomputes; rejection of a previously approved
// request restores the balance through the same recompute.
func (s *WorkflowServiceImpl) Decide(ctx context.Context, actor user.Actor, req leave.DecideRequestRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}
	if !actor.IsApprover() {
		return leave.RequestResponse{}, user.ErrHRAccessRequired
	}

	request, err := s.requests.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if request.EmployeeID == actor.EmployeeID {
		return leave.RequestResponse{}, leave.ErrSelfApprovalNotAllowed
	}

	decision := leave.Decision(req.Decision)
	switch decision {
	case leave.DecisionApprove:
		if request.Status != leave.StatusPending {
			return leave.RequestResponse{}, leave.ErrAlreadyProcessed
		}
		// Authoritative check: the request's own amount must fit in what is
		// left after every other approved request.
		if err := s.ledger.CheckSufficientBalance(ctx, request.EmployeeID, request.CategoryID, request.Amount, request.ID); err != nil {
			return leave.RequestResponse{}, err
		}
		now := time.Now()
		request.Status = leave.StatusApproved
		request.ApproverID = &actor.EmployeeID
		request.ApprovedAt = &now
		request.RejectionReason = nil

	case leave.DecisionReject:
		// A rejected request stays rejected, but an approved one may still be
		// revoked; the recompute below restores the balance.
		if request.Status == leave.StatusRejected {
			return leave.RequestResponse{}, leave.ErrAlreadyProcessed
		}
		now := time.Now()
		request.Status = leave.StatusRejected
		request.ApproverID = &actor.EmployeeID
		request.ApprovedAt = &now
		request.RejectionReason = &req.RejectionReason
	}

	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := s.requests.UpdateStatus(ctx, request); err != nil {
			return fmt.Errorf("failed to update request status: %w", err)
		}
		if _, err := s.ledger.Recompute(ctx, request.EmployeeID, request.CategoryID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	s.notifier.NotifyDecided(ctx, request)

	return toRequestResponse(request), nil
}

// DeleteRequest implements leave.WorkflowService. Employees may withdraw
// their own pending requests; approvers may delete any employee-sourced
// request, with a recompute when an approved one is removed.
func (s *WorkflowServiceImpl) DeleteRequest(ctx context.Context, actor user.Actor, requestID string) error {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if !actor.IsApprover() {
		if request.EmployeeID != actor.EmployeeID ||
			request.Status != leave.StatusPending ||
			request.Source != leave.SourceEmployee {
			return user.ErrUnauthorized
		}
	}

	wasApproved := request.Status == leave.StatusApproved
	return postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := s.requests.Delete(ctx, requestID); err != nil {
			return err
		}
		if wasApproved {
			if _, err := s.ledger.Recompute(ctx, request.EmployeeID, request.CategoryID); err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateAllotment implements leave.WorkflowService.
func (s *WorkflowServiceImpl) CreateAllotment(ctx context.Context, actor user.Actor, req leave.CreateAllotmentRequest) (leave.AllotmentResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.AllotmentResponse{}, err
	}
	if !actor.IsApprover() {
		return leave.AllotmentResponse{}, user.ErrHRAccessRequired
	}

	cat, err := s.categories.GetByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return leave.AllotmentResponse{}, category.ErrInvalidCategory
		}
		return leave.AllotmentResponse{}, fmt.Errorf("failed to resolve category: %w", err)
	}

	granted := grantedAmount(cat.Unit, req.GrantedDays, req.GrantedHours, req.GrantedMins)
	allotment := leave.Allotment{
		EmployeeID:   req.EmployeeID,
		CategoryID:   cat.ID,
		Granted:      granted,
		Remaining:    granted,
		CarryForward: req.CarryForward,
		CreatedBy:    actor.EmployeeID,
	}

	created, err := s.allotments.Create(ctx, allotment)
	if err != nil {
		return leave.AllotmentResponse{}, err
	}
	created.CategoryName = &cat.Name

	return toAllotmentResponse(created), nil
}

// EditAllotment implements leave.WorkflowService. Changing the grant or the
// category re-derives remaining immediately, so an edit can never leave a
// stale balance behind.
func (s *WorkflowServiceImpl) EditAllotment(ctx context.Context, actor user.Actor, req leave.UpdateAllotmentRequest) (leave.AllotmentResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.AllotmentResponse{}, err
	}
	if !actor.IsApprover() {
		return leave.AllotmentResponse{}, user.ErrHRAccessRequired
	}

	allotment, err := s.allotments.GetByID(ctx, req.ID)
	if err != nil {
		return leave.AllotmentResponse{}, err
	}

	cat, err := s.categories.GetByID(ctx, allotment.CategoryID)
	if err != nil {
		return leave.AllotmentResponse{}, fmt.Errorf("failed to resolve category: %w", err)
	}
	if req.CategoryID != nil && *req.CategoryID != allotment.CategoryID {
		cat, err = s.categories.GetByID(ctx, *req.CategoryID)
		if err != nil {
			if errors.Is(err, category.ErrCategoryNotFound) {
				return leave.AllotmentResponse{}, category.ErrInvalidCategory
			}
			return leave.AllotmentResponse{}, fmt.Errorf("failed to resolve category: %w", err)
		}
		allotment.CategoryID = cat.ID
	}

	if req.GrantedDays != nil || req.GrantedHours != nil || req.GrantedMins != nil {
		days := allotment.Granted.Days.InexactFloat64()
		hours, mins := allotment.Granted.Hours, allotment.Granted.Minutes
		if req.GrantedDays != nil {
			days = *req.GrantedDays
		}
		if req.GrantedHours != nil {
			hours = *req.GrantedHours
		}
		if req.GrantedMins != nil {
			mins = *req.GrantedMins
		}
		allotment.Granted = grantedAmount(cat.Unit, days, hours, mins)
	} else if cat.Unit != allotment.Granted.Unit {
		return leave.AllotmentResponse{}, leave.ErrUnitMismatch
	}
	if req.CarryForward != nil {
		allotment.CarryForward = *req.CarryForward
	}

	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := s.allotments.Update(ctx, allotment); err != nil {
			return err
		}
		_, err := s.ledger.Recompute(ctx, allotment.EmployeeID, allotment.CategoryID)
		return err
	})
	if err != nil {
		return leave.AllotmentResponse{}, err
	}

	updated, err := s.allotments.GetByID(ctx, allotment.ID)
	if err != nil {
		return leave.AllotmentResponse{}, err
	}
	return toAllotmentResponse(updated), nil
}

// DeleteAllotment implements leave.WorkflowService.
func (s *WorkflowServiceImpl) DeleteAllotment(ctx context.Context, actor user.Actor, allotmentID string) error {
	if !actor.IsApprover() {
		return user.ErrHRAccessRequired
	}
	return s.allotments.Delete(ctx, allotmentID)
}

// ListMyRequests implements leave.WorkflowService.
func (s *WorkflowServiceImpl) ListMyRequests(ctx context.Context, actor user.Actor) ([]leave.RequestResponse, error) {
	requests, err := s.requests.ListByEmployee(ctx, actor.EmployeeID)
	if err != nil {
		return nil, err
	}
	return toRequestResponses(requests), nil
}

// ListRequests implements leave.WorkflowService. Approver view across all
// employees, optionally filtered by status.
func (s *WorkflowServiceImpl) ListRequests(ctx context.Context, actor user.Actor, status leave.RequestStatus) ([]leave.RequestResponse, error) {
	if !actor.IsApprover() {
		return nil, user.ErrHRAccessRequired
	}
	requests, err := s.requests.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return toRequestResponses(requests), nil
}

// ListAllotments implements leave.WorkflowService. Employees see only their
// own allotments.
func (s *WorkflowServiceImpl) ListAllotments(ctx context.Context, actor user.Actor, employeeID string) ([]leave.AllotmentResponse, error) {
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	if employeeID != actor.EmployeeID && !actor.IsApprover() {
		return nil, user.ErrUnauthorized
	}

	allotments, err := s.allotments.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.AllotmentResponse, 0, len(allotments))
	for _, a := range allotments {
		responses = append(responses, toAllotmentResponse(a))
	}
	return responses, nil
}

// LedgerHistory implements leave.WorkflowService. The history is derived on
// read from the approved request set; there is no separate history table to
// drift out of sync.
func (s *WorkflowServiceImpl) LedgerHistory(ctx context.Context, actor user.Actor, employeeID, categoryID string) (leave.LedgerHistoryResponse, error) {
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	if employeeID != actor.EmployeeID && !actor.IsApprover() {
		return leave.LedgerHistoryResponse{}, user.ErrUnauthorized
	}

	allotment, err := s.allotments.GetByEmployeeAndCategory(ctx, employeeID, categoryID)
	if err != nil {
		return leave.LedgerHistoryResponse{}, err
	}

	entries, err := s.requests.ListApprovedByPair(ctx, employeeID, categoryID)
	if err != nil {
		return leave.LedgerHistoryResponse{}, err
	}

	return leave.LedgerHistoryResponse{
		Allotment: toAllotmentResponse(allotment),
		Entries:   toRequestResponses(entries),
	}, nil
}

func grantedAmount(unit category.Unit, days float64, hours, mins int) leave.Amount {
	if unit == category.UnitHoursMinutes {
		return leave.HoursMinutes(hours, mins)
	}
	return leave.DaysFloat(days)
}

func toAmountResponse(a leave.Amount) leave.AmountResponse {
	resp := leave.AmountResponse{
		Unit:    string(a.Unit),
		Display: a.String(),
	}
	if a.Unit == category.UnitHoursMinutes {
		resp.Hours = a.Hours
		resp.Minutes = a.Minutes
	} else {
		resp.Days = a.Days.InexactFloat64()
	}
	return resp
}

func toAllotmentResponse(a leave.Allotment) leave.AllotmentResponse {
	resp := leave.AllotmentResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		CategoryID:   a.CategoryID,
		Granted:      toAmountResponse(a.Granted),
		Remaining:    toAmountResponse(a.Remaining),
		CarryForward: a.CarryForward,
	}
	if a.CategoryName != nil {
		resp.CategoryName = *a.CategoryName
	}
	return resp
}

func toRequestResponse(r leave.LeaveRequest) leave.RequestResponse {
	resp := leave.RequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		CategoryID:      r.CategoryID,
		Amount:          toAmountResponse(r.Amount),
		StartDate:       r.StartDate.Format("2006-01-02"),
		EndDate:         r.EndDate.Format("2006-01-02"),
		HalfDay:         string(r.HalfDay),
		Reason:          r.Reason,
		Source:          string(r.Source),
		Status:          string(r.Status),
		ApproverID:      r.ApproverID,
		RejectionReason: r.RejectionReason,
	}
	if r.CategoryName != nil {
		resp.CategoryName = *r.CategoryName
	}
	if r.ApprovedAt != nil {
		at := r.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &at
	}
	return resp
}

func toRequestResponses(requests []leave.LeaveRequest) []leave.RequestResponse {
	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, toRequestResponse(r))
	}
	return responses
}
