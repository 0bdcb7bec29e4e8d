package notification

import (
	"context"
	"log/slog"

	"github.com/peoplehub/hr-backend-go/internal/domain/employee"
	"github.com/peoplehub/hr-backend-go/internal/domain/leave"
	"github.com/peoplehub/hr-backend-go/internal/domain/penalty"
	"github.com/peoplehub/hr-backend-go/internal/pkg/email"
	"github.com/peoplehub/hr-backend-go/internal/pkg/sse"
)

// DispatcherImpl fans notifications out over email and the SSE hub. Every
// failure is logged and swallowed; a notification can never abort the
// transition that produced it.
type DispatcherImpl struct {
	employees employee.EmployeeRepository
	sender    email.Sender
	hub       *sse.Hub
}

func NewDispatcher(employees employee.EmployeeRepository, sender email.Sender, hub *sse.Hub) *DispatcherImpl {
	return &DispatcherImpl{
		employees: employees,
		sender:    sender,
		hub:       hub,
	}
}

// NotifySubmitted implements notification.Service.
func (d *DispatcherImpl) NotifySubmitted(ctx context.Context, req leave.LeaveRequest) {
	emp, err := d.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		slog.Warn("Failed to resolve employee for submission notification",
			"request_id", req.ID, "error", err)
		return
	}

	approvers, err := d.employees.ListApprovers(ctx)
	if err != nil {
		slog.Warn("Failed to list approvers for submission notification",
			"request_id", req.ID, "error", err)
		return
	}

	categoryName := ""
	if req.CategoryName != nil {
		categoryName = *req.CategoryName
	}
	dateRange := req.StartDate.Format("2006-01-02")
	if !req.EndDate.Equal(req.StartDate) {
		dateRange += " to " + req.EndDate.Format("2006-01-02")
	}

	approverIDs := make([]string, 0, len(approvers))
	for _, approver := range approvers {
		approverIDs = append(approverIDs, approver.ID)
		if err := d.sender.SendLeaveSubmitted(approver.Email, emp.FullName, categoryName, req.Amount.String(), dateRange); err != nil {
			slog.Warn("Failed to send submission email",
				"request_id", req.ID, "to", approver.Email, "error", err)
		}
	}

	d.hub.PublishToMany(approverIDs, sse.Event{
		Event: "leave_request_submitted",
		Data: map[string]any{
			"request_id":    req.ID,
			"employee_id":   req.EmployeeID,
			"employee_name": emp.FullName,
			"category_name": categoryName,
			"amount":        req.Amount.String(),
			"date_range":    dateRange,
		},
	})
}

// NotifyDecided implements notification.Service.
func (d *DispatcherImpl) NotifyDecided(ctx context.Context, req leave.LeaveRequest) {
	emp, err := d.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		slog.Warn("Failed to resolve employee for decision notification",
			"request_id", req.ID, "error", err)
		return
	}

	categoryName := ""
	if req.CategoryName != nil {
		categoryName = *req.CategoryName
	}
	rejectionReason := ""
	if req.RejectionReason != nil {
		rejectionReason = *req.RejectionReason
	}

	if err := d.sender.SendLeaveDecided(emp.Email, categoryName, req.Amount.String(), string(req.Status), rejectionReason); err != nil {
		slog.Warn("Failed to send decision email",
			"request_id", req.ID, "to", emp.Email, "error", err)
	}

	d.hub.Publish(emp.ID, sse.Event{
		Event: "leave_request_decided",
		Data: map[string]any{
			"request_id":       req.ID,
			"category_name":    categoryName,
			"status":           string(req.Status),
			"rejection_reason": rejectionReason,
		},
	})
}

// NotifyPenalty implements notification.Service.
func (d *DispatcherImpl) NotifyPenalty(ctx context.Context, p penalty.Penalty) {
	emp, err := d.employees.GetByID(ctx, p.EmployeeID)
	if err != nil {
		slog.Warn("Failed to resolve employee for penalty notification",
			"penalty_id", p.ID, "error", err)
		return
	}

	if err := d.sender.SendPenaltyNotice(
		emp.Email,
		p.Date.Format("2006-01-02"),
		p.ClockIn.Format("15:04"),
		p.LateCount,
		p.AmountDays.StringFixed(1),
	); err != nil {
		slog.Warn("Failed to send penalty email",
			"penalty_id", p.ID, "to", emp.Email, "error", err)
	}

	d.hub.Publish(emp.ID, sse.Event{
		Event: "attendance_penalty",
		Data: map[string]any{
			"penalty_id":  p.ID,
			"date":        p.Date.Format("2006-01-02"),
			"late_count":  p.LateCount,
			"amount_days": p.AmountDays.InexactFloat64(),
			"reason":      p.Reason,
		},
	})
}
