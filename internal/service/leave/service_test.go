package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/peoplehub/hr-backend-go/internal/domain/category"
	"github.com/peoplehub/hr-backend-go/internal/domain/leave"
	"github.com/peoplehub/hr-backend-go/internal/domain/penalty"
	"github.com/peoplehub/hr-backend-go/internal/domain/user"
	ledgerService "github.com/peoplehub/hr-backend-go/internal/service/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategoryRepo struct {
	categories map[string]category.LeaveCategory
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c category.LeaveCategory) (category.LeaveCategory, error) {
	c.ID = fmt.Sprintf("cat-%d", len(f.categories)+1)
	f.categories[c.ID] = c
	return c, nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id string) (category.LeaveCategory, error) {
	c, ok := f.categories[id]
	if !ok {
		return category.LeaveCategory{}, category.ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepo) GetByName(ctx context.Context, name string) (category.LeaveCategory, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return category.LeaveCategory{}, category.ErrCategoryNotFound
}

func (f *fakeCategoryRepo) List(ctx context.Context, activeOnly bool) ([]category.LeaveCategory, error) {
	var out []category.LeaveCategory
	for _, c := range f.categories {
		if !activeOnly || c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, c category.LeaveCategory) error {
	if _, ok := f.categories[c.ID]; !ok {
		return category.ErrCategoryNotFound
	}
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.categories[id]; !ok {
		return category.ErrCategoryNotFound
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryRepo) IsReferenced(ctx context.Context, id string) (bool, error) {
	return false, nil
}

type fakeAllotmentRepo struct {
	allotments map[string]*leave.Allotment
}

func pairKey(employeeID, categoryID string) string {
	return employeeID + "/" + categoryID
}

func (f *fakeAllotmentRepo) Create(ctx context.Context, a leave.Allotment) (leave.Allotment, error) {
	key := pairKey(a.EmployeeID, a.CategoryID)
	if _, ok := f.allotments[key]; ok {
		return leave.Allotment{}, leave.ErrDuplicateAllotment
	}
	a.ID = fmt.Sprintf("allot-%d", len(f.allotments)+1)
	f.allotments[key] = &a
	return a, nil
}

func (f *fakeAllotmentRepo) GetByID(ctx context.Context, id string) (leave.Allotment, error) {
	for _, a := range f.allotments {
		if a.ID == id {
			return *a, nil
		}
	}
	return leave.Allotment{}, leave.ErrAllotmentNotFound
}

func (f *fakeAllotmentRepo) GetByEmployeeAndCategory(ctx context.Context, employeeID, categoryID string) (leave.Allotment, error) {
	a, ok := f.allotments[pairKey(employeeID, categoryID)]
	if !ok {
		return leave.Allotment{}, leave.ErrNotAllotted
	}
	return *a, nil
}

func (f *fakeAllotmentRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Allotment, error) {
	var out []leave.Allotment
	for _, a := range f.allotments {
		if a.EmployeeID == employeeID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAllotmentRepo) ListAll(ctx context.Context) ([]leave.Allotment, error) {
	var out []leave.Allotment
	for _, a := range f.allotments {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAllotmentRepo) Update(ctx context.Context, a leave.Allotment) error {
	for key, existing := range f.allotments {
		if existing.ID == a.ID {
			delete(f.allotments, key)
			f.allotments[pairKey(a.EmployeeID, a.CategoryID)] = &a
			return nil
		}
	}
	return leave.ErrAllotmentNotFound
}

func (f *fakeAllotmentRepo) UpdateRemaining(ctx context.Context, allotmentID string, remaining leave.Amount) error {
	for _, a := range f.allotments {
		if a.ID == allotmentID {
			a.Remaining = remaining
			return nil
		}
	}
	return leave.ErrAllotmentNotFound
}

func (f *fakeAllotmentRepo) Delete(ctx context.Context, id string) error {
	for key, a := range f.allotments {
		if a.ID == id {
			delete(f.allotments, key)
			return nil
		}
	}
	return leave.ErrAllotmentNotFound
}

type fakeRequestRepo struct {
	requests []*leave.LeaveRequest
	nextID   int
}

func (f *fakeRequestRepo) Create(ctx context.Context, r leave.LeaveRequest) (leave.LeaveRequest, error) {
	if r.Source == leave.SourceSystem {
		for _, existing := range f.requests {
			if existing.Source == leave.SourceSystem &&
				existing.EmployeeID == r.EmployeeID &&
				existing.CategoryID == r.CategoryID &&
				existing.StartDate.Equal(r.StartDate) {
				return leave.LeaveRequest{}, leave.ErrDuplicateDeduction
			}
		}
	}
	f.nextID++
	r.ID = fmt.Sprintf("req-%d", f.nextID)
	f.requests = append(f.requests, &r)
	return r, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	for _, r := range f.requests {
		if r.ID == id {
			return *r, nil
		}
	}
	return leave.LeaveRequest{}, leave.ErrRequestNotFound
}

func (f *fakeRequestRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.EmployeeID == employeeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByStatus(ctx context.Context, status leave.RequestStatus) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if status == "" || r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListApprovedByPair(ctx context.Context, employeeID, categoryID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.CategoryID == categoryID && r.Status == leave.StatusApproved {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, r leave.LeaveRequest) error {
	for _, existing := range f.requests {
		if existing.ID == r.ID {
			*existing = r
			return nil
		}
	}
	return leave.ErrRequestNotFound
}

func (f *fakeRequestRepo) Delete(ctx context.Context, id string) error {
	for i, r := range f.requests {
		if r.ID == id {
			f.requests = append(f.requests[:i], f.requests[i+1:]...)
			return nil
		}
	}
	return leave.ErrRequestNotFound
}

func (f *fakeRequestRepo) SumApproved(ctx context.Context, employeeID, categoryID, excludeRequestID string) (leave.AmountTotals, error) {
	totals := leave.AmountTotals{Days: decimal.Zero}
	for _, r := range f.requests {
		if r.EmployeeID != employeeID || r.CategoryID != categoryID || r.Status != leave.StatusApproved {
			continue
		}
		if excludeRequestID != "" && r.ID == excludeRequestID {
			continue
		}
		totals.Days = totals.Days.Add(r.Amount.Days)
		totals.Minutes += r.Amount.TotalMinutes()
	}
	return totals, nil
}

func (f *fakeRequestRepo) HasSystemDeductionOn(ctx context.Context, employeeID, categoryID string, day time.Time) (bool, error) {
	for _, r := range f.requests {
		if r.Source == leave.SourceSystem && r.EmployeeID == employeeID &&
			r.CategoryID == categoryID && r.StartDate.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

type noopNotifier struct{}

func (noopNotifier) NotifySubmitted(ctx context.Context, req leave.LeaveRequest) {}
func (noopNotifier) NotifyDecided(ctx context.Context, req leave.LeaveRequest)   {}
func (noopNotifier) NotifyPenalty(ctx context.Context, p penalty.Penalty)        {}

type workflowFixture struct {
	categories *fakeCategoryRepo
	allotments *fakeAllotmentRepo
	requests   *fakeRequestRepo
	svc        *WorkflowServiceImpl

	dayCategory category.LeaveCategory
	hmCategory  category.LeaveCategory
}

var (
	employeeActor = user.Actor{UserID: "u-1", EmployeeID: "emp-1", Role: user.RoleEmployee}
	hrActor       = user.Actor{UserID: "u-2", EmployeeID: "emp-hr", Role: user.RoleHR}
)

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	f := &workflowFixture{
		categories: &fakeCategoryRepo{categories: make(map[string]category.LeaveCategory)},
		allotments: &fakeAllotmentRepo{allotments: make(map[string]*leave.Allotment)},
		requests:   &fakeRequestRepo{},
	}
	var err error
	f.dayCategory, err = f.categories.Create(context.Background(), category.LeaveCategory{
		Name: "Annual", Unit: category.UnitDays, IsActive: true,
	})
	require.NoError(t, err)
	f.hmCategory, err = f.categories.Create(context.Background(), category.LeaveCategory{
		Name: "Short Leave", Unit: category.UnitHoursMinutes, IsActive: true,
	})
	require.NoError(t, err)

	ledger := ledgerService.NewLedgerService(f.allotments, f.requests)
	f.svc = NewWorkflowService(nil, f.categories, f.allotments, f.requests, ledger, noopNotifier{})
	return f
}

func (f *workflowFixture) allot(t *testing.T, employeeID string, cat category.LeaveCategory, granted leave.Amount) {
	t.Helper()
	_, err := f.allotments.Create(context.Background(), leave.Allotment{
		EmployeeID: employeeID,
		CategoryID: cat.ID,
		Granted:    granted,
		Remaining:  granted,
	})
	require.NoError(t, err)
}

func (f *workflowFixture) submit(t *testing.T, actor user.Actor, req leave.SubmitRequestRequest) leave.RequestResponse {
	t.Helper()
	resp, err := f.svc.Submit(context.Background(), actor, req)
	require.NoError(t, err)
	return resp
}

func TestSubmitFullDayRange(t *testing.T) {
	f := newWorkflowFixture(t)
	f.allot(t, "emp-1", f.dayCategory, leave.DaysFloat(10))

	resp := f.submit(t, employeeActor, leave.SubmitRequestRequest{
		CategoryID: f.dayCategory.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-09",
		Reason:     "family trip",
	})

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 3.0, resp.Amount.Days)
	assert.Equal(t, "employee", resp.Source)
}

func TestSubmitHalfDay(t *testing.T) {
	f := newWorkflowFixture(t)
	f.allot(t, "emp-1", f.dayCategory, leave.DaysFloat(2))

	resp := f.submit(t, employeeActor, leave.SubmitRequestRequest{
		CategoryID: f.dayCategory.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-07",
		Reason:     "appointment",
		HalfDay:    "first_half",
	})

	assert.Equal(t, 0.5, resp.Amount.Days)
}

func TestSubmitShortLeave(t *testing.T) {
	f := newWorkflowFixture(t)
	f.allot(t, "emp-1", f.hmCategory, leave.HoursMinutes(2, 0))

	resp := f.submit(t, employeeActor, leave.SubmitRequestRequest{
		CategoryID: f.hmCategory.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-07",
		Reason:     "errand",
		ShortStart: "09:00",
		ShortEnd:   "10:30",
	})

	assert.Equal(t, 1, resp.Amount.Hours)
	assert.Equal(t, 30, resp.Amount.Minutes)
}

func TestSubmitWithoutAllotment(t *testing.T) {
	f := newWorkflowFixture(t)

	_, err := f.svc.Submit(context.Background(), employeeActor, leave.SubmitRequestRequest{
		CategoryID: f.dayCategory.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-07",
		Reason:     "trip",
	})
	assert.ErrorIs(t, err, leave.ErrNotAllotted)
}

func TestSubmitInsufficientBalance(t *testing.T) {
	f := newWorkflowFixture(t)
	f.allot(t, "emp-1", f.dayCategory, leave.DaysFloat(1))

	_, err := f.svc.Submit(context.Background(), employeeActor, leave.SubmitRequestRequest{
		CategoryID: f.dayCategory.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-09",
		Reason:     "trip",
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestSubmitExactRemainingSucceeds(t *testing.T) {
	f := newWorkflowFixture(t)
	f.allot(t, "emp-1", f.dayCategory, leave.DaysFloat(3))

	resp := f.submit(t, employeeActor, leave.SubmitRequestRequest{
		CategoryID: f.dayCategory.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-09",
		Reason:     "exact fit",
	})
	assert.Equal(t, 3.0, resp.Amount.Days)
}

func TestSubmitInactiveCategory(t *testing.T) {
	f := newWorkflowFixture(t)
	inactive, err := f.categories.Create(context.Background(), category.LeaveCategory{
		Name: "Retired", Unit: category.UnitDays, IsActive: false,
	})
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), employeeActor, leave.SubmitRequestRequest{
		CategoryID: inactive.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-07",
		Reason:     "trip",
	})
	assert.ErrorIs(t, err, category.ErrInvalidCategory)
}

func TestSubmitOnBehalfRequiresApprover(t *testing.T) {
	f := newWorkflowFixture(t)
	f.allot(t, "emp-2", f.dayCategory, leave.DaysFloat(5))

	_, err := f.svc.Submit(context.Background(), employeeActor, leave.SubmitRequestRequest{
		EmployeeID: "emp-2",
		CategoryID: f.dayCategory.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-07",
		Reason:     "on behalf",
	})
	assert.ErrorIs(t, err, user.ErrUnauthorized)

	resp, err := f.svc.Submit(context.Background(), hrActor, leave.SubmitRequestRequest{
		EmployeeID: "emp-2",
		CategoryID: f.dayCategory.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-07",
		Reason:     "on behalf",
	})
	require.NoError(t, err)
	assert.Equal(t, "emp-2", resp.EmployeeID)
}

func TestApproveDeductsBalance(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	f.allot(t, "emp-1", f.dayCategory, leave.DaysFloat(10))

	resp := f.submit(t, employeeActor, leave.SubmitRequestRequest{
		CategoryID: f.dayCategory.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-09",
		Reason:     "trip",
	})

	decided, err := f.svc.Decide(ctx, hrActor, leave.DecideRequestRequest{
		RequestID: resp.ID,
		Decision:  "approve",
	})
	require.NoError(t, err)
	assert.Equal(t, "approved", decided.Status)

	a, err := f.allotments.GetByEmployeeAndCategory(ctx, "emp-1", f.dayCategory.ID)
	require.NoError(t, err)
	assert.Equal(t, "7.0 day(s)", a.Remaining.String())
}

func TestApproveThenRejectRestoresBalance(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	f.allot(t, "emp-1", f.dayCategory, leave.DaysFloat(10))

	resp := f.submit(t, employeeActor, leave.SubmitRequestRequest{
		CategoryID: f.dayCategory.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-09",
		Reason:     "trip",
	})

	_, err := f.svc.Decide(ctx, hrActor, leave.DecideRequestRequest{
		RequestID: resp.ID,
		Decision:  "approve",
	})
	require.NoError(t, err)

	_, err = f.svc.Decide(ctx, hrActor, leave.DecideRequestRequest{
		RequestID:       resp.ID,
		Decision:        "reject",
		RejectionReason: "schedule conflict",
	})
	require.NoError(t, err)

	a, err := f.allotments.GetByEmployeeAndCategory(ctx, "emp-1", f.dayCategory.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.0 day(s)", a.Remaining.String())
}

func TestDecideTerminalStates(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	f.allot(t, "emp-1", f.dayCategory, leave.DaysFloat(10))

	resp := f.submit(t, employeeActor, leave.SubmitRequestRequest{
		CategoryID: f.dayCategory.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-07",
		Reason:     "trip",
	})

	_, err := f.svc.Decide(ctx, hrActor, leave.DecideRequestRequest{
		RequestID:       resp.ID,
		Decision:        "reject",
		RejectionReason: "no",
	})
	require.NoError(t, err)

	// Rejected is terminal for both decisions.
	_, err = f.svc.Decide(ctx, hrActor, leave.DecideRequestRequest{
		RequestID: resp.ID,
		Decision:  "approve",
	})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)

	_, err = f.svc.Decide(ctx, hrActor, leave.DecideRequestRequest{
		RequestID:       resp.ID,
		Decision:        "reject",
		RejectionReason: "again",
	})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestSelfApprovalForbidden(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	f.allot(t, hrActor.EmployeeID, f.dayCategory, leave.DaysFloat(10))

	resp := f.submit(t, hrActor, leave.SubmitRequestRequest{
		CategoryID: f.dayCategory.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-07",
		Reason:     "own request",
	})

	_, err := f.svc.Decide(ctx, hrActor, leave.DecideRequestRequest{
		RequestID: resp.ID,
		Decision:  "approve",
	})
	assert.ErrorIs(t, err, leave.ErrSelfApprovalNotAllowed)
}

func TestApproveReChecksBalance(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	f.allot(t, "emp-1", f.dayCategory, leave.DaysFloat(3))

	first := f.submit(t, employeeActor, leave.SubmitRequestRequest{
		CategoryID: f.dayCategory.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-09",
		Reason:     "trip one",
	})
	second := f.submit(t, employeeActor, leave.SubmitRequestRequest{
		CategoryID: f.dayCategory.ID,
		StartDate:  "2026-09-14",
		EndDate:    "2026-09-15",
		Reason:     "trip two",
	})

	_, err := f.svc.Decide(ctx, hrActor, leave.DecideRequestRequest{
		RequestID: first.ID,
		Decision:  "approve",
	})
	require.NoError(t, err)

	// The second pending request no longer fits.
	_, err = f.svc.Decide(ctx, hrActor, leave.DecideRequestRequest{
		RequestID: second.ID,
		Decision:  "approve",
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestDeleteRequestRules(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	f.allot(t, "emp-1", f.dayCategory, leave.DaysFloat(10))

	resp := f.submit(t, employeeActor, leave.SubmitRequestRequest{
		CategoryID: f.dayCategory.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-07",
		Reason:     "trip",
	})

	// Another employee cannot withdraw it.
	other := user.Actor{UserID: "u-3", EmployeeID: "emp-3", Role: user.RoleEmployee}
	err := f.svc.DeleteRequest(ctx, other, resp.ID)
	assert.ErrorIs(t, err, user.ErrUnauthorized)

	// The owner can while it is pending.
	require.NoError(t, f.svc.DeleteRequest(ctx, employeeActor, resp.ID))
	_, err = f.requests.GetByID(ctx, resp.ID)
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
}

func TestDeleteApprovedRequestRestoresBalance(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	f.allot(t, "emp-1", f.dayCategory, leave.DaysFloat(10))

	resp := f.submit(t, employeeActor, leave.SubmitRequestRequest{
		CategoryID: f.dayCategory.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-09",
		Reason:     "trip",
	})
	_, err := f.svc.Decide(ctx, hrActor, leave.DecideRequestRequest{
		RequestID: resp.ID,
		Decision:  "approve",
	})
	require.NoError(t, err)

	// Owner cannot withdraw once approved; an approver can, and the balance
	// comes back.
	err = f.svc.DeleteRequest(ctx, employeeActor, resp.ID)
	assert.ErrorIs(t, err, user.ErrUnauthorized)

	require.NoError(t, f.svc.DeleteRequest(ctx, hrActor, resp.ID))
	a, err := f.allotments.GetByEmployeeAndCategory(ctx, "emp-1", f.dayCategory.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.0 day(s)", a.Remaining.String())
}

func TestCreateAllotmentDuplicate(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	req := leave.CreateAllotmentRequest{
		EmployeeID:  "emp-1",
		CategoryID:  f.dayCategory.ID,
		GrantedDays: 12,
	}
	_, err := f.svc.CreateAllotment(ctx, hrActor, req)
	require.NoError(t, err)

	_, err = f.svc.CreateAllotment(ctx, hrActor, req)
	assert.ErrorIs(t, err, leave.ErrDuplicateAllotment)
}

func TestCreateAllotmentRequiresApprover(t *testing.T) {
	f := newWorkflowFixture(t)

	_, err := f.svc.CreateAllotment(context.Background(), employeeActor, leave.CreateAllotmentRequest{
		EmployeeID:  "emp-1",
		CategoryID:  f.dayCategory.ID,
		GrantedDays: 12,
	})
	assert.ErrorIs(t, err, user.ErrHRAccessRequired)
}

func TestEditAllotmentRecomputes(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	f.allot(t, "emp-1", f.dayCategory, leave.DaysFloat(10))

	resp := f.submit(t, employeeActor, leave.SubmitRequestRequest{
		CategoryID: f.dayCategory.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-09",
		Reason:     "trip",
	})
	_, err := f.svc.Decide(ctx, hrActor, leave.DecideRequestRequest{
		RequestID: resp.ID,
		Decision:  "approve",
	})
	require.NoError(t, err)

	a, err := f.allotments.GetByEmployeeAndCategory(ctx, "emp-1", f.dayCategory.ID)
	require.NoError(t, err)

	newGrant := 5.0
	updated, err := f.svc.EditAllotment(ctx, hrActor, leave.UpdateAllotmentRequest{
		ID:          a.ID,
		GrantedDays: &newGrant,
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, updated.Granted.Days)
	assert.Equal(t, 2.0, updated.Remaining.Days)
}

func TestLedgerHistory(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	f.allot(t, "emp-1", f.dayCategory, leave.DaysFloat(10))

	resp := f.submit(t, employeeActor, leave.SubmitRequestRequest{
		CategoryID: f.dayCategory.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-08",
		Reason:     "trip",
	})
	_, err := f.svc.Decide(ctx, hrActor, leave.DecideRequestRequest{
		RequestID: resp.ID,
		Decision:  "approve",
	})
	require.NoError(t, err)

	history, err := f.svc.LedgerHistory(ctx, employeeActor, "", f.dayCategory.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.0, history.Allotment.Remaining.Days)
	require.Len(t, history.Entries, 1)
	assert.Equal(t, resp.ID, history.Entries[0].ID)

	// Employees cannot read another employee's ledger.
	_, err = f.svc.LedgerHistory(ctx, employeeActor, "emp-2", f.dayCategory.ID)
	assert.ErrorIs(t, err, user.ErrUnauthorized)
}

func TestSubmitRejectsUnitMismatch(t *testing.T) {
	f := newWorkflowFixture(t)
	f.allot(t, "emp-1", f.hmCategory, leave.HoursMinutes(4, 0))

	// A plain date-range request against an hour+minute category.
	_, err := f.svc.Submit(context.Background(), employeeActor, leave.SubmitRequestRequest{
		CategoryID: f.hmCategory.ID,
		StartDate:  "2026-09-07",
		EndDate:    "2026-09-07",
		Reason:     "trip",
	})
	assert.ErrorIs(t, err, leave.ErrUnitMismatch)
}
