package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/peoplehub/hr-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAllotmentRepo struct {
	allotments map[string]*leave.Allotment
}

func newFakeAllotmentRepo() *fakeAllotmentRepo {
	return &fakeAllotmentRepo{allotments: make(map[string]*leave.Allotment)}
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

func seedAllotment(t *testing.T, repo *fakeAllotmentRepo, employeeID, categoryID string, granted leave.Amount) leave.Allotment {
	t.Helper()
	a, err := repo.Create(context.Background(), leave.Allotment{
		EmployeeID: employeeID,
		CategoryID: categoryID,
		Granted:    granted,
		Remaining:  granted,
	})
	require.NoError(t, err)
	return a
}

func approvedRequest(t *testing.T, repo *fakeRequestRepo, employeeID, categoryID string, amount leave.Amount) leave.LeaveRequest {
	t.Helper()
	r, err := repo.Create(context.Background(), leave.LeaveRequest{
		EmployeeID: employeeID,
		CategoryID: categoryID,
		Amount:     amount,
		Status:     leave.StatusApproved,
		Source:     leave.SourceEmployee,
	})
	require.NoError(t, err)
	return r
}

func TestRecomputeDerivesRemaining(t *testing.T) {
	ctx := context.Background()
	allotments := newFakeAllotmentRepo()
	requests := &fakeRequestRepo{}
	svc := NewLedgerService(allotments, requests)

	seedAllotment(t, allotments, "emp-1", "cat-1", leave.DaysFloat(10))
	approvedRequest(t, requests, "emp-1", "cat-1", leave.DaysFloat(1))
	approvedRequest(t, requests, "emp-1", "cat-1", leave.DaysFloat(1))
	approvedRequest(t, requests, "emp-1", "cat-1", leave.DaysFloat(1))

	remaining, err := svc.Recompute(ctx, "emp-1", "cat-1")
	require.NoError(t, err)
	assert.Equal(t, "7.0 day(s)", remaining.String())

	stored, err := allotments.GetByEmployeeAndCategory(ctx, "emp-1", "cat-1")
	require.NoError(t, err)
	assert.Equal(t, "7.0 day(s)", stored.Remaining.String())
}

func TestRecomputeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	allotments := newFakeAllotmentRepo()
	requests := &fakeRequestRepo{}
	svc := NewLedgerService(allotments, requests)

	seedAllotment(t, allotments, "emp-1", "cat-1", leave.DaysFloat(10))
	approvedRequest(t, requests, "emp-1", "cat-1", leave.DaysFloat(2.5))

	first, err := svc.Recompute(ctx, "emp-1", "cat-1")
	require.NoError(t, err)
	second, err := svc.Recompute(ctx, "emp-1", "cat-1")
	require.NoError(t, err)
	assert.Equal(t, 0, first.Cmp(second))
	assert.Equal(t, "7.5 day(s)", second.String())
}

func TestRecomputeClampsAtZero(t *testing.T) {
	ctx := context.Background()
	allotments := newFakeAllotmentRepo()
	requests := &fakeRequestRepo{}
	svc := NewLedgerService(allotments, requests)

	seedAllotment(t, allotments, "emp-1", "cat-1", leave.DaysFloat(1))
	approvedRequest(t, requests, "emp-1", "cat-1", leave.DaysFloat(2))

	remaining, err := svc.Recompute(ctx, "emp-1", "cat-1")
	require.NoError(t, err)
	assert.True(t, remaining.IsZero())
}

func TestRecomputeHoursMinutes(t *testing.T) {
	ctx := context.Background()
	allotments := newFakeAllotmentRepo()
	requests := &fakeRequestRepo{}
	svc := NewLedgerService(allotments, requests)

	seedAllotment(t, allotments, "emp-1", "cat-hm", leave.HoursMinutes(2, 0))
	approvedRequest(t, requests, "emp-1", "cat-hm", leave.HoursMinutes(1, 30))

	remaining, err := svc.Recompute(ctx, "emp-1", "cat-hm")
	require.NoError(t, err)
	assert.Equal(t, "0h30m", remaining.String())
}

func TestCheckSufficientBalance(t *testing.T) {
	ctx := context.Background()
	allotments := newFakeAllotmentRepo()
	requests := &fakeRequestRepo{}
	svc := NewLedgerService(allotments, requests)

	seedAllotment(t, allotments, "emp-1", "cat-1", leave.DaysFloat(3))
	approvedRequest(t, requests, "emp-1", "cat-1", leave.DaysFloat(2))

	// Exactly the remaining balance is allowed.
	err := svc.CheckSufficientBalance(ctx, "emp-1", "cat-1", leave.DaysFloat(1), "")
	assert.NoError(t, err)

	err = svc.CheckSufficientBalance(ctx, "emp-1", "cat-1", leave.DaysFloat(1.5), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	var insufficient *leave.InsufficientBalanceError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "1.0 day(s)", insufficient.Remaining.String())
	assert.Equal(t, "1.5 day(s)", insufficient.Requested.String())
}

func TestCheckSufficientBalanceExcludesRequest(t *testing.T) {
	ctx := context.Background()
	allotments := newFakeAllotmentRepo()
	requests := &fakeRequestRepo{}
	svc := NewLedgerService(allotments, requests)

	seedAllotment(t, allotments, "emp-1", "cat-1", leave.DaysFloat(2))
	r := approvedRequest(t, requests, "emp-1", "cat-1", leave.DaysFloat(2))

	// Counting itself the request would not fit; excluded, it does.
	err := svc.CheckSufficientBalance(ctx, "emp-1", "cat-1", r.Amount, "")
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	err = svc.CheckSufficientBalance(ctx, "emp-1", "cat-1", r.Amount, r.ID)
	assert.NoError(t, err)
}

func TestCheckSufficientBalanceUnitMismatch(t *testing.T) {
	ctx := context.Background()
	allotments := newFakeAllotmentRepo()
	requests := &fakeRequestRepo{}
	svc := NewLedgerService(allotments, requests)

	seedAllotment(t, allotments, "emp-1", "cat-1", leave.DaysFloat(2))

	err := svc.CheckSufficientBalance(ctx, "emp-1", "cat-1", leave.FromMinutes(60), "")
	assert.ErrorIs(t, err, leave.ErrUnitMismatch)
}

func TestCheckSufficientBalanceNotAllotted(t *testing.T) {
	ctx := context.Background()
	svc := NewLedgerService(newFakeAllotmentRepo(), &fakeRequestRepo{})

	err := svc.CheckSufficientBalance(ctx, "emp-1", "cat-1", leave.DaysFloat(1), "")
	assert.ErrorIs(t, err, leave.ErrNotAllotted)
}

func TestRestorationAfterRejection(t *testing.T) {
	ctx := context.Background()
	allotments := newFakeAllotmentRepo()
	requests := &fakeRequestRepo{}
	svc := NewLedgerService(allotments, requests)

	seedAllotment(t, allotments, "emp-1", "cat-1", leave.DaysFloat(10))
	r := approvedRequest(t, requests, "emp-1", "cat-1", leave.DaysFloat(3))

	require.NoError(t, svc.ApplyDeduction(ctx, r.ID))
	stored, _ := allotments.GetByEmployeeAndCategory(ctx, "emp-1", "cat-1")
	assert.Equal(t, "7.0 day(s)", stored.Remaining.String())

	// Revoking the approval restores the balance through the same recompute.
	r.Status = leave.StatusRejected
	require.NoError(t, requests.UpdateStatus(ctx, r))
	require.NoError(t, svc.ApplyRestoration(ctx, r.ID))

	stored, _ = allotments.GetByEmployeeAndCategory(ctx, "emp-1", "cat-1")
	assert.Equal(t, "10.0 day(s)", stored.Remaining.String())
}

func TestReconcileAll(t *testing.T) {
	ctx := context.Background()
	allotments := newFakeAllotmentRepo()
	requests := &fakeRequestRepo{}
	svc := NewLedgerService(allotments, requests)

	seedAllotment(t, allotments, "emp-1", "cat-1", leave.DaysFloat(5))
	seedAllotment(t, allotments, "emp-2", "cat-1", leave.DaysFloat(8))
	approvedRequest(t, requests, "emp-2", "cat-1", leave.DaysFloat(3))

	// Simulate a drifted remaining value.
	a, _ := allotments.GetByEmployeeAndCategory(ctx, "emp-2", "cat-1")
	require.NoError(t, allotments.UpdateRemaining(ctx, a.ID, leave.DaysFloat(8)))

	count, err := svc.ReconcileAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	fixed, _ := allotments.GetByEmployeeAndCategory(ctx, "emp-2", "cat-1")
	assert.Equal(t, "5.0 day(s)", fixed.Remaining.String())
}
