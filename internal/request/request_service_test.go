package request

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"leavehub/internal/policy"
	policyerrors "leavehub/internal/policy/errors"
	requesterrors "leavehub/internal/request/errors"
	"leavehub/internal/shared/apperror"
	"leavehub/internal/user"
)

func codeOf(err error) string { return apperror.CodeOf(err) }

func detailsOf(t *testing.T, err error) any {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Details
}

type fakeRepo struct {
	requests map[uuid.UUID]*LeaveRequest
	used     map[string]int
	sumErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		requests: make(map[uuid.UUID]*LeaveRequest),
		used:     make(map[string]int),
	}
}

func (r *fakeRepo) WithTx(_ *sql.Tx) Repository { return r }

func (r *fakeRepo) seed(l LeaveRequest) {
	cp := l
	r.requests[l.ID] = &cp
}

func (r *fakeRepo) Create(_ context.Context, l *LeaveRequest) error {
	cp := *l
	r.requests[l.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*LeaveRequest, error) {
	l, ok := r.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *fakeRepo) Update(_ context.Context, l *LeaveRequest) error {
	cp := *l
	r.requests[l.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByUser(_ context.Context, userID uuid.UUID, statuses []string) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, l := range r.requests {
		if l.UserID != userID {
			continue
		}
		if len(statuses) > 0 && !contains(statuses, l.Status) {
			continue
		}
		out = append(out, *l)
	}
	return out, nil
}

func (r *fakeRepo) FindOverlapping(_ context.Context, userID uuid.UUID, start, end time.Time, statuses []string) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, l := range r.requests {
		if l.UserID != userID || !contains(statuses, l.Status) {
			continue
		}
		if !l.StartDate.After(end) && !l.EndDate.Before(start) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindByApprover(_ context.Context, approverID uuid.UUID, status string) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, l := range r.requests {
		if l.ApproverID != nil && *l.ApproverID == approverID && l.Status == status {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindByStatus(_ context.Context, status string) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, l := range r.requests {
		if l.Status == status {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindByStartDate(_ context.Context, date time.Time, status string) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, l := range r.requests {
		if l.StartDate.Equal(date) && l.Status == status {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeRepo) SumApprovedDays(_ context.Context, _ uuid.UUID, category, name string) (int, error) {
	if r.sumErr != nil {
		return 0, r.sumErr
	}
	return r.used[category+"/"+name], nil
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByExternalID(_ context.Context, externalID string) (*user.User, error) {
	for _, u := range f.users {
		if u.ExternalID == externalID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepo) FindByManager(_ context.Context, _ uuid.UUID) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) HasReports(_ context.Context, _ uuid.UUID) (bool, error) { return false, nil }

func (f *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	f.users[u.ID] = u
	return nil
}

type fakePolicyService struct {
	policies map[string]policy.LeaveTypePolicy
}

func newFakePolicyService(policies ...policy.LeaveTypePolicy) *fakePolicyService {
	f := &fakePolicyService{policies: make(map[string]policy.LeaveTypePolicy)}
	for _, p := range policies {
		f.policies[p.Category+"/"+p.Name] = p
	}
	return f
}

func (f *fakePolicyService) Get(_ context.Context, category, name string) (policy.LeaveTypePolicy, error) {
	p, ok := f.policies[category+"/"+name]
	if !ok {
		return policy.LeaveTypePolicy{}, policyerrors.ErrPolicyNotFound
	}
	return p, nil
}

func (f *fakePolicyService) List(_ context.Context) ([]policy.PolicyResponse, error) {
	var out []policy.PolicyResponse
	for _, p := range f.policies {
		out = append(out, policy.PolicyResponse{
			ID:                   p.ID.String(),
			Category:             p.Category,
			Name:                 p.Name,
			AnnualAllowanceDays:  p.AnnualAllowanceDays,
			IsUnlimited:          p.IsUnlimited,
			CountsAgainstBalance: p.CountsAgainstBalance,
			EligibilityRule:      p.EligibilityRule,
		})
	}
	return out, nil
}

func (f *fakePolicyService) Patch(_ context.Context, _, _ string, _ policy.UpdatePolicyRequest) (policy.PolicyResponse, error) {
	return policy.PolicyResponse{}, errors.New("not implemented")
}

func intPtr(v int) *int { return &v }

func vacationPolicy(allowance int) policy.LeaveTypePolicy {
	return policy.LeaveTypePolicy{
		ID:                   uuid.New(),
		Category:             "pto",
		Name:                 "vacation",
		AnnualAllowanceDays:  intPtr(allowance),
		CountsAgainstBalance: true,
		EligibilityRule:      policy.RuleNone,
	}
}

func sickPolicy() policy.LeaveTypePolicy {
	return policy.LeaveTypePolicy{
		ID:              uuid.New(),
		Category:        "pto",
		Name:            "sick",
		IsUnlimited:     true,
		EligibilityRule: policy.RuleNone,
	}
}

type fixture struct {
	svc      Service
	repo     *fakeRepo
	mock     sqlmock.Sqlmock
	employee *user.User
	manager  *user.User
	admin    *user.User
}

func newFixture(t *testing.T, policies ...policy.LeaveTypePolicy) *fixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	manager := &user.User{ID: uuid.New(), ExternalID: "mgr-1", DisplayName: "Morgan"}
	employee := &user.User{ID: uuid.New(), ExternalID: "emp-1", DisplayName: "Evan", ManagerID: &manager.ID}
	admin := &user.User{ID: uuid.New(), ExternalID: "adm-1", DisplayName: "Alex", IsAdmin: true}

	repo := newFakeRepo()
	if len(policies) == 0 {
		policies = []policy.LeaveTypePolicy{vacationPolicy(25), sickPolicy()}
	}

	svc := NewService(db, repo, newFakeUserRepo(employee, manager, admin), newFakePolicyService(policies...))
	return &fixture{
		svc:      svc,
		repo:     repo,
		mock:     mock,
		employee: employee,
		manager:  manager,
		admin:    admin,
	}
}

func (f *fixture) expectTx() {
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
}

func (f *fixture) expectTxRollback() {
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
}

func submitWeek(f *fixture, t *testing.T) RequestResponse {
	t.Helper()
	f.expectTx()
	resp, err := f.svc.Submit(context.Background(), f.employee.ID.String(), SubmitRequest{
		Category:  "pto",
		Type:      "vacation",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-06",
	})
	require.NoError(t, err)
	return resp
}

func TestSubmit_HappyPath(t *testing.T) {
	f := newFixture(t)

	resp := submitWeek(f, t)

	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, 5, resp.DaysCount)
	require.NotNil(t, resp.ApproverID)
	assert.Equal(t, f.manager.ID.String(), *resp.ApproverID)
	assert.Nil(t, resp.DecidedBy)
	assert.Nil(t, resp.DecidedAt)
}

func TestSubmit_UnknownTypeRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), f.employee.ID.String(), SubmitRequest{
		Category:  "pto",
		Type:      "sabbatical",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-06",
	})
	assert.ErrorIs(t, err, requesterrors.ErrInvalidType)
	assert.Empty(t, f.repo.requests)
}

func TestSubmit_InvalidDateRanges(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name       string
		start, end string
	}{
		{"end before start", "2026-03-06", "2026-03-02"},
		{"weekend only", "2026-03-07", "2026-03-08"},
		{"unparsable", "03/02/2026", "03/06/2026"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Submit(context.Background(), f.employee.ID.String(), SubmitRequest{
				Category:  "pto",
				Type:      "vacation",
				StartDate: tc.start,
				EndDate:   tc.end,
			})
			assert.ErrorIs(t, err, requesterrors.ErrInvalidDateRange)
		})
	}
	assert.Empty(t, f.repo.requests)
}

func TestSubmit_UnlimitedTypeNeverExceedsBalance(t *testing.T) {
	f := newFixture(t)
	f.repo.used["pto/sick"] = 500

	f.expectTx()
	resp, err := f.svc.Submit(context.Background(), f.employee.ID.String(), SubmitRequest{
		Category:  "pto",
		Type:      "sick",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-06",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
}

func TestSubmit_BalanceExceeded(t *testing.T) {
	f := newFixture(t, vacationPolicy(10))
	f.repo.used["pto/vacation"] = 8

	f.expectTxRollback()
	_, err := f.svc.Submit(context.Background(), f.employee.ID.String(), SubmitRequest{
		Category:  "pto",
		Type:      "vacation",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
	})
	require.ErrorIs(t, err, requesterrors.BalanceExceeded(0, 0, 0, 0))

	httpErr := requesterrors.BalanceExceeded(3, 2, 10, 8)
	assert.Equal(t, httpErr.Details, detailsOf(t, err))
	assert.Empty(t, f.repo.requests)
}

func TestSubmit_WithinRemainingBalanceAccepted(t *testing.T) {
	f := newFixture(t, vacationPolicy(10))
	f.repo.used["pto/vacation"] = 8

	f.expectTx()
	resp, err := f.svc.Submit(context.Background(), f.employee.ID.String(), SubmitRequest{
		Category:  "pto",
		Type:      "vacation",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-03",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.DaysCount)
}

func TestSubmit_CappedButNotCounting(t *testing.T) {
	p := vacationPolicy(5)
	p.CountsAgainstBalance = false
	f := newFixture(t, p)
	f.repo.used["pto/vacation"] = 100

	f.expectTx()
	_, err := f.svc.Submit(context.Background(), f.employee.ID.String(), SubmitRequest{
		Category:  "pto",
		Type:      "vacation",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-06",
	})
	require.NoError(t, err)
}

func TestSubmit_OverlapRejected(t *testing.T) {
	f := newFixture(t)

	existing := submitWeek(f, t)

	f.expectTxRollback()
	_, err := f.svc.Submit(context.Background(), f.employee.ID.String(), SubmitRequest{
		Category:  "pto",
		Type:      "sick",
		StartDate: "2026-03-06",
		EndDate:   "2026-03-09",
	})
	require.ErrorIs(t, err, requesterrors.OverlapConflict(nil))

	details, ok := detailsOf(t, err).(requesterrors.OverlapConflictDetails)
	require.True(t, ok)
	require.Len(t, details.Conflicts, 1)
	assert.Equal(t, existing.ID, details.Conflicts[0].ID)
	assert.Equal(t, StatusPending, details.Conflicts[0].Status)
}

func TestSubmit_AdjacentDatesAccepted(t *testing.T) {
	f := newFixture(t)

	submitWeek(f, t)

	f.expectTx()
	_, err := f.svc.Submit(context.Background(), f.employee.ID.String(), SubmitRequest{
		Category:  "pto",
		Type:      "sick",
		StartDate: "2026-03-09",
		EndDate:   "2026-03-10",
	})
	require.NoError(t, err)
}

func TestSubmit_OverlapIgnoresSettledRequests(t *testing.T) {
	f := newFixture(t)
	f.repo.seed(LeaveRequest{
		ID:        uuid.New(),
		UserID:    f.employee.ID,
		Category:  "pto",
		Type:      "vacation",
		StartDate: mustDate(t, "2026-03-02"),
		EndDate:   mustDate(t, "2026-03-06"),
		DaysCount: 5,
		Status:    StatusDenied,
	})
	f.repo.seed(LeaveRequest{
		ID:        uuid.New(),
		UserID:    f.employee.ID,
		Category:  "pto",
		Type:      "vacation",
		StartDate: mustDate(t, "2026-03-02"),
		EndDate:   mustDate(t, "2026-03-06"),
		DaysCount: 5,
		Status:    StatusCancelled,
	})

	f.expectTx()
	_, err := f.svc.Submit(context.Background(), f.employee.ID.String(), SubmitRequest{
		Category:  "pto",
		Type:      "vacation",
		StartDate: "2026-03-04",
		EndDate:   "2026-03-05",
	})
	require.NoError(t, err)
}

func TestSubmit_StudentsOnlyEligibility(t *testing.T) {
	p := vacationPolicy(25)
	p.Name = "study"
	p.EligibilityRule = policy.RuleStudentsOnly
	f := newFixture(t, p)

	_, err := f.svc.Submit(context.Background(), f.employee.ID.String(), SubmitRequest{
		Category:  "pto",
		Type:      "study",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-06",
	})
	require.Error(t, err)
	assert.Equal(t, "INELIGIBLE", codeOf(err))
	assert.Empty(t, f.repo.requests, "rejected request must leave no record")

	f.employee.IsStudent = true
	f.expectTx()
	_, err = f.svc.Submit(context.Background(), f.employee.ID.String(), SubmitRequest{
		Category:  "pto",
		Type:      "study",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-06",
	})
	require.NoError(t, err)
}

func TestApprove_ByAssignedManager(t *testing.T) {
	f := newFixture(t)
	created := submitWeek(f, t)

	f.expectTx()
	resp, err := f.svc.Approve(context.Background(), f.manager.ID.String(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusApproved, resp.Status)
	require.NotNil(t, resp.DecidedBy)
	assert.Equal(t, f.manager.ID.String(), *resp.DecidedBy)
	assert.NotNil(t, resp.DecidedAt)
}

func TestDeny_ByAssignedManager(t *testing.T) {
	f := newFixture(t)
	created := submitWeek(f, t)

	f.expectTx()
	resp, err := f.svc.Deny(context.Background(), f.manager.ID.String(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDenied, resp.Status)
}

func TestDecide_RejectsNonApprover(t *testing.T) {
	f := newFixture(t)
	created := submitWeek(f, t)

	stranger := &user.User{ID: uuid.New(), ExternalID: "emp-2"}
	f.svc.(*service).users.(*fakeUserRepo).users[stranger.ID] = stranger

	f.expectTxRollback()
	_, err := f.svc.Approve(context.Background(), stranger.ID.String(), created.ID)
	assert.ErrorIs(t, err, requesterrors.ErrNotAuthorized)

	f.expectTxRollback()
	_, err = f.svc.Approve(context.Background(), f.employee.ID.String(), created.ID)
	assert.ErrorIs(t, err, requesterrors.ErrNotAuthorized)
}

func TestDecide_AdminMayDecideAny(t *testing.T) {
	f := newFixture(t)
	created := submitWeek(f, t)

	f.expectTx()
	resp, err := f.svc.Approve(context.Background(), f.admin.ID.String(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
}

func TestDecide_NoApproverAssigned(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()
	f.repo.seed(LeaveRequest{
		ID:        id,
		UserID:    f.employee.ID,
		Category:  "pto",
		Type:      "vacation",
		StartDate: mustDate(t, "2026-03-02"),
		EndDate:   mustDate(t, "2026-03-06"),
		DaysCount: 5,
		Status:    StatusPending,
	})

	f.expectTxRollback()
	_, err := f.svc.Approve(context.Background(), f.manager.ID.String(), id.String())
	assert.ErrorIs(t, err, requesterrors.ErrNoApproverAssigned)

	// admins step in when nobody is assigned
	f.expectTx()
	_, err = f.svc.Approve(context.Background(), f.admin.ID.String(), id.String())
	assert.NoError(t, err)
}

func TestDecide_NotPendingIsStable(t *testing.T) {
	f := newFixture(t)
	created := submitWeek(f, t)

	f.expectTx()
	approved, err := f.svc.Approve(context.Background(), f.manager.ID.String(), created.ID)
	require.NoError(t, err)

	f.expectTxRollback()
	_, err = f.svc.Approve(context.Background(), f.manager.ID.String(), created.ID)
	assert.ErrorIs(t, err, requesterrors.ErrNotPending)

	f.expectTxRollback()
	_, err = f.svc.Deny(context.Background(), f.manager.ID.String(), created.ID)
	assert.ErrorIs(t, err, requesterrors.ErrNotPending)

	// decision metadata untouched by the rejected attempts
	current, err := f.svc.GetByID(context.Background(), f.employee.ID.String(), created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, current.Status)
	assert.Equal(t, *approved.DecidedAt, *current.DecidedAt)
}

func TestDecide_RequestNotFound(t *testing.T) {
	f := newFixture(t)

	f.expectTxRollback()
	_, err := f.svc.Approve(context.Background(), f.manager.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, requesterrors.ErrRequestNotFound)
}

func TestCancel_OwnerCancelsPending(t *testing.T) {
	f := newFixture(t)
	created := submitWeek(f, t)

	f.expectTx()
	resp, err := f.svc.Cancel(context.Background(), f.employee.ID.String(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, resp.Status)
}

func TestCancel_OwnerCancelsApproved(t *testing.T) {
	f := newFixture(t)
	created := submitWeek(f, t)

	f.expectTx()
	_, err := f.svc.Approve(context.Background(), f.manager.ID.String(), created.ID)
	require.NoError(t, err)

	f.expectTx()
	resp, err := f.svc.Cancel(context.Background(), f.employee.ID.String(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, resp.Status)
}

func TestCancel_TerminalStateRejected(t *testing.T) {
	f := newFixture(t)
	created := submitWeek(f, t)

	f.expectTx()
	_, err := f.svc.Deny(context.Background(), f.manager.ID.String(), created.ID)
	require.NoError(t, err)

	f.expectTxRollback()
	_, err = f.svc.Cancel(context.Background(), f.employee.ID.String(), created.ID)
	assert.ErrorIs(t, err, requesterrors.ErrInvalidState)
}

func TestCancel_NonOwnerRejected(t *testing.T) {
	f := newFixture(t)
	created := submitWeek(f, t)

	f.expectTxRollback()
	_, err := f.svc.Cancel(context.Background(), f.manager.ID.String(), created.ID)
	assert.ErrorIs(t, err, requesterrors.ErrNotAuthorized)

	// admins must use the privileged operation, not impersonate owners
	f.expectTxRollback()
	_, err = f.svc.Cancel(context.Background(), f.admin.ID.String(), created.ID)
	assert.ErrorIs(t, err, requesterrors.ErrNotAuthorized)
}

func TestAdminCancel(t *testing.T) {
	f := newFixture(t)
	created := submitWeek(f, t)

	_, err := f.svc.AdminCancel(context.Background(), f.manager.ID.String(), created.ID)
	assert.ErrorIs(t, err, requesterrors.ErrNotAuthorized)

	f.expectTx()
	resp, err := f.svc.AdminCancel(context.Background(), f.admin.ID.String(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, resp.Status)

	f.expectTxRollback()
	_, err = f.svc.AdminCancel(context.Background(), f.admin.ID.String(), created.ID)
	assert.ErrorIs(t, err, requesterrors.ErrInvalidState)
}

func TestGetByID_Visibility(t *testing.T) {
	f := newFixture(t)
	created := submitWeek(f, t)

	_, err := f.svc.GetByID(context.Background(), f.employee.ID.String(), created.ID, false)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), f.manager.ID.String(), created.ID, false)
	assert.NoError(t, err)

	stranger := &user.User{ID: uuid.New(), ExternalID: "emp-3"}
	f.svc.(*service).users.(*fakeUserRepo).users[stranger.ID] = stranger
	_, err = f.svc.GetByID(context.Background(), stranger.ID.String(), created.ID, false)
	assert.ErrorIs(t, err, requesterrors.ErrNotAuthorized)

	_, err = f.svc.GetByID(context.Background(), stranger.ID.String(), created.ID, true)
	assert.NoError(t, err)
}

func TestList_AdminSeesAllPending(t *testing.T) {
	f := newFixture(t)
	submitWeek(f, t)

	own, err := f.svc.List(context.Background(), f.manager.ID.String(), false, "")
	require.NoError(t, err)
	assert.Empty(t, own)

	all, err := f.svc.List(context.Background(), f.admin.ID.String(), true, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPendingApprovals(t *testing.T) {
	f := newFixture(t)
	created := submitWeek(f, t)

	pending, err := f.svc.PendingApprovals(context.Background(), f.manager.ID.String())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, created.ID, pending[0].ID)

	f.expectTx()
	_, err = f.svc.Approve(context.Background(), f.manager.ID.String(), created.ID)
	require.NoError(t, err)

	pending, err = f.svc.PendingApprovals(context.Background(), f.manager.ID.String())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestBalance(t *testing.T) {
	f := newFixture(t, vacationPolicy(25), sickPolicy())
	f.repo.used["pto/vacation"] = 10
	f.repo.used["pto/sick"] = 3

	balances, err := f.svc.Balance(context.Background(), f.employee.ID.String())
	require.NoError(t, err)
	require.Len(t, balances, 2)

	byType := make(map[string]BalanceResponse)
	for _, b := range balances {
		byType[b.Type] = b
	}

	vac := byType["vacation"]
	assert.False(t, vac.Unlimited)
	assert.Equal(t, 10, vac.UsedDays)
	require.NotNil(t, vac.RemainingDays)
	assert.Equal(t, 15, *vac.RemainingDays)

	sick := byType["sick"]
	assert.True(t, sick.Unlimited)
	assert.Equal(t, 3, sick.UsedDays)
	assert.Nil(t, sick.RemainingDays)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}
