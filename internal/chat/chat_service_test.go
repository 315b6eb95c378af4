package chat

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"leavehub/internal/request"
	requesterrors "leavehub/internal/request/errors"
	"leavehub/internal/user"
)

type fakeUserService struct {
	provisioned map[string]user.UserResponse
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{provisioned: make(map[string]user.UserResponse)}
}

func (f *fakeUserService) GetOrProvision(_ context.Context, externalID, displayName string) (user.UserResponse, error) {
	if u, ok := f.provisioned[externalID]; ok {
		return u, nil
	}
	u := user.UserResponse{ID: uuid.NewString(), ExternalID: externalID, DisplayName: displayName}
	f.provisioned[externalID] = u
	return u, nil
}

func (f *fakeUserService) GetByID(_ context.Context, _ string) (user.UserResponse, error) {
	return user.UserResponse{}, gorm.ErrRecordNotFound
}

func (f *fakeUserService) GetByExternalID(_ context.Context, _ string) (user.UserResponse, error) {
	return user.UserResponse{}, gorm.ErrRecordNotFound
}

func (f *fakeUserService) GetAll(_ context.Context) ([]user.UserResponse, error) { return nil, nil }

func (f *fakeUserService) GetReports(_ context.Context, _ string) ([]user.UserResponse, error) {
	return nil, nil
}

func (f *fakeUserService) Update(_ context.Context, _ string, _ user.UpdateUserRequest) (user.UserResponse, error) {
	return user.UserResponse{}, nil
}

func (f *fakeUserService) ResolveRole(_ context.Context, _ string) (string, error) {
	return "EMPLOYEE", nil
}

type fakeRequestService struct {
	submitted []request.SubmitRequest
	submitErr error
	approved  []string
	balances  []request.BalanceResponse
}

func (f *fakeRequestService) Submit(_ context.Context, _ string, req request.SubmitRequest) (request.RequestResponse, error) {
	if f.submitErr != nil {
		return request.RequestResponse{}, f.submitErr
	}
	f.submitted = append(f.submitted, req)
	return request.RequestResponse{
		ID:        uuid.NewString(),
		Category:  req.Category,
		Type:      req.Type,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		DaysCount: 5,
		Status:    "PENDING",
	}, nil
}

func (f *fakeRequestService) Approve(_ context.Context, _ string, id string) (request.RequestResponse, error) {
	f.approved = append(f.approved, id)
	return request.RequestResponse{ID: id, Status: "APPROVED"}, nil
}

func (f *fakeRequestService) Deny(_ context.Context, _ string, id string) (request.RequestResponse, error) {
	return request.RequestResponse{ID: id, Status: "DENIED"}, nil
}

func (f *fakeRequestService) Cancel(_ context.Context, _ string, id string) (request.RequestResponse, error) {
	return request.RequestResponse{ID: id, Status: "CANCELLED"}, nil
}

func (f *fakeRequestService) AdminCancel(_ context.Context, _ string, id string) (request.RequestResponse, error) {
	return request.RequestResponse{ID: id, Status: "CANCELLED"}, nil
}

func (f *fakeRequestService) GetByID(_ context.Context, _, id string, _ bool) (request.RequestResponse, error) {
	return request.RequestResponse{ID: id}, nil
}

func (f *fakeRequestService) List(_ context.Context, _ string, _ bool, _ string) ([]request.RequestResponse, error) {
	return nil, nil
}

func (f *fakeRequestService) PendingApprovals(_ context.Context, _ string) ([]request.RequestResponse, error) {
	return nil, nil
}

func (f *fakeRequestService) Balance(_ context.Context, _ string) ([]request.BalanceResponse, error) {
	return f.balances, nil
}

func newChatFixture() (Service, *fakeUserService, *fakeRequestService) {
	users := newFakeUserService()
	requests := &fakeRequestService{}
	return NewService(users, requests), users, requests
}

func TestHandle_ProvisionsSenderAndSubmits(t *testing.T) {
	svc, users, requests := newChatFixture()

	reply, err := svc.Handle(context.Background(), InboundMessage{
		ExternalUserID: "U123",
		DisplayName:    "Evan",
		Text:           "/pto request pto vacation 2026-03-02 2026-03-06 spring trip",
	})
	require.NoError(t, err)

	assert.Contains(t, users.provisioned, "U123")
	require.Len(t, requests.submitted, 1)
	assert.Equal(t, "vacation", requests.submitted[0].Type)
	assert.Equal(t, "spring trip", requests.submitted[0].Reason)
	assert.Contains(t, reply.Text, "PENDING")
	assert.Contains(t, reply.Text, "5 business days")
}

func TestHandle_UnknownCommandRepliesWithHelp(t *testing.T) {
	svc, _, requests := newChatFixture()

	reply, err := svc.Handle(context.Background(), InboundMessage{
		ExternalUserID: "U123",
		DisplayName:    "Evan",
		Text:           "gimme vacation",
	})
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "Commands:")
	assert.Empty(t, requests.submitted)
}

func TestHandle_MissingArgumentsRefused(t *testing.T) {
	svc, _, requests := newChatFixture()

	reply, err := svc.Handle(context.Background(), InboundMessage{
		ExternalUserID: "U123",
		DisplayName:    "Evan",
		Text:           "pto request pto vacation",
	})
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "malformed")
	assert.Empty(t, requests.submitted)
}

func TestHandle_DomainRefusalBecomesReply(t *testing.T) {
	svc, _, requests := newChatFixture()
	requests.submitErr = requesterrors.BalanceExceeded(5, 2, 10, 8)

	reply, err := svc.Handle(context.Background(), InboundMessage{
		ExternalUserID: "U123",
		DisplayName:    "Evan",
		Text:           "pto request pto vacation 2026-03-02 2026-03-06",
	})
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "balance")
}

func TestHandle_Approve(t *testing.T) {
	svc, _, requests := newChatFixture()

	reply, err := svc.Handle(context.Background(), InboundMessage{
		ExternalUserID: "U999",
		DisplayName:    "Morgan",
		Text:           "pto approve abc-123",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"abc-123"}, requests.approved)
	assert.Contains(t, reply.Text, "approved")
}

func TestHandle_Balance(t *testing.T) {
	svc, _, requests := newChatFixture()
	remaining := 15
	requests.balances = []request.BalanceResponse{
		{Category: "pto", Type: "vacation", UsedDays: 10, RemainingDays: &remaining},
		{Category: "pto", Type: "sick", Unlimited: true, UsedDays: 2},
	}

	reply, err := svc.Handle(context.Background(), InboundMessage{
		ExternalUserID: "U123",
		DisplayName:    "Evan",
		Text:           "pto balance",
	})
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "15 days left")
	assert.Contains(t, reply.Text, "unlimited")
}
