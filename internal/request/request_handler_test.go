package request

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	requesterrors "leavehub/internal/request/errors"
)

type stubService struct {
	submitResp RequestResponse
	submitErr  error
	lastActor  string
	listAll    bool
}

func (s *stubService) Submit(_ context.Context, actorID string, _ SubmitRequest) (RequestResponse, error) {
	s.lastActor = actorID
	if s.submitErr != nil {
		return RequestResponse{}, s.submitErr
	}
	return s.submitResp, nil
}

func (s *stubService) Approve(_ context.Context, _, id string) (RequestResponse, error) {
	return RequestResponse{ID: id, Status: StatusApproved}, nil
}

func (s *stubService) Deny(_ context.Context, _, id string) (RequestResponse, error) {
	return RequestResponse{ID: id, Status: StatusDenied}, nil
}

func (s *stubService) Cancel(_ context.Context, _, id string) (RequestResponse, error) {
	return RequestResponse{ID: id, Status: StatusCancelled}, nil
}

func (s *stubService) AdminCancel(_ context.Context, _, id string) (RequestResponse, error) {
	return RequestResponse{ID: id, Status: StatusCancelled}, nil
}

func (s *stubService) GetByID(_ context.Context, _, id string, _ bool) (RequestResponse, error) {
	return RequestResponse{ID: id}, nil
}

func (s *stubService) List(_ context.Context, _ string, canReadAll bool, _ string) ([]RequestResponse, error) {
	s.listAll = canReadAll
	return nil, nil
}

func (s *stubService) PendingApprovals(_ context.Context, _ string) ([]RequestResponse, error) {
	return nil, nil
}

func (s *stubService) Balance(_ context.Context, _ string) ([]BalanceResponse, error) {
	return nil, nil
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func handlerRouter(svc Service, identity gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(svc)

	router := gin.New()
	router.Use(identity)
	router.POST("/requests", handler.Submit)
	router.GET("/requests", handler.List)
	return router
}

func asUser(id, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", id)
		c.Set("role", role)
	}
}

func TestSubmitHandler_Created(t *testing.T) {
	svc := &stubService{submitResp: RequestResponse{ID: "req-1", Status: StatusPending, DaysCount: 5}}
	router := handlerRouter(svc, asUser("user-1", "EMPLOYEE"))

	body := `{"category":"pto","type":"vacation","start_date":"2026-03-02","end_date":"2026-03-06"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user-1", svc.lastActor)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Ok)
	assert.Nil(t, env.Error)
}

func TestSubmitHandler_ValidationError(t *testing.T) {
	svc := &stubService{}
	router := handlerRouter(svc, asUser("user-1", "EMPLOYEE"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(`{"category":"pto"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Ok)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestSubmitHandler_DomainErrorCarriesDetails(t *testing.T) {
	svc := &stubService{submitErr: requesterrors.BalanceExceeded(5, 2, 10, 8)}
	router := handlerRouter(svc, asUser("user-1", "EMPLOYEE"))

	body := `{"category":"pto","type":"vacation","start_date":"2026-03-02","end_date":"2026-03-06"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "BALANCE_EXCEEDED", env.Error.Code)

	var details requesterrors.BalanceExceededDetails
	require.NoError(t, json.Unmarshal(env.Error.Details, &details))
	assert.Equal(t, 2, details.RemainingDays)
	assert.Equal(t, 10, details.AllowanceDays)
}

func TestListHandler_AdminScope(t *testing.T) {
	svc := &stubService{}
	router := handlerRouter(svc, asUser("user-1", "ADMIN"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/requests", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.listAll)

	svc2 := &stubService{}
	router2 := handlerRouter(svc2, asUser("user-2", "EMPLOYEE"))
	w2 := httptest.NewRecorder()
	router2.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/requests", nil))
	assert.False(t, svc2.listAll)
}
