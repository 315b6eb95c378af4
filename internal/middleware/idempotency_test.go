package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idempotencyRouter(t *testing.T) (*gin.Engine, redismock.ClientMock, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	handled := 0

	router := gin.New()
	router.POST("/requests", Idempotency(rdb), func(c *gin.Context) {
		handled++
		c.Data(http.StatusCreated, "application/json", []byte(`{"ok":true}`))
	})
	return router, mock, &handled
}

func TestIdempotency_FirstAttemptCachesResponse(t *testing.T) {
	router, mock, handled := idempotencyRouter(t)

	cacheKey := "idemp:/requests::key-1"
	entry, err := json.Marshal(map[string]any{
		"status": http.StatusCreated,
		"body":   json.RawMessage(`{"ok":true}`),
	})
	require.NoError(t, err)

	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)
	mock.ExpectSet(cacheKey, entry, 24*time.Hour).SetVal("OK")
	mock.ExpectDel(cacheKey + ":lock").SetVal(1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.Equal(t, 1, *handled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	router, mock, handled := idempotencyRouter(t)

	cached, err := json.Marshal(map[string]any{
		"status": http.StatusCreated,
		"body":   json.RawMessage(`{"ok":true}`),
	})
	require.NoError(t, err)
	mock.ExpectGet("idemp:/requests::key-1").SetVal(string(cached))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.Equal(t, 0, *handled, "handler must not run twice for the same key")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_InFlightDuplicateRejected(t *testing.T) {
	router, mock, handled := idempotencyRouter(t)

	mock.ExpectGet("idemp:/requests::key-1").RedisNil()
	mock.ExpectSetNX("idemp:/requests::key-1:lock", "locked", 30*time.Second).SetVal(false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, *handled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	router, mock, handled := idempotencyRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, *handled)
	assert.NoError(t, mock.ExpectationsWereMet())
}
