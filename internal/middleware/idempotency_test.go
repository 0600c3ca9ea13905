package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestIdempotency_PassesThroughWithoutKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	r := gin.New()
	handled := false
	r.POST("/payroll-runs", Idempotency(rdb), func(c *gin.Context) {
		handled = true
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll-runs", nil)
	r.ServeHTTP(w, req)

	assert.True(t, handled)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	mock.ExpectGet("idemp:/payroll-runs::run-aug").SetVal(`{"run_id":"abc"}`)

	r := gin.New()
	handled := false
	r.POST("/payroll-runs", Idempotency(rdb), func(c *gin.Context) {
		handled = true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll-runs", nil)
	req.Header.Set("Idempotency-Key", "run-aug")
	r.ServeHTTP(w, req)

	assert.False(t, handled)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "abc")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_RejectsInFlightDuplicate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	mock.ExpectGet("idemp:/payroll-runs::run-aug").RedisNil()
	mock.ExpectSetNX("idemp:/payroll-runs::run-aug:lock", "locked", 30*time.Second).SetVal(false)

	r := gin.New()
	handled := false
	r.POST("/payroll-runs", Idempotency(rdb), func(c *gin.Context) {
		handled = true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll-runs", nil)
	req.Header.Set("Idempotency-Key", "run-aug")
	r.ServeHTTP(w, req)

	assert.False(t, handled)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PROCESSING")
}

func TestIdempotency_AcquiresLockAndExposesKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	mock.ExpectGet("idemp:/payroll-runs::run-aug").RedisNil()
	mock.ExpectSetNX("idemp:/payroll-runs::run-aug:lock", "locked", 30*time.Second).SetVal(true)

	r := gin.New()
	var cacheKey, lockKey string
	r.POST("/payroll-runs", Idempotency(rdb), func(c *gin.Context) {
		cacheKey = c.GetString("idempotency_cache_key")
		lockKey = c.GetString("idempotency_lock_key")
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll-runs", nil)
	req.Header.Set("Idempotency-Key", "run-aug")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "idemp:/payroll-runs::run-aug", cacheKey)
	assert.Equal(t, cacheKey+":lock", lockKey)
}
