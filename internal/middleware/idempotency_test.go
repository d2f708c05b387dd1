package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

const testUser = "6f1c2d8e-0000-4000-8000-000000000001"

func setupIdempotencyRouter(rdb *redis.Client, calls *int, status int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := func(c *gin.Context) {
		*calls++
		c.JSON(status, gin.H{"ok": status < 300})
	}
	withUser := func(c *gin.Context) {
		c.Set("user_id_validated", testUser)
		c.Next()
	}
	r.POST("/leaves", withUser, Idempotency(rdb), handler)
	r.GET("/leaves", withUser, Idempotency(rdb), handler)
	return r
}

func send(r *gin.Engine, method, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/leaves", strings.NewReader(`{}`))
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	cacheKey := idempotencyCacheKey("/leaves", testUser, "k1")
	lockKey := cacheKey + ":lock"

	t.Run("first request runs and is stored", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0
		r := setupIdempotencyRouter(rdb, &calls, http.StatusCreated)

		payload, _ := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: json.RawMessage(`{"ok":true}`)})
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "1", idempotencyLockTTL).SetVal(true)
		mock.ExpectSet(cacheKey, payload, idempotencyTTL).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		w := send(r, http.MethodPost, "k1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat is replayed", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0
		r := setupIdempotencyRouter(rdb, &calls, http.StatusCreated)

		payload, _ := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: json.RawMessage(`{"ok":true}`)})
		mock.ExpectGet(cacheKey).SetVal(string(payload))

		w := send(r, http.MethodPost, "k1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
		assert.Equal(t, "true", w.Header().Get(ReplayedHeader))
		assert.Equal(t, 0, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in flight duplicate is a conflict", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0
		r := setupIdempotencyRouter(rdb, &calls, http.StatusCreated)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "1", idempotencyLockTTL).SetVal(false)

		w := send(r, http.MethodPost, "k1")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, calls)
	})

	t.Run("failures are not stored", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0
		r := setupIdempotencyRouter(rdb, &calls, http.StatusConflict)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "1", idempotencyLockTTL).SetVal(true)
		mock.ExpectDel(lockKey).SetVal(1)

		w := send(r, http.MethodPost, "k1")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis down fails open", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0
		r := setupIdempotencyRouter(rdb, &calls, http.StatusCreated)

		mock.ExpectGet(cacheKey).SetErr(errors.New("dial tcp: refused"))
		mock.ExpectSetNX(lockKey, "1", idempotencyLockTTL).SetErr(errors.New("dial tcp: refused"))

		w := send(r, http.MethodPost, "k1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("no key or safe method passes through", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0
		r := setupIdempotencyRouter(rdb, &calls, http.StatusOK)

		send(r, http.MethodPost, "")
		send(r, http.MethodGet, "k1")

		assert.Equal(t, 2, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
