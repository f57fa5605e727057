package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/alanyang/hemotask/internal/adapter/memory"
	portcache "github.com/alanyang/hemotask/internal/port/cache"
)

func init() { gin.SetMode(gin.TestMode) }

func idempotentRouter(cache portcache.Cache, calls *int32, status int) *gin.Engine {
	r := gin.New()
	r.Use(IdempotencyMiddleware(cache, time.Minute))
	r.POST("/things", func(c *gin.Context) {
		n := atomic.AddInt32(calls, 1)
		c.JSON(status, gin.H{"call": n})
	})
	return r
}

func post(r *gin.Engine, key string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(`{}`))
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysSameKey(t *testing.T) {
	var calls int32
	r := idempotentRouter(memory.NewCache(), &calls, http.StatusCreated)

	first := post(r, "abc")
	second := post(r, "abc")

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(ReplayedHeader))
	assert.Empty(t, first.Header().Get(ReplayedHeader))
}

func TestIdempotency_DifferentKeysAndNoKey(t *testing.T) {
	var calls int32
	r := idempotentRouter(memory.NewCache(), &calls, http.StatusOK)

	post(r, "a")
	post(r, "b")
	post(r, "")
	post(r, "")

	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}

func TestIdempotency_ServerErrorsAreNotStored(t *testing.T) {
	var calls int32
	r := idempotentRouter(memory.NewCache(), &calls, http.StatusInternalServerError)

	post(r, "k")
	post(r, "k")

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, error) { return nil, errors.New("down") }
func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("down")
}

func TestIdempotency_CacheFailurePassesThrough(t *testing.T) {
	var calls int32
	r := idempotentRouter(brokenCache{}, &calls, http.StatusOK)

	w := post(r, "k")
	post(r, "k")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/x", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), IdempotencyHeader)
}
