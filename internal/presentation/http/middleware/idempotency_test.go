package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryIdempotencyRepo struct {
	mu        sync.Mutex
	keys      map[string]*entity.IdempotencyKey
	lookupErr error
}

func newMemoryIdempotencyRepo() *memoryIdempotencyRepo {
	return &memoryIdempotencyRepo{keys: map[string]*entity.IdempotencyKey{}}
}

func (r *memoryIdempotencyRepo) GetByKey(_ context.Context, key string, sessionID uuid.UUID) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	return r.keys[sessionID.String()+"/"+key], nil
}

func (r *memoryIdempotencyRepo) Reserve(_ context.Context, ikey *entity.IdempotencyKey) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := ikey.SessionID.String() + "/" + ikey.Key
	if _, ok := r.keys[id]; ok {
		return false, nil
	}
	r.keys[id] = ikey
	return true, nil
}

func (r *memoryIdempotencyRepo) Complete(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[ikey.SessionID.String()+"/"+ikey.Key] = ikey
	return nil
}

func (r *memoryIdempotencyRepo) Release(_ context.Context, key string, sessionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.keys, sessionID.String()+"/"+key)
	return nil
}

func (r *memoryIdempotencyRepo) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}

var testSessionID = uuid.MustParse("11111111-2222-3333-4444-555555555555")

// idempotencyRouter counts how many requests reach the handler.
func idempotencyRouter(repo *memoryIdempotencyRepo, required bool, status int, calls *int) *gin.Engine {
	cfg := IdempotencyConfig{Repo: repo, Log: zap.NewNop()}
	mw := Idempotency(cfg)
	if required {
		mw = IdempotencyRequired(cfg)
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextSessionID, testSessionID)
		c.Next()
	})
	handler := func(c *gin.Context) {
		*calls++
		c.JSON(status, gin.H{"call": *calls})
	}
	r.POST("/invoices", mw, handler)
	r.GET("/invoices", mw, handler)
	return r
}

func send(router http.Handler, method, key string) *httptest.ResponseRecorder {
	return sendTo(router, method, "/invoices", key)
}

func sendTo(router http.Handler, method, target, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(`{}`))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	calls := 0
	router := idempotencyRouter(repo, true, http.StatusCreated, &calls)

	first := send(router, http.MethodPost, "bill-abc")
	require.Equal(t, http.StatusCreated, first.Code)
	assert.Empty(t, first.Header().Get(IdempotencyReplayedHeader))

	second := send(router, http.MethodPost, "bill-abc")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(IdempotencyReplayedHeader))
	assert.JSONEq(t, `{"call":1}`, second.Body.String())
	assert.Equal(t, 1, calls)

	stored := repo.keys[testSessionID.String()+"/bill-abc"]
	require.NotNil(t, stored)
	assert.Equal(t, "POST /invoices", stored.Endpoint)
	assert.WithinDuration(t, time.Now().Add(IdempotencyKeyTTL), stored.ExpiresAt, time.Minute)

	send(router, http.MethodPost, "bill-def")
	assert.Equal(t, 2, calls)
}

func TestIdempotency_ExpiredKeyRunsAgain(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	repo.keys[testSessionID.String()+"/old"] = &entity.IdempotencyKey{
		Key: "old", SessionID: testSessionID, ResponseCode: http.StatusCreated,
		ResponseBody: `{"call":0}`, ExpiresAt: time.Now().Add(-time.Minute),
	}
	calls := 0
	router := idempotencyRouter(repo, false, http.StatusCreated, &calls)

	w := send(router, http.MethodPost, "old")
	assert.JSONEq(t, `{"call":1}`, w.Body.String())
	assert.Equal(t, 1, calls)
}

func TestIdempotency_FailuresAreNotStored(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	calls := 0
	router := idempotencyRouter(repo, false, http.StatusBadGateway, &calls)

	send(router, http.MethodPost, "retry-me")
	w := send(router, http.MethodPost, "retry-me")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, w.Header().Get(IdempotencyReplayedHeader))
	assert.Equal(t, 2, calls)
	assert.Empty(t, repo.keys)
}

func TestIdempotency_InFlightRetryIsRejected(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	var calls atomic.Int32
	entered := make(chan struct{}, 2)
	finish := make(chan struct{})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextSessionID, testSessionID)
		c.Next()
	})
	r.POST("/invoices", IdempotencyRequired(IdempotencyConfig{Repo: repo, Log: zap.NewNop()}), func(c *gin.Context) {
		calls.Add(1)
		entered <- struct{}{}
		<-finish
		c.JSON(http.StatusCreated, gin.H{"bill": "b1"})
	})

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() { first <- send(r, http.MethodPost, "tap-1") }()
	<-entered

	retry := send(r, http.MethodPost, "tap-1")
	assert.Equal(t, http.StatusConflict, retry.Code)
	assert.Empty(t, retry.Header().Get(IdempotencyReplayedHeader))

	close(finish)
	w := <-first
	require.Equal(t, http.StatusCreated, w.Code)

	replay := send(r, http.MethodPost, "tap-1")
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get(IdempotencyReplayedHeader))
	assert.JSONEq(t, `{"bill":"b1"}`, replay.Body.String())
	assert.Equal(t, int32(1), calls.Load())
}

func TestIdempotency_KeyReusedOnAnotherBill(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	calls := 0

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextSessionID, testSessionID)
		c.Next()
	})
	r.PATCH("/invoices/:id/pay", Idempotency(IdempotencyConfig{Repo: repo, Log: zap.NewNop()}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"paid": c.Param("id")})
	})

	w := sendTo(r, http.MethodPatch, "/invoices/A/pay", "pay-1")
	require.Equal(t, http.StatusOK, w.Code)

	w = sendTo(r, http.MethodPatch, "/invoices/B/pay", "pay-1")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.NotContains(t, w.Body.String(), `"paid":"A"`)
	assert.Equal(t, 1, calls)

	w = sendTo(r, http.MethodPatch, "/invoices/A/pay", "pay-1")
	assert.Equal(t, "true", w.Header().Get(IdempotencyReplayedHeader))
	assert.JSONEq(t, `{"paid":"A"}`, w.Body.String())
}

func TestIdempotency_StalePendingKeyRunsAgain(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	repo.keys[testSessionID.String()+"/crashed"] = &entity.IdempotencyKey{
		Key: "crashed", SessionID: testSessionID, Endpoint: "POST /invoices",
		ExpiresAt: time.Now().Add(-time.Second),
	}
	calls := 0
	router := idempotencyRouter(repo, true, http.StatusCreated, &calls)

	w := send(router, http.MethodPost, "crashed")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, calls)
	assert.False(t, repo.keys[testSessionID.String()+"/crashed"].IsPending())
}

func TestIdempotency_Rejections(t *testing.T) {
	testCases := []struct {
		name           string
		required       bool
		method         string
		key            string
		lookupErr      error
		expectedStatus int
		expectedCalls  int
	}{
		{name: "required_without_key", required: true, method: http.MethodPost, expectedStatus: http.StatusBadRequest},
		{name: "optional_without_key", method: http.MethodPost, expectedStatus: http.StatusOK, expectedCalls: 1},
		{name: "key_too_long", method: http.MethodPost, key: strings.Repeat("k", 256), expectedStatus: http.StatusBadRequest},
		{name: "get_ignores_key", required: true, method: http.MethodGet, expectedStatus: http.StatusOK, expectedCalls: 1},
		{name: "required_lookup_error", required: true, method: http.MethodPost, key: "k1", lookupErr: errors.New("db down"), expectedStatus: http.StatusInternalServerError},
		{name: "optional_lookup_error_passes", method: http.MethodPost, key: "k1", lookupErr: errors.New("db down"), expectedStatus: http.StatusOK, expectedCalls: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMemoryIdempotencyRepo()
			repo.lookupErr = tc.lookupErr
			calls := 0
			router := idempotencyRouter(repo, tc.required, http.StatusOK, &calls)

			w := send(router, tc.method, tc.key)
			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Equal(t, tc.expectedCalls, calls)
		})
	}
}

func TestIdempotency_RequiresSession(t *testing.T) {
	r := gin.New()
	r.POST("/invoices", Idempotency(IdempotencyConfig{Repo: newMemoryIdempotencyRepo(), Log: zap.NewNop()}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := send(r, http.MethodPost, "k1")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
