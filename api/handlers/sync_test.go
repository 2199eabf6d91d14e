package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"goatedvips/fetcher/repositories"
	syncservice "goatedvips/fetcher/services/sync"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSyncRunner struct {
	mock.Mock
}

func (m *MockSyncRunner) Run(ctx context.Context, forceFresh bool) (*syncservice.CycleResult, error) {
	args := m.Called(ctx, forceFresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*syncservice.CycleResult), args.Error(1)
}

type MockCacheInvalidator struct {
	mock.Mock

	invalidated chan struct{}
}

func (m *MockCacheInvalidator) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	if m.invalidated != nil {
		close(m.invalidated)
	}
	return args.Error(0)
}

func performTrigger(t *testing.T, handler *SyncHandler) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/sync/trigger", handler.TriggerSync)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/sync/trigger", nil)
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestTriggerSyncInvalidatesCachesAfterWrites(t *testing.T) {
	runner := new(MockSyncRunner)
	invalidator := &MockCacheInvalidator{invalidated: make(chan struct{})}

	result := &syncservice.CycleResult{
		Upserts: repositories.UpsertResult{Created: 1, Updated: 2},
	}
	runner.On("Run", mock.Anything, true).Return(result, nil)
	invalidator.On("Invalidate", mock.Anything).Return(nil)

	recorder := performTrigger(t, NewSyncHandler(runner, invalidator))

	assert.Equal(t, http.StatusAccepted, recorder.Code)

	select {
	case <-invalidator.invalidated:
	case <-time.After(time.Second):
		require.Fail(t, "the triggered cycle wrote rows but never dropped the caches")
	}
}

func TestTriggerSyncSkipsInvalidationWithoutWrites(t *testing.T) {
	runner := new(MockSyncRunner)
	invalidator := new(MockCacheInvalidator)

	done := make(chan struct{})
	result := &syncservice.CycleResult{
		Upserts: repositories.UpsertResult{Skipped: 50},
	}
	runner.On("Run", mock.Anything, true).Run(func(mock.Arguments) {
		close(done)
	}).Return(result, nil)

	recorder := performTrigger(t, NewSyncHandler(runner, invalidator))

	assert.Equal(t, http.StatusAccepted, recorder.Code)

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "the cycle never ran")
	}
	// Give the goroutine a beat to finish before asserting the negative.
	time.Sleep(50 * time.Millisecond)
	invalidator.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestTriggerSyncAlreadyRunningIsANoOp(t *testing.T) {
	runner := new(MockSyncRunner)
	invalidator := new(MockCacheInvalidator)

	done := make(chan struct{})
	runner.On("Run", mock.Anything, true).Run(func(mock.Arguments) {
		close(done)
	}).Return(nil, syncservice.ErrSyncInProgress)

	recorder := performTrigger(t, NewSyncHandler(runner, invalidator))

	assert.Equal(t, http.StatusAccepted, recorder.Code)

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "the cycle never ran")
	}
	time.Sleep(50 * time.Millisecond)
	invalidator.AssertNotCalled(t, "Invalidate", mock.Anything)
}
