// internal/handlers/health_test.go
package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/frontdesk-be/internal/handlers"
	"github.com/ammerola/frontdesk-be/test/helpers"
	"github.com/ammerola/frontdesk-be/test/mocks"
)

type fakeInspector struct {
	err error
}

func (f fakeInspector) Queues() ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []string{"default"}, nil
}

func (f fakeInspector) GetQueueInfo(queue string) (*asynq.QueueInfo, error) {
	return &asynq.QueueInfo{Queue: queue, Size: 3, Pending: 2, Active: 1}, nil
}

func (f fakeInspector) Servers() ([]*asynq.ServerInfo, error) {
	return []*asynq.ServerInfo{{}}, nil
}

func newHealthMux(t *testing.T, database *mocks.MockDatabase, inspector handlers.QueueInspector, redisUp bool) *http.ServeMux {
	t.Helper()

	rdb := helpers.SetupTestRedis(t)
	if !redisUp {
		rdb.Server.Close()
	}

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, &handlers.Handlers{
		Health: handlers.NewHealthHandler(database, rdb.Client, inspector, "1.2.3", "test", helpers.TestLogger()),
	})
	return mux
}

func serve(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthHandler_Health(t *testing.T) {
	t.Run("all_healthy", func(t *testing.T) {
		database := mocks.NewMockDatabase(gomock.NewController(t))
		database.EXPECT().Ping(gomock.Any()).Return(nil)
		database.EXPECT().Health(gomock.Any()).Return(map[string]any{"total_conns": int32(4)})

		rec := serve(newHealthMux(t, database, fakeInspector{}, true), "/health")

		require.Equal(t, http.StatusOK, rec.Code)
		var status handlers.HealthStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.Equal(t, handlers.StatusHealthy, status.Status)
		assert.Equal(t, "1.2.3", status.Version)
		assert.Equal(t, handlers.StatusHealthy, status.Services["database"].Status)
		assert.Equal(t, handlers.StatusHealthy, status.Services["redis"].Status)
		assert.Equal(t, handlers.StatusHealthy, status.Services["asynq"].Status)
		assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	})

	t.Run("database_down", func(t *testing.T) {
		database := mocks.NewMockDatabase(gomock.NewController(t))
		database.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

		rec := serve(newHealthMux(t, database, nil, true), "/health")

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var status handlers.HealthStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.Equal(t, handlers.StatusDegraded, status.Status)
		assert.Equal(t, "connection refused", status.Services["database"].Message)
		assert.NotContains(t, status.Services, "asynq")
	})

	t.Run("queue_inspector_error", func(t *testing.T) {
		database := mocks.NewMockDatabase(gomock.NewController(t))
		database.EXPECT().Ping(gomock.Any()).Return(nil)
		database.EXPECT().Health(gomock.Any()).Return(map[string]any{})

		rec := serve(newHealthMux(t, database, fakeInspector{err: errors.New("NOAUTH")}, true), "/health")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestHealthHandler_Readiness(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		database := mocks.NewMockDatabase(gomock.NewController(t))
		database.EXPECT().Ping(gomock.Any()).Return(nil)

		rec := serve(newHealthMux(t, database, nil, true), "/health/ready")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ready":true,"details":{"database":"ready","redis":"ready"}}`, rec.Body.String())
	})

	t.Run("redis_down", func(t *testing.T) {
		database := mocks.NewMockDatabase(gomock.NewController(t))
		database.EXPECT().Ping(gomock.Any()).Return(nil)

		rec := serve(newHealthMux(t, database, nil, false), "/health/ready")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"ready":false,"details":{"database":"ready","redis":"not ready"}}`, rec.Body.String())
	})
}

func TestHealthHandler_Live(t *testing.T) {
	database := mocks.NewMockDatabase(gomock.NewController(t))

	rec := serve(newHealthMux(t, database, nil, true), "/health/live")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"alive"}`, rec.Body.String())
}
