package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narwhalmedia/requestbot/internal/health"
	"github.com/narwhalmedia/requestbot/pkg/config"
	"github.com/narwhalmedia/requestbot/pkg/logger"
)

func get(t *testing.T, h http.Handler, path string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealth(t *testing.T) {
	code, body := get(t, health.NewRouter(), "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
}

func TestReady(t *testing.T) {
	ok := health.Check{Name: "telegram", Fn: func(context.Context) error { return nil }}
	down := health.Check{Name: "nats", Fn: func(context.Context) error { return errors.New("disconnected") }}

	code, body := get(t, health.NewRouter(ok), "/ready")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body["status"])

	code, body = get(t, health.NewRouter(ok, down), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, map[string]any{"telegram": "ok", "nats": "disconnected"}, body["checks"])
}

func TestReady_RejectsOtherMethods(t *testing.T) {
	rec := httptest.NewRecorder()
	health.NewRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ready", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNewServer_DisabledOnPortZero(t *testing.T) {
	s := health.NewServer(config.HealthConfig{Port: 0}, logger.NewNoop())
	assert.Nil(t, s)
	s.Start()
	assert.NoError(t, s.Shutdown(context.Background()))
}
