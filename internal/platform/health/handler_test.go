package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h *Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	r := chi.NewRouter()
	h.Register(r)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func up(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("circuit open") }

func TestLiveness(t *testing.T) {
	w, body := serve(t, New("testing"), "/health/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alive", body["status"])
}

func TestStatus(t *testing.T) {
	w, body := serve(t, New("testing"), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "testing", body["environment"])
	assert.Equal(t, Version, body["version"])
}

func TestReadiness(t *testing.T) {
	t.Run("ready with no checks", func(t *testing.T) {
		w, body := serve(t, New("testing"), "/health/ready")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ready", body["status"])
	})

	t.Run("advisory failure degrades", func(t *testing.T) {
		h := New("testing")
		h.RegisterCheck("cookies", up)
		h.RegisterAdvisory("ip_lookup", down)

		w, body := serve(t, h, "/health/ready")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "degraded", body["status"])
		checks := body["checks"].(map[string]any)
		assert.Equal(t, "up", checks["cookies"])
		assert.Equal(t, "down: circuit open", checks["ip_lookup"])
	})

	t.Run("required failure is not ready", func(t *testing.T) {
		h := New("testing")
		h.RegisterCheck("cookies", down)
		h.RegisterAdvisory("ip_lookup", down)

		w, body := serve(t, h, "/health/ready")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "not_ready", body["status"])
	})
}
