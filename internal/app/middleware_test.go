package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fleetbook/fleetbook/internal/test_utils"
	"github.com/stretchr/testify/assert"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequireAuth(t *testing.T) {
	t.Run("rejects an anonymous request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/reservation", nil)
		w := httptest.NewRecorder()

		requireAuth(okHandler)(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("passes an authenticated request through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/reservation", nil)
		req = req.WithContext(test_utils.ContextWithTestUser(req.Context()))
		w := httptest.NewRecorder()

		requireAuth(okHandler)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("rejects an anonymous request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/vehicle", nil)
		w := httptest.NewRecorder()

		requireAdmin(okHandler)(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a regular user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/vehicle", nil)
		req = req.WithContext(test_utils.ContextWithTestUser(req.Context()))
		w := httptest.NewRecorder()

		requireAdmin(okHandler)(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("passes an admin through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/vehicle", nil)
		req = req.WithContext(test_utils.ContextWithTestAdmin(req.Context()))
		w := httptest.NewRecorder()

		requireAdmin(okHandler)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
