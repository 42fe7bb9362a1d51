package reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fleetbook/fleetbook/internal/test_utils"
	"github.com/fleetbook/fleetbook/internal/utils"
	"github.com/fleetbook/fleetbook/pkg/vehicle"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test setup helper
func setupHandlerTest(t *testing.T) *Handler {
	repo := NewRepositoryStub()
	t.Cleanup(repo.Cleanup)

	vehicleRepo := vehicle.NewRepositoryStub()
	t.Cleanup(vehicleRepo.Cleanup)
	vehicles := vehicle.NewService(vehicleRepo)
	_, err := vehicles.Create(context.Background(), vehicle.Vehicle{
		Name:         "Transporter 1",
		LicensePlate: "WZ 4501E",
	})
	require.NoError(t, err)

	clock := &utils.MockClock{FixedNow: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	service := NewService(repo, vehicles, clock, nil)
	return NewHandler(service)
}

func contextWithTestUser(ctx context.Context) context.Context {
	return test_utils.ContextWithTestUser(ctx)
}

func postReservation(t *testing.T, handler *Handler, dto ReservationDTO) *httptest.ResponseRecorder {
	body, err := json.Marshal(dto)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/reservation", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.CreateReservation(w, req.WithContext(contextWithTestUser(req.Context())))
	return w
}

func validReservationDTO() ReservationDTO {
	return ReservationDTO{
		VehicleID: 1,
		Reason:    "client delivery",
		StartTime: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateReservation(t *testing.T) {
	t.Run("returns 201 and the created reservation", func(t *testing.T) {
		handler := setupHandlerTest(t)

		w := postReservation(t, handler, validReservationDTO())

		assert.Equal(t, http.StatusCreated, w.Code)
		var created ReservationDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.NotZero(t, created.ID)
		assert.Equal(t, "test_user", created.UserName)
	})

	t.Run("returns 409 for an overlapping reservation", func(t *testing.T) {
		handler := setupHandlerTest(t)

		w := postReservation(t, handler, validReservationDTO())
		require.Equal(t, http.StatusCreated, w.Code)

		conflicting := validReservationDTO()
		conflicting.StartTime = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
		conflicting.EndTime = time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)
		w = postReservation(t, handler, conflicting)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("returns 400 for an inverted interval", func(t *testing.T) {
		handler := setupHandlerTest(t)

		dto := validReservationDTO()
		dto.StartTime, dto.EndTime = dto.EndTime, dto.StartTime
		w := postReservation(t, handler, dto)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 404 for an unknown vehicle", func(t *testing.T) {
		handler := setupHandlerTest(t)

		dto := validReservationDTO()
		dto.VehicleID = 42
		w := postReservation(t, handler, dto)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetReservations(t *testing.T) {
	t.Run("returns 400 for an invalid from date", func(t *testing.T) {
		handler := setupHandlerTest(t)

		req := httptest.NewRequest(http.MethodGet, "/api/reservation?from=invalid-date&to=2026-03-11T00:00:00Z", nil)
		w := httptest.NewRecorder()
		handler.GetReservations(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var errResponse struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
		assert.Contains(t, errResponse.Error, "Invalid from (date) format")
		assert.Contains(t, errResponse.Details, "RFC3339")
	})

	t.Run("filters by date window", func(t *testing.T) {
		handler := setupHandlerTest(t)

		w := postReservation(t, handler, validReservationDTO())
		require.Equal(t, http.StatusCreated, w.Code)

		later := validReservationDTO()
		later.StartTime = time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
		later.EndTime = time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
		w = postReservation(t, handler, later)
		require.Equal(t, http.StatusCreated, w.Code)

		req := httptest.NewRequest(http.MethodGet,
			"/api/reservation?from=2026-03-10T00:00:00Z&to=2026-03-11T00:00:00Z", nil)
		w = httptest.NewRecorder()
		handler.GetReservations(w, req.WithContext(contextWithTestUser(req.Context())))

		assert.Equal(t, http.StatusOK, w.Code)
		var listed []ReservationDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&listed))
		require.Len(t, listed, 1)
		assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), listed[0].StartTime)
	})

	t.Run("filters by vehicle", func(t *testing.T) {
		handler := setupHandlerTest(t)

		w := postReservation(t, handler, validReservationDTO())
		require.Equal(t, http.StatusCreated, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/api/reservation?vehicleId=1", nil)
		w = httptest.NewRecorder()
		handler.GetReservations(w, req.WithContext(contextWithTestUser(req.Context())))

		assert.Equal(t, http.StatusOK, w.Code)
		var listed []ReservationDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&listed))
		assert.Len(t, listed, 1)
	})
}

func TestUpdateReservation(t *testing.T) {
	t.Run("returns 200 with the merged reservation", func(t *testing.T) {
		handler := setupHandlerTest(t)

		w := postReservation(t, handler, validReservationDTO())
		require.Equal(t, http.StatusCreated, w.Code)
		var created ReservationDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

		body := []byte(`{"notes": "take the fuel card"}`)
		req := httptest.NewRequest(http.MethodPatch,
			fmt.Sprintf("/api/reservation/%d", created.ID), bytes.NewBuffer(body))
		req = mux.SetURLVars(req, map[string]string{"reservationId": fmt.Sprintf("%d", created.ID)})
		w = httptest.NewRecorder()
		handler.UpdateReservation(w, req.WithContext(contextWithTestUser(req.Context())))

		assert.Equal(t, http.StatusOK, w.Code)
		var updated ReservationDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
		assert.Equal(t, "take the fuel card", updated.Notes)
		assert.Equal(t, created.Reason, updated.Reason)
	})

	t.Run("returns 404 for a missing reservation", func(t *testing.T) {
		handler := setupHandlerTest(t)

		body := []byte(`{"notes": "does not matter"}`)
		req := httptest.NewRequest(http.MethodPatch, "/api/reservation/999", bytes.NewBuffer(body))
		req = mux.SetURLVars(req, map[string]string{"reservationId": "999"})
		w := httptest.NewRecorder()
		handler.UpdateReservation(w, req.WithContext(contextWithTestUser(req.Context())))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteReservation(t *testing.T) {
	handler := setupHandlerTest(t)

	w := postReservation(t, handler, validReservationDTO())
	require.Equal(t, http.StatusCreated, w.Code)
	var created ReservationDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/reservation/%d", created.ID), nil)
	req = mux.SetURLVars(req, map[string]string{"reservationId": fmt.Sprintf("%d", created.ID)})
	w = httptest.NewRecorder()
	handler.DeleteReservation(w, req.WithContext(contextWithTestUser(req.Context())))

	assert.Equal(t, http.StatusNoContent, w.Code)
}
