package reservation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fleetbook/fleetbook/internal/rest"
	"github.com/fleetbook/fleetbook/pkg/vehicle"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	reservations Service
}

type ReservationDTO struct {
	ID        int       `json:"id"`
	VehicleID int       `json:"vehicleId"`
	UserName  string    `json:"userName"`
	Reason    string    `json:"reason"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReservationPatchDTO mirrors Patch: absent fields stay unchanged.
type ReservationPatchDTO struct {
	VehicleID *int       `json:"vehicleId"`
	UserName  *string    `json:"userName"`
	Reason    *string    `json:"reason"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Notes     *string    `json:"notes"`
}

func NewHandler(s Service) *Handler {
	return &Handler{s}
}

// GetReservations lists reservations, optionally narrowed by a ?from/?to
// RFC3339 window or by ?vehicleId.
func (h *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	fromString := r.URL.Query().Get("from")
	toString := r.URL.Query().Get("to")
	vehicleIdString := r.URL.Query().Get("vehicleId")

	var reservations []Reservation
	var err error
	switch {
	case fromString != "" || toString != "":
		from, parseErr := time.Parse(time.RFC3339, fromString)
		if parseErr != nil {
			writeBadRequest(w, "Invalid from (date) format", "'from' must be in RFC3339 format")
			return
		}
		to, parseErr := time.Parse(time.RFC3339, toString)
		if parseErr != nil {
			writeBadRequest(w, "Invalid to (date) format", "'to' must be in RFC3339 format")
			return
		}
		reservations, err = h.reservations.GetByDateRange(r.Context(), from, to)
	case vehicleIdString != "":
		vehicleId, parseErr := strconv.Atoi(vehicleIdString)
		if parseErr != nil {
			writeBadRequest(w, "Invalid vehicle ID", "")
			return
		}
		reservations, err = h.reservations.GetByVehicle(r.Context(), vehicleId)
	default:
		reservations, err = h.reservations.GetAll(r.Context())
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ReservationDTO, 0, len(reservations))
	for _, res := range reservations {
		dtos = append(dtos, reservationToDTO(res))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := reservationIdFromPath(w, r)
	if !ok {
		return
	}

	res, err := h.reservations.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(reservationToDTO(res)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Creating reservation")

	var dto ReservationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeBadRequest(w, "Invalid request body format", "timestamps must be in RFC3339 format")
		return
	}

	created, err := h.reservations.Create(r.Context(), dtoToReservation(dto))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(reservationToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := reservationIdFromPath(w, r)
	if !ok {
		return
	}

	var dto ReservationPatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeBadRequest(w, "Invalid request body format", "timestamps must be in RFC3339 format")
		return
	}

	updated, err := h.reservations.Update(r.Context(), id, dtoToPatch(dto))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(reservationToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := reservationIdFromPath(w, r)
	if !ok {
		return
	}

	if err := h.reservations.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps domain errors to status codes: shape and interval
// problems to 400, missing records to 404, booking conflicts to 409.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeBadRequest(w, "Invalid reservation data", validationErr.Error())
	case errors.Is(err, ErrInvalidInterval):
		writeBadRequest(w, "Invalid time interval", "endTime must be after startTime")
	case errors.Is(err, vehicle.ErrVehicleNotFound):
		writeError(w, http.StatusNotFound, "Vehicle not found", "")
	case errors.Is(err, ErrReservationNotFound):
		writeError(w, http.StatusNotFound, "Reservation not found", "")
	case errors.Is(err, ErrOverlap):
		writeError(w, http.StatusConflict, "Vehicle is already booked in the selected time window", "")
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeBadRequest(w http.ResponseWriter, message, details string) {
	writeError(w, http.StatusBadRequest, message, details)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	w.WriteHeader(status)
	encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error:   message,
		Details: details,
	})
	if encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

func reservationIdFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["reservationId"])
	if err != nil {
		writeBadRequest(w, "Invalid reservation ID", "")
		return 0, false
	}
	return id, true
}

func reservationToDTO(res Reservation) ReservationDTO {
	return ReservationDTO{
		ID:        res.ID,
		VehicleID: res.VehicleID,
		UserName:  res.UserName,
		Reason:    res.Reason,
		StartTime: res.StartTime,
		EndTime:   res.EndTime,
		Notes:     res.Notes,
		CreatedAt: res.CreatedAt,
	}
}

func dtoToReservation(dto ReservationDTO) Reservation {
	return Reservation{
		ID:        dto.ID,
		VehicleID: dto.VehicleID,
		UserName:  dto.UserName,
		Reason:    dto.Reason,
		StartTime: dto.StartTime,
		EndTime:   dto.EndTime,
		Notes:     dto.Notes,
	}
}

func dtoToPatch(dto ReservationPatchDTO) Patch {
	return Patch{
		VehicleID: dto.VehicleID,
		UserName:  dto.UserName,
		Reason:    dto.Reason,
		StartTime: dto.StartTime,
		EndTime:   dto.EndTime,
		Notes:     dto.Notes,
	}
}
