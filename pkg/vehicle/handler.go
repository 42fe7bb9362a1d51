package vehicle

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fleetbook/fleetbook/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type VehicleDTO struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	LicensePlate string `json:"licensePlate"`
	Description  string `json:"description,omitempty"`
	ColorHue     *int   `json:"colorHue,omitempty"`
	IsActive     int    `json:"isActive"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetVehicles godoc
// @Summary List vehicles
// @Tags Vehicle
// @Produce json
// @Success 200 {array} VehicleDTO
// @Router /api/vehicle [get]
func (h *Handler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vehicles, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]VehicleDTO, 0, len(vehicles))
	for _, v := range vehicles {
		dtos = append(dtos, vehicleToDTO(v))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetVehicle godoc
// @Summary Get a vehicle
// @Tags Vehicle
// @Produce json
// @Param vehicleId path int true "Vehicle ID"
// @Success 200 {object} VehicleDTO
// @Failure 404 {string} string "Vehicle not found"
// @Router /api/vehicle/{vehicleId} [get]
func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := vehicleIdFromPath(w, r)
	if !ok {
		return
	}

	v, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrVehicleNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(vehicleToDTO(v)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateVehicle godoc
// @Summary Create a vehicle
// @Description Add a vehicle to the fleet. Admin only.
// @Tags Vehicle
// @Accept json
// @Produce json
// @Param vehicle body VehicleDTO true "Vehicle"
// @Success 201 {object} VehicleDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid vehicle data"
// @Router /api/vehicle [post]
func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Creating vehicle")

	var dto VehicleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	created, err := h.service.Create(r.Context(), dtoToVehicle(dto))
	if err != nil {
		if errors.Is(err, ErrVehicleInvalid) {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: err.Error(),
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(vehicleToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateVehicle godoc
// @Summary Update a vehicle
// @Description Modify a fleet vehicle. Admin only.
// @Tags Vehicle
// @Accept json
// @Produce json
// @Param vehicleId path int true "Vehicle ID"
// @Param vehicle body VehicleDTO true "Vehicle"
// @Success 200 {object} VehicleDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid vehicle data"
// @Failure 404 {string} string "Vehicle not found"
// @Router /api/vehicle/{vehicleId} [put]
func (h *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := vehicleIdFromPath(w, r)
	if !ok {
		return
	}

	var dto VehicleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	v := dtoToVehicle(dto)
	v.ID = id
	updated, err := h.service.Update(r.Context(), v)
	if err != nil {
		if errors.Is(err, ErrVehicleInvalid) {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: err.Error(),
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		if errors.Is(err, ErrVehicleNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(vehicleToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteVehicle godoc
// @Summary Delete a vehicle
// @Description Remove a vehicle and all its reservations. Admin only.
// @Tags Vehicle
// @Param vehicleId path int true "Vehicle ID"
// @Success 204
// @Failure 404 {string} string "Vehicle not found"
// @Router /api/vehicle/{vehicleId} [delete]
func (h *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := vehicleIdFromPath(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrVehicleNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func vehicleIdFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["vehicleId"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid vehicle ID",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return 0, false
	}
	return id, true
}

func vehicleToDTO(v Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:           v.ID,
		Name:         v.Name,
		LicensePlate: v.LicensePlate,
		Description:  v.Description,
		ColorHue:     v.ColorHue,
		IsActive:     v.IsActive,
	}
}

func dtoToVehicle(dto VehicleDTO) Vehicle {
	return Vehicle{
		ID:           dto.ID,
		Name:         dto.Name,
		LicensePlate: dto.LicensePlate,
		Description:  dto.Description,
		ColorHue:     dto.ColorHue,
		IsActive:     dto.IsActive,
	}
}
