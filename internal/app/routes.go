package app

import (
	"github.com/fleetbook/fleetbook/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints. Any authenticated user may view
// and mutate reservations; vehicle and user administration is admin-only.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Auth
	r.HandleFunc("/api/auth/login", deps.AuthHandler.Login).Methods("POST")

	// User management
	r.HandleFunc("/api/user/current", requireAuth(deps.UserHandler.CurrentUser)).Methods("GET")
	r.HandleFunc("/api/user", requireAdmin(deps.UserHandler.GetUsers)).Methods("GET")
	r.HandleFunc("/api/user", requireAdmin(deps.UserHandler.CreateUser)).Methods("POST")
	r.HandleFunc("/api/user/{userId}", requireAdmin(deps.UserHandler.DeleteUser)).Methods("DELETE")

	// Vehicles
	r.HandleFunc("/api/vehicle", requireAuth(deps.VehicleHandler.GetVehicles)).Methods("GET")
	r.HandleFunc("/api/vehicle/{vehicleId}", requireAuth(deps.VehicleHandler.GetVehicle)).Methods("GET")
	r.HandleFunc("/api/vehicle", requireAdmin(deps.VehicleHandler.CreateVehicle)).Methods("POST")
	r.HandleFunc("/api/vehicle/{vehicleId}", requireAdmin(deps.VehicleHandler.UpdateVehicle)).Methods("PUT")
	r.HandleFunc("/api/vehicle/{vehicleId}", requireAdmin(deps.VehicleHandler.DeleteVehicle)).Methods("DELETE")

	// Reservations
	r.HandleFunc("/api/reservation", requireAuth(deps.ReservationHandler.GetReservations)).Methods("GET")
	r.HandleFunc("/api/reservation/{reservationId}", requireAuth(deps.ReservationHandler.GetReservation)).Methods("GET")
	r.HandleFunc("/api/reservation", requireAuth(deps.ReservationHandler.CreateReservation)).Methods("POST")
	r.HandleFunc("/api/reservation/{reservationId}", requireAuth(deps.ReservationHandler.UpdateReservation)).Methods("PATCH")
	r.HandleFunc("/api/reservation/{reservationId}", requireAuth(deps.ReservationHandler.DeleteReservation)).Methods("DELETE")
}
