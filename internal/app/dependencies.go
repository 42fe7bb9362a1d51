package app

import (
	"time"

	"github.com/fleetbook/fleetbook/internal/auth"
	"github.com/fleetbook/fleetbook/internal/config"
	"github.com/fleetbook/fleetbook/internal/event_bus"
	"github.com/fleetbook/fleetbook/internal/utils"
	"github.com/fleetbook/fleetbook/pkg/reservation"
	"github.com/fleetbook/fleetbook/pkg/user"
	"github.com/fleetbook/fleetbook/pkg/vehicle"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	TokenIssuer *auth.TokenIssuer
	AuthHandler *auth.Handler

	UserService user.Service
	UserHandler *user.Handler

	VehicleService vehicle.Service
	VehicleHandler *vehicle.Handler

	ReservationRepo    reservation.Repository
	ReservationService reservation.Service
	ReservationHandler *reservation.Handler

	EventBus *event_bus.EventBus
	Clock    utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	deps.UserService = user.NewUserService(user.NewUserRepo(db), deps.Clock)
	deps.UserHandler = user.NewHandler(deps.UserService)

	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	deps.TokenIssuer = auth.NewTokenIssuer(cfg.Auth.TokenSecret, tokenTTL, deps.Clock)
	deps.AuthHandler = auth.NewHandler(deps.UserService, deps.TokenIssuer)

	deps.VehicleService = vehicle.NewService(vehicle.NewRepository(db))
	deps.VehicleHandler = vehicle.NewHandler(deps.VehicleService)

	deps.ReservationRepo = reservation.NewRepository(db)
	deps.ReservationService = reservation.NewService(deps.ReservationRepo, deps.VehicleService, deps.Clock, deps.EventBus)
	deps.ReservationHandler = reservation.NewHandler(deps.ReservationService)

	registerActivityLog(deps.EventBus)

	return deps
}
