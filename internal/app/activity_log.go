package app

import (
	"github.com/fleetbook/fleetbook/internal/event_bus"
	"github.com/fleetbook/fleetbook/pkg/user"
	log "github.com/sirupsen/logrus"
)

// registerActivityLog subscribes to reservation lifecycle events and writes a
// structured audit line for each, tagged with the acting principal when known.
func registerActivityLog(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped(bus, event_bus.ReservationCreatedEvent, func(e event_bus.EventT[event_bus.ReservationCreated]) error {
		actor, _ := user.CurrentUsername(e.Context())
		log.WithFields(log.Fields{
			"reservationId": e.Data.ID,
			"vehicleId":     e.Data.VehicleID,
			"userName":      e.Data.UserName,
			"startTime":     e.Data.StartTime,
			"endTime":       e.Data.EndTime,
			"actor":         actor,
		}).Info("reservation created")
		return nil
	})

	event_bus.SubscribeTyped(bus, event_bus.ReservationUpdatedEvent, func(e event_bus.EventT[event_bus.ReservationUpdated]) error {
		actor, _ := user.CurrentUsername(e.Context())
		log.WithFields(log.Fields{
			"reservationId": e.Data.ID,
			"vehicleId":     e.Data.VehicleID,
			"startTime":     e.Data.StartTime,
			"endTime":       e.Data.EndTime,
			"actor":         actor,
		}).Info("reservation updated")
		return nil
	})

	event_bus.SubscribeTyped(bus, event_bus.ReservationDeletedEvent, func(e event_bus.EventT[event_bus.ReservationDeleted]) error {
		actor, _ := user.CurrentUsername(e.Context())
		log.WithFields(log.Fields{
			"reservationId": e.Data.ID,
			"vehicleId":     e.Data.VehicleID,
			"actor":         actor,
		}).Info("reservation deleted")
		return nil
	})
}
