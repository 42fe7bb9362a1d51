package event_bus

import "time"

const (
	ReservationCreatedEvent EventType = "reservation.created"
	ReservationUpdatedEvent EventType = "reservation.updated"
	ReservationDeletedEvent EventType = "reservation.deleted"
)

type ReservationCreated struct {
	ID        int
	VehicleID int
	UserName  string
	Reason    string
	StartTime time.Time
	EndTime   time.Time
}

type ReservationUpdated struct {
	ID        int
	VehicleID int
	UserName  string
	StartTime time.Time
	EndTime   time.Time
}

type ReservationDeleted struct {
	ID        int
	VehicleID int
}
