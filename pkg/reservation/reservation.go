package reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrOverlap             = errors.New("vehicle is already booked in this time window")
	ErrInvalidInterval     = errors.New("end time must be after start time")
)

// ValidationError reports a malformed or missing required field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Reservation books a vehicle for the half-open interval [StartTime, EndTime).
type Reservation struct {
	ID        int
	VehicleID int
	UserName  string
	Reason    string
	StartTime time.Time
	EndTime   time.Time
	Notes     string
	CreatedAt time.Time
}

// Overlaps reports whether the reservation's interval shares any instant with
// the half-open interval [start, end). Touching endpoints do not count, so
// back-to-back bookings are allowed.
func (r Reservation) Overlaps(start, end time.Time) bool {
	return start.Before(r.EndTime) && end.After(r.StartTime)
}

// Patch is a partial reservation update. Nil fields keep the stored value.
type Patch struct {
	VehicleID *int
	UserName  *string
	Reason    *string
	StartTime *time.Time
	EndTime   *time.Time
	Notes     *string
}

// TouchesInterval reports whether applying the patch can change the
// reservation's vehicle or time window, which is what decides whether an
// overlap check is needed at all.
func (p Patch) TouchesInterval() bool {
	return p.VehicleID != nil || p.StartTime != nil || p.EndTime != nil
}

// Apply merges the patch into the stored reservation and returns the effective
// post-update record. ID and CreatedAt are immutable.
func (p Patch) Apply(existing Reservation) Reservation {
	merged := existing
	if p.VehicleID != nil {
		merged.VehicleID = *p.VehicleID
	}
	if p.UserName != nil {
		merged.UserName = *p.UserName
	}
	if p.Reason != nil {
		merged.Reason = *p.Reason
	}
	if p.StartTime != nil {
		merged.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		merged.EndTime = *p.EndTime
	}
	if p.Notes != nil {
		merged.Notes = *p.Notes
	}
	return merged
}
