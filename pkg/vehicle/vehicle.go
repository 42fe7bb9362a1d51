package vehicle

import "errors"

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrVehicleInvalid  = errors.New("invalid vehicle data")
)

// Vehicle is a bookable fleet vehicle. ColorHue is the HSL hue (0-360) used by
// the calendar to color the vehicle's reservations; nil means no hue was
// chosen and a deterministic default is assigned when listing.
type Vehicle struct {
	ID           int
	Name         string
	LicensePlate string
	Description  string
	ColorHue     *int
	IsActive     int
}
