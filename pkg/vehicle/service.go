package vehicle

import (
	"context"
	"fmt"
	"strings"
)

// goldenAngle spreads default hues over the color wheel so that neighboring
// vehicles get visually distinct calendar colors.
const goldenAngle = 137

type Service interface {
	GetAll(ctx context.Context) ([]Vehicle, error)
	Get(ctx context.Context, id int) (Vehicle, error)
	Create(ctx context.Context, vehicle Vehicle) (Vehicle, error)
	Update(ctx context.Context, vehicle Vehicle) (Vehicle, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

// GetAll lists the fleet. Vehicles without a stored hue get a deterministic
// default derived from their list position.
func (s *ServiceImpl) GetAll(ctx context.Context) ([]Vehicle, error) {
	vehicles, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range vehicles {
		if vehicles[i].ColorHue == nil {
			hue := defaultHue(i)
			vehicles[i].ColorHue = &hue
		}
	}
	return vehicles, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Vehicle, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, vehicle Vehicle) (Vehicle, error) {
	if err := validate(vehicle); err != nil {
		return Vehicle{}, err
	}
	if vehicle.IsActive != 0 && vehicle.IsActive != 1 {
		vehicle.IsActive = 1
	}
	id, err := s.repo.Create(ctx, vehicle)
	if err != nil {
		return Vehicle{}, err
	}
	vehicle.ID = id
	return vehicle, nil
}

func (s *ServiceImpl) Update(ctx context.Context, vehicle Vehicle) (Vehicle, error) {
	if err := validate(vehicle); err != nil {
		return Vehicle{}, err
	}
	if err := s.repo.Update(ctx, vehicle); err != nil {
		return Vehicle{}, err
	}
	return vehicle, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func validate(vehicle Vehicle) error {
	if strings.TrimSpace(vehicle.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrVehicleInvalid)
	}
	if strings.TrimSpace(vehicle.LicensePlate) == "" {
		return fmt.Errorf("%w: license plate must not be empty", ErrVehicleInvalid)
	}
	if vehicle.ColorHue != nil && (*vehicle.ColorHue < 0 || *vehicle.ColorHue > 360) {
		return fmt.Errorf("%w: color hue must be between 0 and 360", ErrVehicleInvalid)
	}
	return nil
}

func defaultHue(position int) int {
	return (position * goldenAngle) % 360
}
