package reservation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fleetbook/fleetbook/internal/event_bus"
	"github.com/fleetbook/fleetbook/internal/utils"
	"github.com/fleetbook/fleetbook/pkg/user"
	"github.com/fleetbook/fleetbook/pkg/vehicle"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetAll(ctx context.Context) ([]Reservation, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]Reservation, error)
	GetByVehicle(ctx context.Context, vehicleId int) ([]Reservation, error)
	Get(ctx context.Context, id int) (Reservation, error)
	CheckOverlap(ctx context.Context, vehicleId int, start, end time.Time, excludeId int) (bool, error)
	Create(ctx context.Context, res Reservation) (Reservation, error)
	Update(ctx context.Context, id int, patch Patch) (Reservation, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo     Repository
	vehicles vehicle.Service
	clock    utils.Clock
	bus      *event_bus.EventBus
}

func NewService(repo Repository, vehicles vehicle.Service, clock utils.Clock, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{
		repo:     repo,
		vehicles: vehicles,
		clock:    clock,
		bus:      bus,
	}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Reservation, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) GetByDateRange(ctx context.Context, from, to time.Time) ([]Reservation, error) {
	return s.repo.GetByDateRange(ctx, from, to)
}

func (s *ServiceImpl) GetByVehicle(ctx context.Context, vehicleId int) ([]Reservation, error) {
	return s.repo.GetByVehicle(ctx, vehicleId)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Reservation, error) {
	return s.repo.Get(ctx, id)
}

// CheckOverlap reports whether the half-open interval [start, end) intersects
// any reservation on the given vehicle. excludeId removes one reservation from
// the comparison set (pass 0 for none); an update uses it to avoid comparing a
// reservation against itself. Pure read, no side effects.
func (s *ServiceImpl) CheckOverlap(ctx context.Context, vehicleId int, start, end time.Time, excludeId int) (bool, error) {
	existing, err := s.repo.GetByVehicle(ctx, vehicleId)
	if err != nil {
		return false, fmt.Errorf("failed to get reservations for vehicle %d: %w", vehicleId, err)
	}
	for _, other := range existing {
		if excludeId != 0 && other.ID == excludeId {
			continue
		}
		if other.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

// Create validates and persists a new reservation. The check order is fixed:
// field shape first, then vehicle existence, then the overlap check. An empty
// UserName defaults to the authenticated principal's username before
// validation runs.
func (s *ServiceImpl) Create(ctx context.Context, res Reservation) (Reservation, error) {
	if strings.TrimSpace(res.UserName) == "" {
		if username, err := user.CurrentUsername(ctx); err == nil {
			res.UserName = username
		}
	}
	if err := validateShape(res); err != nil {
		return Reservation{}, err
	}

	if _, err := s.vehicles.Get(ctx, res.VehicleID); err != nil {
		return Reservation{}, err
	}

	conflict, err := s.CheckOverlap(ctx, res.VehicleID, res.StartTime, res.EndTime, 0)
	if err != nil {
		return Reservation{}, err
	}
	if conflict {
		return Reservation{}, ErrOverlap
	}

	res.CreatedAt = s.clock.Now()
	created, err := s.repo.Create(ctx, res)
	if err != nil {
		return Reservation{}, err
	}

	s.publish(ctx, event_bus.ReservationCreatedEvent, event_bus.ReservationCreated{
		ID:        created.ID,
		VehicleID: created.VehicleID,
		UserName:  created.UserName,
		Reason:    created.Reason,
		StartTime: created.StartTime,
		EndTime:   created.EndTime,
	})
	return created, nil
}

// Update applies a partial update. Shape validation covers supplied fields
// only; the overlap check runs only when the patch touches the vehicle or the
// time window, and always against the effective post-update interval with the
// reservation itself excluded.
func (s *ServiceImpl) Update(ctx context.Context, id int, patch Patch) (Reservation, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Reservation{}, err
	}

	if err := validatePatch(patch); err != nil {
		return Reservation{}, err
	}

	if patch.TouchesInterval() {
		effective := patch.Apply(existing)
		if !effective.EndTime.After(effective.StartTime) {
			return Reservation{}, ErrInvalidInterval
		}
		if patch.VehicleID != nil {
			if _, err := s.vehicles.Get(ctx, *patch.VehicleID); err != nil {
				return Reservation{}, err
			}
		}
		conflict, err := s.CheckOverlap(ctx, effective.VehicleID, effective.StartTime, effective.EndTime, id)
		if err != nil {
			return Reservation{}, err
		}
		if conflict {
			return Reservation{}, ErrOverlap
		}
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return Reservation{}, err
	}

	s.publish(ctx, event_bus.ReservationUpdatedEvent, event_bus.ReservationUpdated{
		ID:        updated.ID,
		VehicleID: updated.VehicleID,
		UserName:  updated.UserName,
		StartTime: updated.StartTime,
		EndTime:   updated.EndTime,
	})
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, event_bus.ReservationDeletedEvent, event_bus.ReservationDeleted{
		ID:        existing.ID,
		VehicleID: existing.VehicleID,
	})
	return nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Warnf("failed to publish %s: %v", eventType, err)
	}
}

func validateShape(res Reservation) error {
	if strings.TrimSpace(res.UserName) == "" {
		return &ValidationError{Field: "userName", Message: "must not be empty"}
	}
	if strings.TrimSpace(res.Reason) == "" {
		return &ValidationError{Field: "reason", Message: "must not be empty"}
	}
	if res.StartTime.IsZero() {
		return &ValidationError{Field: "startTime", Message: "must be a valid timestamp"}
	}
	if res.EndTime.IsZero() {
		return &ValidationError{Field: "endTime", Message: "must be a valid timestamp"}
	}
	if !res.EndTime.After(res.StartTime) {
		return ErrInvalidInterval
	}
	return nil
}

func validatePatch(patch Patch) error {
	if patch.UserName != nil && strings.TrimSpace(*patch.UserName) == "" {
		return &ValidationError{Field: "userName", Message: "must not be empty"}
	}
	if patch.Reason != nil && strings.TrimSpace(*patch.Reason) == "" {
		return &ValidationError{Field: "reason", Message: "must not be empty"}
	}
	if patch.StartTime != nil && patch.StartTime.IsZero() {
		return &ValidationError{Field: "startTime", Message: "must be a valid timestamp"}
	}
	if patch.EndTime != nil && patch.EndTime.IsZero() {
		return &ValidationError{Field: "endTime", Message: "must be a valid timestamp"}
	}
	return nil
}
