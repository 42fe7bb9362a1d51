package reservation

import (
	"context"
	"sort"
	"time"
)

// RepositoryStub is an in-memory Repository for tests. It enforces the same
// per-vehicle non-overlap rule as the database exclusion constraint, so
// service tests exercise both the pre-check and the storage backstop.
type RepositoryStub struct {
	reservations      map[int]Reservation
	nextId            int
	GetByVehicleCalls int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		reservations: make(map[int]Reservation),
		nextId:       1,
	}
}

func (r *RepositoryStub) GetAll(_ context.Context) ([]Reservation, error) {
	all := make([]Reservation, 0, len(r.reservations))
	for _, res := range r.reservations {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].StartTime.Before(all[j].StartTime)
	})
	return all, nil
}

func (r *RepositoryStub) GetByDateRange(_ context.Context, from, to time.Time) ([]Reservation, error) {
	var matching []Reservation
	for _, res := range r.reservations {
		if res.Overlaps(from, to) {
			matching = append(matching, res)
		}
	}
	sort.Slice(matching, func(i, j int) bool {
		return matching[i].StartTime.Before(matching[j].StartTime)
	})
	return matching, nil
}

func (r *RepositoryStub) GetByVehicle(_ context.Context, vehicleId int) ([]Reservation, error) {
	r.GetByVehicleCalls++
	var matching []Reservation
	for _, res := range r.reservations {
		if res.VehicleID == vehicleId {
			matching = append(matching, res)
		}
	}
	sort.Slice(matching, func(i, j int) bool {
		return matching[i].StartTime.Before(matching[j].StartTime)
	})
	return matching, nil
}

func (r *RepositoryStub) Get(_ context.Context, id int) (Reservation, error) {
	res, found := r.reservations[id]
	if !found {
		return Reservation{}, ErrReservationNotFound
	}
	return res, nil
}

func (r *RepositoryStub) Create(_ context.Context, res Reservation) (Reservation, error) {
	if r.conflicts(res, 0) {
		return Reservation{}, ErrOverlap
	}
	res.ID = r.nextId
	r.nextId++
	r.reservations[res.ID] = res
	return res, nil
}

func (r *RepositoryStub) Update(_ context.Context, id int, patch Patch) (Reservation, error) {
	existing, found := r.reservations[id]
	if !found {
		return Reservation{}, ErrReservationNotFound
	}
	updated := patch.Apply(existing)
	if r.conflicts(updated, id) {
		return Reservation{}, ErrOverlap
	}
	r.reservations[id] = updated
	return updated, nil
}

func (r *RepositoryStub) Delete(_ context.Context, id int) error {
	if _, found := r.reservations[id]; !found {
		return ErrReservationNotFound
	}
	delete(r.reservations, id)
	return nil
}

func (r *RepositoryStub) conflicts(candidate Reservation, excludeId int) bool {
	for _, res := range r.reservations {
		if res.ID == excludeId || res.VehicleID != candidate.VehicleID {
			continue
		}
		if res.Overlaps(candidate.StartTime, candidate.EndTime) {
			return true
		}
	}
	return false
}

func (r *RepositoryStub) Cleanup() {
	r.reservations = make(map[int]Reservation)
	r.nextId = 1
	r.GetByVehicleCalls = 0
}
