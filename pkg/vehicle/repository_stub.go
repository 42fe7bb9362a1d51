package vehicle

import (
	"context"
	"sort"
)

type RepositoryStub struct {
	nextId int
	data   map[int]Vehicle
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		nextId: 0,
		data:   map[int]Vehicle{},
	}
}

func (s *RepositoryStub) GetAll(ctx context.Context) ([]Vehicle, error) {
	vehicles := make([]Vehicle, 0, len(s.data))
	for _, v := range s.data {
		vehicles = append(vehicles, v)
	}
	sort.Slice(vehicles, func(i, j int) bool { return vehicles[i].ID < vehicles[j].ID })
	return vehicles, nil
}

func (s *RepositoryStub) Get(ctx context.Context, id int) (Vehicle, error) {
	v, ok := s.data[id]
	if !ok {
		return Vehicle{}, ErrVehicleNotFound
	}
	return v, nil
}

func (s *RepositoryStub) Create(ctx context.Context, vehicle Vehicle) (int, error) {
	s.nextId++
	vehicle.ID = s.nextId
	s.data[vehicle.ID] = vehicle
	return vehicle.ID, nil
}

func (s *RepositoryStub) Update(ctx context.Context, vehicle Vehicle) error {
	if _, ok := s.data[vehicle.ID]; !ok {
		return ErrVehicleNotFound
	}
	s.data[vehicle.ID] = vehicle
	return nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id int) error {
	if _, ok := s.data[id]; !ok {
		return ErrVehicleNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *RepositoryStub) Cleanup() {
	s.data = map[int]Vehicle{}
	s.nextId = 0
}
