package vehicle

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Vehicle, error)
	Get(ctx context.Context, id int) (Vehicle, error)
	Create(ctx context.Context, vehicle Vehicle) (int, error)
	Update(ctx context.Context, vehicle Vehicle) error
	Delete(ctx context.Context, id int) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Vehicle, error) {
	query := `SELECT id, name, license_plate, description, color_hue, is_active FROM vehicles ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		log.Errorf("failed to query vehicles: %v", err)
		return nil, err
	}
	defer rows.Close()

	vehicles := make([]Vehicle, 0, 10)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			log.Errorf("failed to scan vehicle row: %v", err)
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (Vehicle, error) {
	query := `SELECT id, name, license_plate, description, color_hue, is_active FROM vehicles WHERE id = $1`
	v, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Vehicle{}, ErrVehicleNotFound
	} else if err != nil {
		log.Errorf("failed to get vehicle %d: %v", id, err)
		return Vehicle{}, err
	}
	return v, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, vehicle Vehicle) (int, error) {
	query := `INSERT INTO vehicles (name, license_plate, description, color_hue, is_active)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query,
		vehicle.Name,
		vehicle.LicensePlate,
		vehicle.Description,
		vehicle.ColorHue,
		vehicle.IsActive,
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create vehicle: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, vehicle Vehicle) error {
	query := `UPDATE vehicles SET name = $1, license_plate = $2, description = $3, color_hue = $4, is_active = $5
				WHERE id = $6`
	tag, err := r.db.Exec(ctx, query,
		vehicle.Name,
		vehicle.LicensePlate,
		vehicle.Description,
		vehicle.ColorHue,
		vehicle.IsActive,
		vehicle.ID,
	)
	if err != nil {
		log.Errorf("failed to update vehicle %d: %v", vehicle.ID, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

// Delete removes the vehicle. Its reservations go with it through the foreign
// key cascade.
func (r *RepositoryImpl) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		log.Errorf("failed to delete vehicle %d: %v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

func scanVehicle(row pgx.Row) (Vehicle, error) {
	var v Vehicle
	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.LicensePlate,
		&v.Description,
		&v.ColorHue,
		&v.IsActive,
	)
	if err != nil {
		return Vehicle{}, err
	}
	return v, nil
}
