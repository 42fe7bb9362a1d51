package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Reservation, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]Reservation, error)
	GetByVehicle(ctx context.Context, vehicleId int) ([]Reservation, error)
	Get(ctx context.Context, id int) (Reservation, error)
	Create(ctx context.Context, res Reservation) (Reservation, error)
	Update(ctx context.Context, id int, patch Patch) (Reservation, error)
	Delete(ctx context.Context, id int) error
}

// exclusionViolation is the SQLSTATE raised when the reservations exclusion
// constraint rejects an overlapping write. It is the storage-level backstop
// for the service's overlap pre-check: of two racing writers, the slower one
// fails here instead of slipping past the application-level check.
const exclusionViolation = "23P01"

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectColumns = `id, vehicle_id, user_name, reason, start_time, end_time, notes, created_at`

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Reservation, error) {
	query := `SELECT ` + selectColumns + ` FROM reservations ORDER BY start_time`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		log.Errorf("failed to query reservations: %v", err)
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// GetByDateRange returns all reservations whose interval intersects the
// half-open window [from, to).
func (r *RepositoryImpl) GetByDateRange(ctx context.Context, from, to time.Time) ([]Reservation, error) {
	query := `SELECT ` + selectColumns + ` FROM reservations
				WHERE start_time < $1 AND end_time > $2
				ORDER BY start_time`
	rows, err := r.db.Query(ctx, query, to, from)
	if err != nil {
		log.Errorf("failed to query reservations by date range: %v", err)
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *RepositoryImpl) GetByVehicle(ctx context.Context, vehicleId int) ([]Reservation, error) {
	query := `SELECT ` + selectColumns + ` FROM reservations WHERE vehicle_id = $1 ORDER BY start_time`
	rows, err := r.db.Query(ctx, query, vehicleId)
	if err != nil {
		log.Errorf("failed to query reservations for vehicle %d: %v", vehicleId, err)
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (Reservation, error) {
	query := `SELECT ` + selectColumns + ` FROM reservations WHERE id = $1`
	res, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Reservation{}, ErrReservationNotFound
	} else if err != nil {
		log.Errorf("failed to get reservation %d: %v", id, err)
		return Reservation{}, err
	}
	return res, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, res Reservation) (Reservation, error) {
	query := `INSERT INTO reservations (vehicle_id, user_name, reason, start_time, end_time, notes, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		res.VehicleID,
		res.UserName,
		res.Reason,
		res.StartTime,
		res.EndTime,
		res.Notes,
		res.CreatedAt,
	).Scan(&res.ID)
	if err != nil {
		if isExclusionViolation(err) {
			return Reservation{}, ErrOverlap
		}
		log.Errorf("failed to create reservation: %v", err)
		return Reservation{}, err
	}
	return res, nil
}

// Update merges the patch into the stored row inside a transaction. The row is
// locked while merging so concurrent patches cannot interleave, and the
// exclusion constraint turns a racing overlap into ErrOverlap.
func (r *RepositoryImpl) Update(ctx context.Context, id int, patch Patch) (Reservation, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Reservation{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	query := `SELECT ` + selectColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`
	existing, err := scanReservation(tx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Reservation{}, ErrReservationNotFound
	} else if err != nil {
		log.Errorf("failed to get reservation %d for update: %v", id, err)
		return Reservation{}, err
	}

	merged := patch.Apply(existing)
	_, err = tx.Exec(ctx,
		`UPDATE reservations SET vehicle_id = $1, user_name = $2, reason = $3, start_time = $4, end_time = $5, notes = $6
			WHERE id = $7`,
		merged.VehicleID,
		merged.UserName,
		merged.Reason,
		merged.StartTime,
		merged.EndTime,
		merged.Notes,
		id,
	)
	if err != nil {
		if isExclusionViolation(err) {
			return Reservation{}, ErrOverlap
		}
		log.Errorf("failed to update reservation %d: %v", id, err)
		return Reservation{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Reservation{}, fmt.Errorf("commit transaction: %w", err)
	}
	return merged, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		log.Errorf("failed to delete reservation %d: %v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == exclusionViolation
}

func collect(rows pgx.Rows) ([]Reservation, error) {
	reservations := make([]Reservation, 0, 10)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			log.Errorf("failed to scan reservation row: %v", err)
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func scanReservation(row pgx.Row) (Reservation, error) {
	var res Reservation
	err := row.Scan(
		&res.ID,
		&res.VehicleID,
		&res.UserName,
		&res.Reason,
		&res.StartTime,
		&res.EndTime,
		&res.Notes,
		&res.CreatedAt,
	)
	if err != nil {
		return Reservation{}, err
	}
	return res, nil
}
