package postgres

import (
	"context"
	"database/sql"

	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/internal/repository/database"
)

var _ database.PositionRepository = (*PositionRepo)(nil)

type PositionRepo struct {
	db *sql.DB
}

func NewPositionRepo(db *sql.DB) *PositionRepo {
	return &PositionRepo{db: db}
}

func (r *PositionRepo) Insert(ctx context.Context, p *domain.Position) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vehicle_positions (vehicle_id, latitude, longitude, speed, timestamp) VALUES ($1, $2, $3, $4, $5)`,
		p.VehicleID, p.Lat, p.Lng, p.Speed, p.Timestamp,
	)
	return err
}

func (r *PositionRepo) GetLatest(ctx context.Context, vehicleID string) (*domain.Position, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT vehicle_id, latitude, longitude, speed, timestamp FROM vehicle_positions WHERE vehicle_id = $1 ORDER BY timestamp DESC LIMIT 1`,
		vehicleID,
	)

	var p domain.Position
	if err := row.Scan(&p.VehicleID, &p.Lat, &p.Lng, &p.Speed, &p.Timestamp); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PositionRepo) GetAllVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT vehicle_id FROM vehicle_positions ORDER BY vehicle_id`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.VehicleID); err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, rows.Err()
}
