package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/internal/repository/database"
)

var _ database.HistoryRepository = (*HistoryRepo)(nil)

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Get(ctx context.Context, vehicleID string) (*domain.History, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT vehicle_id, path, distance_km, start_time FROM tracking_history WHERE vehicle_id = $1`,
		vehicleID,
	)

	var h domain.History
	var path []byte
	if err := row.Scan(&h.VehicleID, &path, &h.DistanceKm, &h.StartedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(path, &h.Path); err != nil {
		return nil, fmt.Errorf("decode path: %w", err)
	}
	return &h, nil
}

func (r *HistoryRepo) Upsert(ctx context.Context, h *domain.History) error {
	path, err := json.Marshal(h.Path)
	if err != nil {
		return fmt.Errorf("encode path: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO tracking_history (vehicle_id, path, distance_km, start_time) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (vehicle_id) DO UPDATE SET path = EXCLUDED.path, distance_km = EXCLUDED.distance_km`,
		h.VehicleID, path, h.DistanceKm, h.StartedAt,
	)
	return err
}
