package postgres

import (
	"context"
	"database/sql"

	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/internal/repository/database"
)

var _ database.SMSPositionRepository = (*SMSPositionRepo)(nil)

type SMSPositionRepo struct {
	db *sql.DB
}

func NewSMSPositionRepo(db *sql.DB) *SMSPositionRepo {
	return &SMSPositionRepo{db: db}
}

func (r *SMSPositionRepo) Insert(ctx context.Context, p *domain.SMSPosition) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sms_positions (vehicle_id, latitude, longitude, received_at) VALUES ($1, $2, $3, $4)`,
		p.VehicleID, p.Lat, p.Lng, p.ReceivedAt,
	)
	return err
}

func (r *SMSPositionRepo) List(ctx context.Context) ([]domain.SMSPosition, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT vehicle_id, latitude, longitude, received_at FROM sms_positions ORDER BY received_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.SMSPosition
	for rows.Next() {
		var p domain.SMSPosition
		if err := rows.Scan(&p.VehicleID, &p.Lat, &p.Lng, &p.ReceivedAt); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}
