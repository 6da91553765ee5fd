package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/internal/repository/database"
)

var _ database.AlertRepository = (*AlertRepo)(nil)

type AlertRepo struct {
	db *sql.DB
}

func NewAlertRepo(db *sql.DB) *AlertRepo {
	return &AlertRepo{db: db}
}

func (r *AlertRepo) Insert(ctx context.Context, a *domain.Alert) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO alerts (id, user_id, vehicle_id, kind, description, created_at, is_read, resolved)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.OwnerID, a.VehicleID, string(a.Kind), a.Description, a.CreatedAt, a.IsRead, a.Resolved,
	)
	return err
}

func (r *AlertRepo) Recent(ctx context.Context, vehicleID string, kind domain.AlertKind, since time.Time) ([]domain.Alert, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, vehicle_id, kind, description, created_at, is_read, resolved
		 FROM alerts WHERE vehicle_id = $1 AND kind = $2 AND created_at >= $3 ORDER BY created_at DESC`,
		vehicleID, string(kind), since,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanAlerts(rows)
}

func (r *AlertRepo) List(ctx context.Context, filter *domain.AlertFilter) ([]domain.Alert, error) {
	query := `SELECT id, user_id, vehicle_id, kind, description, created_at, is_read, resolved FROM alerts`
	var args []any
	var conds []string

	if filter.VehicleID != "" {
		args = append(args, filter.VehicleID)
		conds = append(conds, fmt.Sprintf("vehicle_id = $%d", len(args)))
	}
	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		conds = append(conds, fmt.Sprintf("kind = $%d", len(args)))
	}
	if filter.UnreadOnly {
		conds = append(conds, "is_read = FALSE")
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanAlerts(rows)
}

func (r *AlertRepo) MarkRead(ctx context.Context, alertID string) (bool, error) {
	return r.exec(ctx, `UPDATE alerts SET is_read = TRUE WHERE id = $1`, alertID)
}

func (r *AlertRepo) Resolve(ctx context.Context, alertID string) (bool, error) {
	return r.exec(ctx, `UPDATE alerts SET resolved = TRUE WHERE id = $1`, alertID)
}

func (r *AlertRepo) Delete(ctx context.Context, alertID string) (bool, error) {
	return r.exec(ctx, `DELETE FROM alerts WHERE id = $1`, alertID)
}

func (r *AlertRepo) exec(ctx context.Context, query, alertID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, alertID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanAlerts(rows *sql.Rows) ([]domain.Alert, error) {
	var results []domain.Alert
	for rows.Next() {
		var a domain.Alert
		var kind string
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.VehicleID, &kind, &a.Description, &a.CreatedAt, &a.IsRead, &a.Resolved); err != nil {
			return nil, err
		}
		a.Kind = domain.AlertKind(kind)
		results = append(results, a)
	}
	return results, rows.Err()
}
