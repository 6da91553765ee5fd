package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/geo"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/internal/repository/database"
)

var _ database.ZoneRepository = (*ZoneRepo)(nil)

type ZoneRepo struct {
	db *sql.DB
}

func NewZoneRepo(db *sql.DB) *ZoneRepo {
	return &ZoneRepo{db: db}
}

func (r *ZoneRepo) Get(ctx context.Context, ownerID string) (*domain.Zone, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, name, polygon FROM user_zones WHERE user_id = $1`,
		ownerID,
	)

	var z domain.Zone
	var polygon []byte
	if err := row.Scan(&z.OwnerID, &z.Name, &polygon); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(polygon, &z.Polygon); err != nil {
		return nil, fmt.Errorf("decode polygon: %w", err)
	}
	return &z, nil
}

// Replace is a single upsert so readers never observe a missing zone in the
// middle of a save.
func (r *ZoneRepo) Replace(ctx context.Context, ownerID, name string, polygon geo.Ring) error {
	encoded, err := json.Marshal(polygon)
	if err != nil {
		return fmt.Errorf("encode polygon: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO user_zones (user_id, name, polygon) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET name = EXCLUDED.name, polygon = EXCLUDED.polygon`,
		ownerID, name, encoded,
	)
	return err
}

func (r *ZoneRepo) Delete(ctx context.Context, ownerID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_zones WHERE user_id = $1`, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
