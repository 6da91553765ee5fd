package database

import (
	"context"
	"time"

	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/geo"
)

type PositionRepository interface {
	Insert(ctx context.Context, p *domain.Position) error
	GetLatest(ctx context.Context, vehicleID string) (*domain.Position, error)
	GetAllVehicles(ctx context.Context) ([]domain.Vehicle, error)
}

type HistoryRepository interface {
	// Get returns (nil, nil) when the vehicle has no history yet.
	Get(ctx context.Context, vehicleID string) (*domain.History, error)
	Upsert(ctx context.Context, h *domain.History) error
}

type ZoneRepository interface {
	// Get returns (nil, nil) when the owner has no zone registered.
	Get(ctx context.Context, ownerID string) (*domain.Zone, error)
	// Replace atomically swaps the owner's zone; a concurrent reader never
	// observes the owner without a zone mid-replace.
	Replace(ctx context.Context, ownerID, name string, polygon geo.Ring) error
	// Delete reports whether a zone existed.
	Delete(ctx context.Context, ownerID string) (bool, error)
}

type AlertRepository interface {
	Insert(ctx context.Context, a *domain.Alert) error
	// Recent returns alerts of the given (vehicle, kind) created at or after
	// the cutoff.
	Recent(ctx context.Context, vehicleID string, kind domain.AlertKind, since time.Time) ([]domain.Alert, error)
	List(ctx context.Context, filter *domain.AlertFilter) ([]domain.Alert, error)
	MarkRead(ctx context.Context, alertID string) (bool, error)
	Resolve(ctx context.Context, alertID string) (bool, error)
	Delete(ctx context.Context, alertID string) (bool, error)
}

type SMSPositionRepository interface {
	Insert(ctx context.Context, p *domain.SMSPosition) error
	List(ctx context.Context) ([]domain.SMSPosition, error)
}
