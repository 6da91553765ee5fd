package service

import (
	"context"
	"fmt"

	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/geo"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/internal/repository/database"
)

// ZoneService manages the one-zone-per-user boundary store.
type ZoneService struct {
	zones database.ZoneRepository
}

func NewZoneService(zones database.ZoneRepository) *ZoneService {
	return &ZoneService{zones: zones}
}

// Set replaces the owner's zone with the given polygon. The previous zone,
// if any, is gone entirely; there is no merging.
func (s *ZoneService) Set(ctx context.Context, ownerID, name string, polygon geo.Ring) error {
	if ownerID == "" {
		return fmt.Errorf("%w: owner id is required", domain.ErrValidation)
	}
	if len(polygon) < 3 {
		return domain.ErrInvalidZone
	}
	if name == "" {
		name = domain.DefaultZoneName
	}
	return s.zones.Replace(ctx, ownerID, name, polygon)
}

// Get returns (nil, nil) when the owner has no zone.
func (s *ZoneService) Get(ctx context.Context, ownerID string) (*domain.Zone, error) {
	return s.zones.Get(ctx, ownerID)
}

// Delete reports whether a zone existed for the owner.
func (s *ZoneService) Delete(ctx context.Context, ownerID string) (bool, error) {
	return s.zones.Delete(ctx, ownerID)
}
