package service

import (
	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
)

// Evaluate reports whether the point lies inside the zone's polygon. It is a
// pure function of its inputs; "owner has no zone" is handled by the caller
// and never reaches here. A polygon with fewer than 3 vertices returns
// ErrInvalidZone.
func Evaluate(zone *domain.Zone, lat, lng float64) (bool, error) {
	if zone == nil || len(zone.Polygon) < 3 {
		return false, domain.ErrInvalidZone
	}
	return zone.Polygon.Contains(lat, lng), nil
}
