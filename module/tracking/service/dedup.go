package service

import (
	"time"

	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
)

// DefaultDedupWindow is how long a (vehicle, kind) pair stays muted after an
// alert is raised.
const DefaultDedupWindow = 5 * time.Minute

// ShouldEmit decides whether a candidate alert gets created: it is approved
// unless an alert of the same (vehicle, kind) exists within the window
// before now. Pure decision over caller-supplied history, so the policy is
// testable without storage.
func ShouldEmit(vehicleID string, kind domain.AlertKind, now time.Time, recent []domain.Alert, window time.Duration) bool {
	cutoff := now.Add(-window)
	for _, a := range recent {
		if a.VehicleID != vehicleID || a.Kind != kind {
			continue
		}
		if !a.CreatedAt.Before(cutoff) {
			return false
		}
	}
	return true
}
