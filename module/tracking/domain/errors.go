package domain

import "errors"

var (
	// ErrValidation marks a malformed position update. Nothing is recorded
	// when it is returned.
	ErrValidation = errors.New("invalid position update")

	// ErrInvalidZone marks a polygon with fewer than 3 vertices. A stored
	// zone that trips it skips geofence evaluation without failing the
	// ingest.
	ErrInvalidZone = errors.New("zone polygon needs at least 3 vertices")
)
