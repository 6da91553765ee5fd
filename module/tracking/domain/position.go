package domain

import "time"

// PositionUpdate is a raw report as delivered by an ingestion channel.
// Latitude and longitude are pointers so a missing coordinate is
// distinguishable from zero; OwnerID may be empty when the channel carries
// no account context, in which case no zone is checked.
type PositionUpdate struct {
	OwnerID   string
	VehicleID string
	Latitude  *float64
	Longitude *float64
	Speed     *float64
	Timestamp time.Time
}

// Position is a validated, immutable sample.
type Position struct {
	VehicleID string    `json:"vehicle_id"`
	Lat       float64   `json:"latitude"`
	Lng       float64   `json:"longitude"`
	Speed     *float64  `json:"speed,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// PathPoint is one element of a vehicle's history path.
type PathPoint struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
	Speed     *float64  `json:"speed,omitempty"`
}

// History is a vehicle's ordered path plus the cumulative traveled distance.
// DistanceKm is updated incrementally on every append, never recomputed from
// the full path.
type History struct {
	VehicleID  string      `json:"vehicle_id"`
	Path       []PathPoint `json:"path"`
	DistanceKm float64     `json:"distance_km"`
	StartedAt  time.Time   `json:"start_time"`
}

// IngestResult carries what an ingestion produced: the updated history, and
// the alert if one was raised. On a failure after the history write the
// result is still returned alongside the error so the caller can tell
// partial success from total failure.
type IngestResult struct {
	History *History
	Alert   *Alert
}

type Vehicle struct {
	VehicleID string `json:"vehicle_id"`
}
