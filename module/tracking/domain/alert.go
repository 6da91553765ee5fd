package domain

import "time"

type AlertKind string

// Only AlertOutOfGeofence is raised by this module. The remaining kinds are
// part of the taxonomy so external producers can store and filter them.
const (
	AlertOutOfGeofence AlertKind = "out_of_geofence"
	AlertSpeeding      AlertKind = "speeding"
	AlertNoSignal      AlertKind = "no_signal"
	AlertMaintenance   AlertKind = "maintenance"
	AlertIgnitionOn    AlertKind = "ignition_on"
	AlertIgnitionOff   AlertKind = "ignition_off"
)

// Valid reports whether k is a known alert kind.
func (k AlertKind) Valid() bool {
	switch k {
	case AlertOutOfGeofence, AlertSpeeding, AlertNoSignal, AlertMaintenance, AlertIgnitionOn, AlertIgnitionOff:
		return true
	}
	return false
}

// Alert content is fixed at creation; only the read and resolved flags
// change afterwards.
type Alert struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id,omitempty"`
	VehicleID   string    `json:"vehicle_id"`
	Kind        AlertKind `json:"kind"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	IsRead      bool      `json:"is_read"`
	Resolved    bool      `json:"resolved"`
}

// AlertFilter narrows an alert listing. Zero values mean "no constraint".
type AlertFilter struct {
	VehicleID  string
	Kind       AlertKind
	UnreadOnly bool
	Limit      int
}
