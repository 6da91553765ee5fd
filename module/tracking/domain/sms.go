package domain

import "time"

// DefaultSMSVehicleID is used when an SMS report carries no vehicle id.
const DefaultSMSVehicleID = "LILYGO-GPS-001"

// SMSPosition is a position report received over the SMS channel. These are
// kept as a raw append-only audit log and are never merged into a vehicle's
// history.
type SMSPosition struct {
	VehicleID  string    `json:"vehicle_id"`
	Lat        float64   `json:"latitude"`
	Lng        float64   `json:"longitude"`
	ReceivedAt time.Time `json:"timestamp"`
}
