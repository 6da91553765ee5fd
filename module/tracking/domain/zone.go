package domain

import "github.com/haroldegbako/vehicule-tracker/module/tracking/geo"

// Zone is a user's surveillance boundary. Each user owns at most one zone;
// saving a new polygon replaces the previous one entirely.
type Zone struct {
	OwnerID string   `json:"owner_id"`
	Name    string   `json:"name"`
	Polygon geo.Ring `json:"polygon"`
}

const DefaultZoneName = "surveillance zone"
