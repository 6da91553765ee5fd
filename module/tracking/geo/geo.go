package geo

import "math"

const earthRadiusKm = 6371

// DistanceKm returns the great-circle distance in kilometers between two
// points given as (lat, lng) degree pairs, using the haversine formula.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Ring is an ordered polygon ring of [lng, lat] vertex pairs, the same shape
// zones are stored in. The ring may be explicitly closed (first vertex
// repeated at the end) or left open; both are handled.
type Ring [][2]float64

// Contains reports whether the point lies inside the ring, using even-odd
// ray casting. The result does not depend on winding direction or on which
// vertex the ring starts at. Rings with fewer than 3 vertices contain nothing.
func (r Ring) Contains(lat, lng float64) bool {
	n := len(r)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := r[i][0], r[i][1]
		xj, yj := r[j][0], r[j][1]
		if (yi > lat) != (yj > lat) && lng < (xj-xi)*(lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
