// Package geo provides ZIP validation and great-circle distance helpers for
// lead distribution. Helpers are fail-safe: bad input yields sentinel values
// (false, +Inf) rather than errors.
package geo

import "math"

// earthRadiusMiles is the mean Earth radius used for Haversine distances.
const earthRadiusMiles = 3958.8

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// IsValidZip reports whether zip is exactly five ASCII digits.
// No real-world postal validation is attempted.
func IsValidZip(zip string) bool {
	if len(zip) != 5 {
		return false
	}
	for i := 0; i < len(zip); i++ {
		if zip[i] < '0' || zip[i] > '9' {
			return false
		}
	}
	return true
}

// Distance computes the Haversine great-circle distance in miles between two
// coordinate pairs. Any NaN input yields +Inf so that comparisons against a
// distance threshold always read as "too far".
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	if math.IsNaN(lat1) || math.IsNaN(lon1) || math.IsNaN(lat2) || math.IsNaN(lon2) {
		return math.Inf(1)
	}

	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

// DistanceBetween computes the distance between two optional coordinate pairs.
// A nil pair yields +Inf.
func DistanceBetween(from, to *Coordinates) float64 {
	if from == nil || to == nil {
		return math.Inf(1)
	}
	return Distance(from.Lat, from.Lng, to.Lat, to.Lng)
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
