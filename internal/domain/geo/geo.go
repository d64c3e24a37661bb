package geo

import "math"

// EarthRadiusMeters is the mean radius of Earth used for Haversine distance.
const EarthRadiusMeters = 6_371_000.0

// Haversine returns the great-circle distance in meters between two points
// specified by latitude and longitude in degrees.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// Distance is the fail-open variant of Haversine: malformed coordinates on
// either side yield +Inf, so a bad record never passes a distance filter.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	if !ValidateCoordinates(lat1, lng1) || !ValidateCoordinates(lat2, lng2) {
		return math.Inf(1)
	}
	return Haversine(lat1, lng1, lat2, lng2)
}

// PlanarDeltaDeg returns the Euclidean norm of (Δlat, Δlng) in degrees.
// This is a cheap planar approximation, not a geodesic distance; it degrades
// at high latitudes where a degree of longitude shrinks. Malformed
// coordinates yield +Inf.
func PlanarDeltaDeg(lat1, lng1, lat2, lng2 float64) float64 {
	if !ValidateCoordinates(lat1, lng1) || !ValidateCoordinates(lat2, lng2) {
		return math.Inf(1)
	}
	dLat := lat2 - lat1
	dLng := lng2 - lng1
	return math.Sqrt(dLat*dLat + dLng*dLng)
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in
// [-180,180]. NaN fails both checks.
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
