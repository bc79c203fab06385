package offers

import "math"

const (
	earthRadiusKM  = 6371.0
	kmPerDegreeLat = 111.0
)

// boundingBox returns the lat/lon half-deltas in degrees for a point-radius
// query. Longitude degrees narrow towards the poles, hence the cos
// correction at the center latitude.
func boundingBox(lat, radiusKM float64) (latDiff, lonDiff float64) {
	latDiff = radiusKM / kmPerDegreeLat
	lonDiff = radiusKM / (kmPerDegreeLat * math.Cos(lat*math.Pi/180))
	return latDiff, lonDiff
}

// DistanceKM is the great-circle distance between two points by the
// spherical law of cosines. It mirrors the SQL predicate built in
// geoPredicate so test expectations and query behavior agree.
func DistanceKM(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	cosC := math.Sin(lat1*rad)*math.Sin(lat2*rad) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Cos((lon2-lon1)*rad)
	// Guard acos against floating point drift just outside [-1, 1].
	if cosC > 1 {
		cosC = 1
	} else if cosC < -1 {
		cosC = -1
	}
	return math.Acos(cosC) * earthRadiusKM
}

// geoPredicate combines the box pre-filter with the exact spherical check.
// Both must pass: the box alone admits corner-distortion false positives.
func geoPredicate(lat, lon, radiusKM float64) Predicate {
	latDiff, lonDiff := boundingBox(lat, radiusKM)
	return Predicate{
		Expr: "offers.lat BETWEEN ? AND ? AND offers.lon BETWEEN ? AND ? AND " +
			"ACOS(SIN(RADIANS(?)) * SIN(RADIANS(offers.lat)) + " +
			"COS(RADIANS(?)) * COS(RADIANS(offers.lat)) * " +
			"COS(RADIANS(offers.lon) - RADIANS(?))) * ? <= ?",
		Args: []interface{}{
			lat - latDiff, lat + latDiff,
			lon - lonDiff, lon + lonDiff,
			lat, lat, lon, earthRadiusKM, radiusKM,
		},
	}
}
