package coursedomain

import (
	"math"
	"sort"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// NearbyLimit caps nearby and search listings.
const NearbyLimit = 20

// HaversineKm returns the great-circle distance between a and b in kilometres.
func HaversineKm(a, b Coordinate) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// NearestCourses sorts courses by distance from origin and keeps the closest limit.
// Distances are rounded to one decimal.
func NearestCourses(courses []Course, origin Coordinate, limit int) []CourseSummary {
	out := make([]CourseSummary, 0, len(courses))
	for _, c := range courses {
		d := math.Round(HaversineKm(origin, c.Location)*10) / 10
		out = append(out, CourseSummary{Course: c, DistanceKm: &d})
	}
	sort.SliceStable(out, func(i, j int) bool { return *out[i].DistanceKm < *out[j].DistanceKm })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
