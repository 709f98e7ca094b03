// FILE: pkg/geo/distance.go
// PURPOSE: Geo-distance primitives for radius filtering of events

package geo

import "math"

// EarthRadiusMiles is the mean Earth radius used for Haversine.
const EarthRadiusMiles = 3959.0

// DefaultRadiusMiles is the default search radius when the caller gives none.
const DefaultRadiusMiles = 10.0

// BoundingBox is a rectangular lat/lng pre-filter around a center point.
// It slightly overestimates the circle (the corners extend past it), which
// is fine because the exact Haversine cutoff runs on the reduced set.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// NewBoundingBox computes the box for radiusMiles around (lat, lng).
// 1 degree latitude ≈ 69 miles; 1 degree longitude ≈ 69 * cos(lat) miles,
// so the box widens toward the poles.
func NewBoundingBox(lat, lng, radiusMiles float64) BoundingBox {
	latDelta := radiusMiles / 69.0
	lngDelta := radiusMiles / (69.0 * math.Cos(lat*math.Pi/180.0))

	return BoundingBox{
		MinLat: lat - latDelta,
		MaxLat: lat + latDelta,
		MinLng: lng - lngDelta,
		MaxLng: lng + lngDelta,
	}
}

// Contains reports whether the point falls inside the box.
func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// HaversineMiles returns the great-circle distance between two points in miles.
func HaversineMiles(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLng := (lng2 - lng1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return EarthRadiusMiles * c
}
