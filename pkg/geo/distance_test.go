package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineMiles(t *testing.T) {
	// Newton, MA and Cambridge, MA
	newtonLat, newtonLng := 42.3370, -71.2092
	cambridgeLat, cambridgeLng := 42.3736, -71.1097

	t.Run("identical points are zero", func(t *testing.T) {
		assert.Equal(t, 0.0, HaversineMiles(newtonLat, newtonLng, newtonLat, newtonLng))
	})

	t.Run("symmetric", func(t *testing.T) {
		ab := HaversineMiles(newtonLat, newtonLng, cambridgeLat, cambridgeLng)
		ba := HaversineMiles(cambridgeLat, cambridgeLng, newtonLat, newtonLng)
		assert.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("newton to cambridge", func(t *testing.T) {
		d := HaversineMiles(newtonLat, newtonLng, cambridgeLat, cambridgeLng)
		assert.Greater(t, d, 4.0)
		assert.Less(t, d, 7.0)
	})
}

func TestNewBoundingBox(t *testing.T) {
	box := NewBoundingBox(42.3370, -71.2092, 10.0)

	// 10 miles / 69 ≈ 0.145 degrees of latitude either side
	assert.InDelta(t, 42.3370-10.0/69.0, box.MinLat, 1e-6)
	assert.InDelta(t, 42.3370+10.0/69.0, box.MaxLat, 1e-6)

	// Longitude span must be wider than latitude span away from the equator
	assert.Greater(t, box.MaxLng-box.MinLng, box.MaxLat-box.MinLat)

	t.Run("contains center", func(t *testing.T) {
		assert.True(t, box.Contains(42.3370, -71.2092))
	})

	t.Run("excludes far point", func(t *testing.T) {
		assert.False(t, box.Contains(40.7128, -74.0060)) // NYC
	})
}
