// Package geo handles geometric predicates and coordinate conversions.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// circleSegments controls how finely buffer circles are approximated.
const circleSegments = 64

// Circle returns a closed polygon approximating a circle of the given radius
// around center. Units are those of the input coordinates, so for metric
// buffers the center must already be in a projected system.
func Circle(center orb.Point, radius float64) orb.Polygon {
	ring := make(orb.Ring, 0, circleSegments+1)
	for i := 0; i < circleSegments; i++ {
		angle := 2 * math.Pi * float64(i) / circleSegments
		ring = append(ring, orb.Point{
			center[0] + radius*math.Cos(angle),
			center[1] + radius*math.Sin(angle),
		})
	}
	ring = append(ring, ring[0])

	return orb.Polygon{ring}
}

// Contains reports whether the point lies inside or on the boundary of the
// polygonal geometry. Points touching the boundary count as contained.
func Contains(g orb.Geometry, p orb.Point) bool {
	switch geom := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(geom, p) || planar.DistanceFrom(geom, p) == 0
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, p) || planar.DistanceFrom(geom, p) == 0
	default:
		return false
	}
}

// DistanceTo returns the planar distance from the point to the geometry:
// zero when the point is inside, otherwise the minimum distance to the
// boundary.
func DistanceTo(g orb.Geometry, p orb.Point) float64 {
	if Contains(g, p) {
		return 0
	}

	return planar.DistanceFrom(g, p)
}
