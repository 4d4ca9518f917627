package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func unitSquare() orb.Polygon {
	return orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}
}

func TestCircle(t *testing.T) {
	center := orb.Point{530000, 180000}
	circle := Circle(center, 10000)

	ring := circle[0]
	if ring[0] != ring[len(ring)-1] {
		t.Error("circle ring is not closed")
	}

	for i, p := range ring {
		r := math.Hypot(p[0]-center[0], p[1]-center[1])
		if math.Abs(r-10000) > 1e-6 {
			t.Fatalf("vertex %d at radius %.6f, want 10000", i, r)
		}
	}
}

func TestContains(t *testing.T) {
	square := unitSquare()
	multi := orb.MultiPolygon{square}

	tests := []struct {
		name string
		g    orb.Geometry
		p    orb.Point
		want bool
	}{
		{"polygon inside", square, orb.Point{0.5, 0.5}, true},
		{"polygon outside", square, orb.Point{2, 2}, false},
		{"polygon on edge", square, orb.Point{0, 0.5}, true},
		{"polygon on vertex", square, orb.Point{1, 1}, true},
		{"multipolygon inside", multi, orb.Point{0.5, 0.5}, true},
		{"multipolygon outside", multi, orb.Point{-0.5, 0.5}, false},
		{"unsupported geometry", orb.Point{0, 0}, orb.Point{0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.g, tt.p); got != tt.want {
				t.Errorf("Contains() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistanceTo(t *testing.T) {
	square := unitSquare()

	if d := DistanceTo(square, orb.Point{0.5, 0.5}); d != 0 {
		t.Errorf("distance inside = %v, want 0", d)
	}

	if d := DistanceTo(square, orb.Point{3, 0.5}); math.Abs(d-2) > 1e-9 {
		t.Errorf("distance outside = %v, want 2", d)
	}
}
