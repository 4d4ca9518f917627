package regions

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"areacheck/internal/geo"
)

// prefilterMargin widens the degree-space search box used against the R-tree
// so the kilometer-to-degree conversion can never exclude a true candidate.
// Exact tests always run in projected meters afterwards.
const prefilterMargin = 1.2

// kmPerDegree is the meridional degree length at the equator.
const kmPerDegree = 111.32

// Containing returns the regions whose boundary contains the point, with
// boundary touches included. The point is in EPSG:4326.
func (s *Store) Containing(p orb.Point) []Region {
	var out []Region
	for _, r := range s.candidates(pointRect(p)) {
		if geo.Contains(r.Boundary, p) {
			out = append(out, *r)
		}
	}

	sortByName(out)
	return out
}

// WithinRadius returns the regions whose boundary intersects a circular
// buffer of km kilometers around the point, plus the buffer polygon in
// EPSG:4326 for display. The intersection test runs in EPSG:27700 so the
// radius is metric regardless of latitude.
func (s *Store) WithinRadius(p orb.Point, km float64) ([]Region, orb.Polygon) {
	radius := km * 1000
	center := geo.ToNationalGrid(p)
	buffer := geo.Circle(center, radius)

	var out []Region
	for _, r := range s.candidates(radiusRect(p, km)) {
		if geo.DistanceTo(r.projected, center) <= radius {
			out = append(out, *r)
		}
	}

	sortByName(out)
	return out, project.Polygon(buffer, geo.ToWGS84)
}

// Result sets are unordered by nature; sorting keeps responses stable.
func sortByName(rs []Region) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Name != rs[j].Name {
			return rs[i].Name < rs[j].Name
		}
		return rs[i].Reference < rs[j].Reference
	})
}

func pointRect(p orb.Point) rtreego.Rect {
	rect, err := rtreego.NewRect(
		rtreego.Point{p.Lon() - minExtent, p.Lat() - minExtent},
		[]float64{2 * minExtent, 2 * minExtent},
	)
	if err != nil {
		panic(err)
	}

	return rect
}

// radiusRect converts the metric search radius into a conservative
// degree-space bounding box around the point.
func radiusRect(p orb.Point, km float64) rtreego.Rect {
	latPad := km / kmPerDegree * prefilterMargin

	cosLat := math.Cos(p.Lat() * math.Pi / 180)
	if cosLat < 0.1 {
		cosLat = 0.1
	}
	lonPad := km / (kmPerDegree * cosLat) * prefilterMargin

	rect, err := rtreego.NewRect(
		rtreego.Point{p.Lon() - lonPad, p.Lat() - latPad},
		[]float64{2 * lonPad, 2 * latPad},
	)
	if err != nil {
		panic(err)
	}

	return rect
}
