package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// EPSG:4326 <-> EPSG:27700 (British National Grid) conversion.
//
// Metric buffering and distance tests need an equal-distance projected
// system, so coordinates are shifted onto the OSGB36 datum with a Helmert
// transformation and projected with the Ordnance Survey transverse Mercator
// parameters. Accuracy is within a few meters, well below the resolution of
// a postcode centroid.

type ellipsoid struct {
	a, b float64
}

var (
	airy1830 = ellipsoid{a: 6377563.396, b: 6356256.909}
	wgs84    = ellipsoid{a: 6378137.000, b: 6356752.3142}
)

func (e ellipsoid) eccSq() float64 {
	return (e.a*e.a - e.b*e.b) / (e.a * e.a)
}

// National Grid transverse Mercator parameters.
const (
	scaleF0    = 0.9996012717
	originLat  = 49.0 * math.Pi / 180
	originLon  = -2.0 * math.Pi / 180
	falseEast  = 400000.0
	falseNorth = -100000.0
)

// helmertParams is a seven parameter datum shift: translation in meters,
// scale in ppm, rotations in arc seconds.
type helmertParams struct {
	tx, ty, tz float64
	s          float64
	rx, ry, rz float64
}

var wgs84ToOSGB36 = helmertParams{
	tx: -446.448, ty: 125.157, tz: -542.060,
	s:  20.4894,
	rx: -0.1502, ry: -0.2470, rz: -0.8421,
}

func (h helmertParams) inverse() helmertParams {
	return helmertParams{-h.tx, -h.ty, -h.tz, -h.s, -h.rx, -h.ry, -h.rz}
}

func (h helmertParams) apply(x, y, z float64) (float64, float64, float64) {
	const arcSec = math.Pi / 180 / 3600

	scale := 1 + h.s*1e-6
	rx := h.rx * arcSec
	ry := h.ry * arcSec
	rz := h.rz * arcSec

	x2 := h.tx + scale*x - rz*y + ry*z
	y2 := h.ty + rz*x + scale*y - rx*z
	z2 := h.tz - ry*x + rx*y + scale*z

	return x2, y2, z2
}

func geodeticToCartesian(lat, lon float64, e ellipsoid) (x, y, z float64) {
	e2 := e.eccSq()
	sinLat := math.Sin(lat)
	nu := e.a / math.Sqrt(1-e2*sinLat*sinLat)

	x = nu * math.Cos(lat) * math.Cos(lon)
	y = nu * math.Cos(lat) * math.Sin(lon)
	z = (1 - e2) * nu * sinLat

	return x, y, z
}

func cartesianToGeodetic(x, y, z float64, e ellipsoid) (lat, lon float64) {
	e2 := e.eccSq()
	p := math.Hypot(x, y)
	lon = math.Atan2(y, x)

	lat = math.Atan2(z, p*(1-e2))
	for i := 0; i < 10; i++ {
		sinLat := math.Sin(lat)
		nu := e.a / math.Sqrt(1-e2*sinLat*sinLat)
		next := math.Atan2(z+e2*nu*sinLat, p)
		if math.Abs(next-lat) < 1e-12 {
			return next, lon
		}
		lat = next
	}

	return lat, lon
}

// meridionalArc returns the developed arc length from the grid origin
// latitude, scaled by F0.
func meridionalArc(lat float64, e ellipsoid) float64 {
	n := (e.a - e.b) / (e.a + e.b)
	n2 := n * n
	n3 := n2 * n

	dLat := lat - originLat
	sLat := lat + originLat

	m := (1 + n + 1.25*n2 + 1.25*n3) * dLat
	m -= (3*n + 3*n2 + 2.625*n3) * math.Sin(dLat) * math.Cos(sLat)
	m += (1.875*n2 + 1.875*n3) * math.Sin(2*dLat) * math.Cos(2*sLat)
	m -= (35.0 / 24.0) * n3 * math.Sin(3*dLat) * math.Cos(3*sLat)

	return e.b * scaleF0 * m
}

func tmForward(lat, lon float64, e ellipsoid) (easting, northing float64) {
	e2 := e.eccSq()
	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	tanLat := math.Tan(lat)
	t2 := tanLat * tanLat
	t4 := t2 * t2

	nu := e.a * scaleF0 / math.Sqrt(1-e2*sinLat*sinLat)
	rho := e.a * scaleF0 * (1 - e2) / math.Pow(1-e2*sinLat*sinLat, 1.5)
	eta2 := nu/rho - 1

	i := meridionalArc(lat, e) + falseNorth
	ii := nu / 2 * sinLat * cosLat
	iii := nu / 24 * sinLat * math.Pow(cosLat, 3) * (5 - t2 + 9*eta2)
	iiia := nu / 720 * sinLat * math.Pow(cosLat, 5) * (61 - 58*t2 + t4)
	iv := nu * cosLat
	v := nu / 6 * math.Pow(cosLat, 3) * (nu/rho - t2)
	vi := nu / 120 * math.Pow(cosLat, 5) * (5 - 18*t2 + t4 + 14*eta2 - 58*t2*eta2)

	dLon := lon - originLon

	northing = i + ii*dLon*dLon + iii*math.Pow(dLon, 4) + iiia*math.Pow(dLon, 6)
	easting = falseEast + iv*dLon + v*math.Pow(dLon, 3) + vi*math.Pow(dLon, 5)

	return easting, northing
}

func tmInverse(easting, northing float64, e ellipsoid) (lat, lon float64) {
	e2 := e.eccSq()

	lat = (northing-falseNorth)/(e.a*scaleF0) + originLat
	for {
		delta := northing - falseNorth - meridionalArc(lat, e)
		if math.Abs(delta) < 1e-5 {
			break
		}
		lat += delta / (e.a * scaleF0)
	}

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	tanLat := math.Tan(lat)
	secLat := 1 / cosLat
	t2 := tanLat * tanLat
	t4 := t2 * t2
	t6 := t4 * t2

	nu := e.a * scaleF0 / math.Sqrt(1-e2*sinLat*sinLat)
	rho := e.a * scaleF0 * (1 - e2) / math.Pow(1-e2*sinLat*sinLat, 1.5)
	eta2 := nu/rho - 1

	vii := tanLat / (2 * rho * nu)
	viii := tanLat / (24 * rho * math.Pow(nu, 3)) * (5 + 3*t2 + eta2 - 9*t2*eta2)
	ix := tanLat / (720 * rho * math.Pow(nu, 5)) * (61 + 90*t2 + 45*t4)
	x := secLat / nu
	xi := secLat / (6 * math.Pow(nu, 3)) * (nu/rho + 2*t2)
	xii := secLat / (120 * math.Pow(nu, 5)) * (5 + 28*t2 + 24*t4)
	xiia := secLat / (5040 * math.Pow(nu, 7)) * (61 + 662*t2 + 1320*t4 + 720*t6)

	de := easting - falseEast

	lat = lat - vii*de*de + viii*math.Pow(de, 4) - ix*math.Pow(de, 6)
	lon = originLon + x*de - xi*math.Pow(de, 3) + xii*math.Pow(de, 5) - xiia*math.Pow(de, 7)

	return lat, lon
}

// ToNationalGrid converts an EPSG:4326 point (lon, lat in degrees) to an
// EPSG:27700 easting/northing in meters. The signature matches
// orb.Projection so it can be applied to whole geometries via orb/project.
func ToNationalGrid(p orb.Point) orb.Point {
	lat := p.Lat() * math.Pi / 180
	lon := p.Lon() * math.Pi / 180

	x, y, z := geodeticToCartesian(lat, lon, wgs84)
	x, y, z = wgs84ToOSGB36.apply(x, y, z)
	lat, lon = cartesianToGeodetic(x, y, z, airy1830)

	e, n := tmForward(lat, lon, airy1830)
	return orb.Point{e, n}
}

// ToWGS84 converts an EPSG:27700 easting/northing point back to EPSG:4326.
func ToWGS84(p orb.Point) orb.Point {
	lat, lon := tmInverse(p[0], p[1], airy1830)

	x, y, z := geodeticToCartesian(lat, lon, airy1830)
	x, y, z = wgs84ToOSGB36.inverse().apply(x, y, z)
	lat, lon = cartesianToGeodetic(x, y, z, wgs84)

	return orb.Point{lon * 180 / math.Pi, lat * 180 / math.Pi}
}
