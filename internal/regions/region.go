// Package regions loads conservation area boundaries and answers spatial
// queries against them.
package regions

import "github.com/paulmach/orb"

// Region is one conservation area, normalized from its source dataset.
// Regions are immutable after load.
type Region struct {
	Name             string
	Reference        string
	DocumentationURL string
	Source           string

	// Boundary is in EPSG:4326. The EPSG:27700 counterpart is computed at
	// load time so radius queries do not reproject on every request.
	Boundary  orb.MultiPolygon
	projected orb.MultiPolygon
}
