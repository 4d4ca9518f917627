package regions

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"
	"github.com/rs/zerolog/log"

	"areacheck/internal/config"
	"areacheck/internal/geo"
)

// Store is the read-only in-memory collection of all loaded regions.
// It is built once at startup and is safe for concurrent reads.
type Store struct {
	regions []Region
	index   *rtreego.Rtree
}

// Load reads every configured dataset, normalizes it to the common region
// shape and builds the spatial index. Any unreadable or unparsable dataset
// fails the whole load: serving a partial collection would silently report
// postcodes as outside a conservation area.
func Load(datasets []config.Dataset) (*Store, error) {
	var all []Region
	for _, ds := range datasets {
		loaded, err := loadDataset(ds)
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", ds.Source, err)
		}

		log.Debug().
			Str("source", ds.Source).
			Str("path", ds.Path).
			Int("regions", len(loaded)).
			Msg("Dataset loaded")

		all = append(all, loaded...)
	}

	s := &Store{regions: all, index: rtreego.NewTree(2, 8, 16)}
	for i := range s.regions {
		s.index.Insert(&indexEntry{
			rect:   boundRect(s.regions[i].Boundary.Bound()),
			region: &s.regions[i],
		})
	}

	return s, nil
}

func loadDataset(ds config.Dataset) ([]Region, error) {
	data, err := os.ReadFile(ds.Path)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", ds.Path, err)
	}

	regions := make([]Region, 0, len(fc.Features))
	for _, f := range fc.Features {
		boundary, ok := asMultiPolygon(f.Geometry)
		if !ok {
			geomType := "missing"
			if f.Geometry != nil {
				geomType = f.Geometry.GeoJSONType()
			}
			log.Warn().
				Str("source", ds.Source).
				Str("type", geomType).
				Msg("Skipping non-area feature")
			continue
		}

		if ds.CRS == config.CRSNationalGrid {
			boundary = project.MultiPolygon(boundary.Clone(), geo.ToWGS84)
		}

		r := Region{
			Name:             stringProp(f.Properties, ds.Fields.Name),
			Reference:        stringProp(f.Properties, ds.Fields.Reference),
			DocumentationURL: stringProp(f.Properties, ds.Fields.DocumentationURL),
			Source:           ds.Source,
			Boundary:         boundary,
			projected:        project.MultiPolygon(boundary.Clone(), geo.ToNationalGrid),
		}
		regions = append(regions, r)
	}

	return regions, nil
}

func asMultiPolygon(g orb.Geometry) (orb.MultiPolygon, bool) {
	switch geom := g.(type) {
	case orb.Polygon:
		return orb.MultiPolygon{geom}, true
	case orb.MultiPolygon:
		return geom, true
	default:
		return nil, false
	}
}

// stringProp reads one attribute by its source specific name. Numeric
// references (some sources use integer feature ids) are rendered as strings.
func stringProp(props geojson.Properties, key string) string {
	if key == "" {
		return ""
	}

	switch v := props[key].(type) {
	case string:
		return v
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

// Regions returns the loaded collection. Callers must not mutate it.
func (s *Store) Regions() []Region {
	return s.regions
}

// Len returns the number of loaded regions.
func (s *Store) Len() int {
	return len(s.regions)
}

// CountBySource returns the number of regions per dataset tag.
func (s *Store) CountBySource() map[string]int {
	counts := make(map[string]int, len(s.regions))
	for i := range s.regions {
		counts[s.regions[i].Source]++
	}

	return counts
}
