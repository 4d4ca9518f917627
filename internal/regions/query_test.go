package regions

import (
	"math"
	"testing"

	"github.com/paulmach/orb"

	"areacheck/internal/config"
	"areacheck/internal/geo"
)

// bloomsburyCenter sits inside the Bloomsbury test square. Hampstead is
// about 5 km away, St Fagans (Cardiff) over 200 km.
var bloomsburyCenter = orb.Point{-0.13, 51.52}

// midAtlantic is far outside every test region.
var midAtlantic = orb.Point{-30.0, 45.0}

func loadTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Load([]config.Dataset{englandDataset(), walesDataset()})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	return store
}

func names(rs []Region) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

func TestContaining(t *testing.T) {
	store := loadTestStore(t)

	got := store.Containing(bloomsburyCenter)
	if len(got) != 1 || got[0].Name != "Bloomsbury" {
		t.Errorf("Containing() = %v, want [Bloomsbury]", names(got))
	}

	if got := store.Containing(midAtlantic); len(got) != 0 {
		t.Errorf("Containing(mid-atlantic) = %v, want empty", names(got))
	}
}

func TestContainingBoundaryPoint(t *testing.T) {
	store := loadTestStore(t)

	// On the western edge of the Bloomsbury square.
	got := store.Containing(orb.Point{-0.135, 51.52})
	if len(got) != 1 || got[0].Name != "Bloomsbury" {
		t.Errorf("Containing(edge point) = %v, want [Bloomsbury]", names(got))
	}
}

func TestWithinRadius(t *testing.T) {
	store := loadTestStore(t)

	tests := []struct {
		name string
		p    orb.Point
		km   float64
		want []string
	}{
		{"ten km includes neighbour", bloomsburyCenter, 10, []string{"Bloomsbury", "Hampstead"}},
		{"one km excludes neighbour", bloomsburyCenter, 1, []string{"Bloomsbury"}},
		{"far regions excluded", bloomsburyCenter, 10, []string{"Bloomsbury", "Hampstead"}},
		{"mid atlantic", midAtlantic, 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := store.WithinRadius(tt.p, tt.km)

			gotNames := names(got)
			if len(gotNames) != len(tt.want) {
				t.Fatalf("WithinRadius() = %v, want %v", gotNames, tt.want)
			}
			for i := range tt.want {
				if gotNames[i] != tt.want[i] {
					t.Fatalf("WithinRadius() = %v, want %v", gotNames, tt.want)
				}
			}
		})
	}
}

func TestWithinRadiusBuffer(t *testing.T) {
	store := loadTestStore(t)

	_, buffer := store.WithinRadius(bloomsburyCenter, 10)
	if len(buffer) != 1 {
		t.Fatalf("buffer has %d rings, want 1", len(buffer))
	}

	ring := buffer[0]
	if ring[0] != ring[len(ring)-1] {
		t.Error("buffer ring is not closed")
	}

	// Every vertex is 10 km from the query point, measured in the
	// projected system the buffer was built in.
	center := geo.ToNationalGrid(bloomsburyCenter)
	for i, p := range ring {
		proj := geo.ToNationalGrid(p)
		dist := math.Hypot(proj[0]-center[0], proj[1]-center[1])
		if math.Abs(dist-10000) > 20 {
			t.Fatalf("buffer vertex %d at %.1f m, want 10000 +- 20", i, dist)
		}
	}
}

func TestWithinRadiusStableOrder(t *testing.T) {
	store := loadTestStore(t)

	first, _ := store.WithinRadius(bloomsburyCenter, 10)
	second, _ := store.WithinRadius(bloomsburyCenter, 10)

	if len(first) != len(second) {
		t.Fatalf("result sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Errorf("order differs at %d: %q vs %q", i, first[i].Name, second[i].Name)
		}
	}
}
