package regions

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// minExtent keeps degenerate bounding boxes (points, axis aligned slivers)
// representable in the R-tree.
const minExtent = 1e-9

type indexEntry struct {
	rect   rtreego.Rect
	region *Region
}

func (e *indexEntry) Bounds() rtreego.Rect {
	return e.rect
}

func boundRect(b orb.Bound) rtreego.Rect {
	lengths := []float64{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1]}
	for i := range lengths {
		if lengths[i] < minExtent {
			lengths[i] = minExtent
		}
	}

	rect, err := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, lengths)
	if err != nil {
		// Inputs are finite with positive lengths, so this cannot fail.
		panic(err)
	}

	return rect
}

// candidates returns the regions whose bounding box intersects the search box.
func (s *Store) candidates(rect rtreego.Rect) []*Region {
	found := s.index.SearchIntersect(rect)

	out := make([]*Region, 0, len(found))
	for _, sp := range found {
		out = append(out, sp.(*indexEntry).region)
	}

	return out
}
