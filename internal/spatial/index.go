// Package spatial provides the nearest-neighbor index over known
// address points used for POI enrichment.
package spatial

import "github.com/dhconnelly/rtreego"

// rtreego node sizing, matching common 2-D point workloads.
const (
	minBranch = 25
	maxBranch = 50
)

// pointTolerance inflates a point into the degenerate rectangle rtreego
// requires. Well below coordinate precision, so it never affects which
// neighbor is nearest.
const pointTolerance = 1e-9

// AddressPoint is a high-confidence address (house number and street
// both present) stored at a (lon, lat) location. Immutable after
// insertion.
type AddressPoint struct {
	Housenumber string
	Street      string
	City        string

	loc rtreego.Point
}

// Bounds implements rtreego.Spatial.
func (p *AddressPoint) Bounds() *rtreego.Rect {
	return p.loc.ToRect(pointTolerance)
}

// Lon returns the point's longitude.
func (p *AddressPoint) Lon() float64 { return p.loc[0] }

// Lat returns the point's latitude.
func (p *AddressPoint) Lat() float64 { return p.loc[1] }

// Index is an r-tree of address points supporting nearest-neighbor
// lookup by squared Euclidean distance on raw coordinate degrees.
// This planar approximation is a deliberate trade-off: accurate at
// city and regional scale, it degrades at high latitudes and across
// very large spans. Not safe for concurrent use.
type Index struct {
	rt *rtreego.Rtree
}

// NewIndex returns an empty address index.
func NewIndex() *Index {
	return &Index{rt: rtreego.NewTree(2, minBranch, maxBranch)}
}

// Insert adds an address point at (lon, lat).
func (ix *Index) Insert(housenumber, street, city string, lon, lat float64) {
	ix.rt.Insert(&AddressPoint{
		Housenumber: housenumber,
		Street:      street,
		City:        city,
		loc:         rtreego.Point{lon, lat},
	})
}

// Nearest returns the indexed point closest to (lon, lat), or ok=false
// when the index is empty. An empty-index miss means enrichment is
// unavailable, not that anything went wrong.
func (ix *Index) Nearest(lon, lat float64) (*AddressPoint, bool) {
	if ix.rt.Size() == 0 {
		return nil, false
	}
	nn, ok := ix.rt.NearestNeighbor(rtreego.Point{lon, lat}).(*AddressPoint)
	if !ok {
		return nil, false
	}
	return nn, true
}

// Size returns the number of indexed address points.
func (ix *Index) Size() int {
	return ix.rt.Size()
}
