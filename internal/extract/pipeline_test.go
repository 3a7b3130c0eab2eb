package extract

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/osmpoi/internal/model"
)

func newWay(id int64, refs []int64, tags map[string]string) *osm.Way {
	way := &osm.Way{ID: osm.WayID(id)}
	for _, ref := range refs {
		way.Nodes = append(way.Nodes, osm.WayNode{ID: osm.NodeID(ref)})
	}
	for k, v := range tags {
		way.Tags = append(way.Tags, osm.Tag{Key: k, Value: v})
	}
	return way
}

func TestPipeline_NodePOI(t *testing.T) {
	p := NewPipeline(CoordIndex{}, 1)

	p.processNode(1, 44.4, -79.7, map[string]string{
		"amenity": "cafe",
		"name":    "Joe's",
	})

	require.Len(t, p.POIs(), 1)
	poi := p.POIs()[0]
	assert.Equal(t, int64(1), poi.ID)
	assert.Equal(t, "Joe's", poi.Name)
	assert.Equal(t, CategoryFood, poi.Category)
	assert.Equal(t, "cafe", poi.Subcategory)
	assert.Equal(t, 44.4, poi.Latitude)
	assert.Equal(t, -79.7, poi.Longitude)
	assert.Equal(t, model.OriginNode, poi.OSMType)
	assert.Empty(t, poi.Street)
	assert.Empty(t, p.Addresses())
}

func TestPipeline_NodeUnnamedPOI(t *testing.T) {
	p := NewPipeline(CoordIndex{}, 1)

	p.processNode(2, 0, 0, map[string]string{"amenity": "parking"})

	require.Len(t, p.POIs(), 1)
	assert.Equal(t, model.UnnamedPOI, p.POIs()[0].Name)
}

func TestPipeline_NodeAddress(t *testing.T) {
	p := NewPipeline(CoordIndex{}, 1)

	p.processNode(3, 44.0, -79.0, map[string]string{
		"addr:housenumber": "5",
		"addr:street":      "Oak Ave",
		"addr:city":        "Barrie",
	})

	assert.Empty(t, p.POIs())
	require.Len(t, p.Addresses(), 1)
	addr := p.Addresses()[0]
	assert.Equal(t, int64(3), addr.ID)
	assert.Equal(t, "5 Oak Ave, Barrie", addr.FullAddress)

	// Both housenumber and street present, so it enters the index.
	assert.Equal(t, 1, p.Index().Size())
}

func TestPipeline_NodeAddressLowConfidenceNotIndexed(t *testing.T) {
	p := NewPipeline(CoordIndex{}, 1)

	p.processNode(4, 44.0, -79.0, map[string]string{"addr:street": "Oak Ave"})

	require.Len(t, p.Addresses(), 1)
	assert.Equal(t, 0, p.Index().Size())
}

func TestPipeline_NodePostcodeOnlyIsNoAddress(t *testing.T) {
	p := NewPipeline(CoordIndex{}, 1)

	p.processNode(5, 44.0, -79.0, map[string]string{
		"amenity":       "cafe",
		"addr:postcode": "L4M 1A1",
	})

	assert.Empty(t, p.Addresses())
	assert.Len(t, p.POIs(), 1) // still classifies as a POI
}

func TestPipeline_WayCentroid(t *testing.T) {
	coords := CoordIndex{
		1: orb.Point{0, 0},
		2: orb.Point{2, 0},
		3: orb.Point{1, 3},
	}
	p := NewPipeline(coords, 1)

	p.processWay(newWay(10, []int64{1, 2, 3}, map[string]string{"shop": "bakery"}))

	require.Len(t, p.POIs(), 1)
	poi := p.POIs()[0]
	assert.Equal(t, model.OriginWay, poi.OSMType)
	assert.Equal(t, 1.0, poi.Longitude)
	assert.Equal(t, 1.0, poi.Latitude)
}

func TestPipeline_WayDanglingRefsSkipped(t *testing.T) {
	coords := CoordIndex{
		1: orb.Point{0, 0},
		2: orb.Point{2, 2},
	}
	p := NewPipeline(coords, 1)

	// Node 99 never appeared in pass 1; centroid averages the other two.
	p.processWay(newWay(11, []int64{1, 2, 99}, map[string]string{"shop": "mall"}))

	require.Len(t, p.POIs(), 1)
	assert.Equal(t, 1.0, p.POIs()[0].Longitude)
	assert.Equal(t, 1.0, p.POIs()[0].Latitude)
}

func TestPipeline_WayNoResolvableNodesDropped(t *testing.T) {
	p := NewPipeline(CoordIndex{}, 1)

	p.processWay(newWay(12, []int64{98, 99}, map[string]string{"shop": "mall", "name": "Ghost Mall"}))

	assert.Empty(t, p.POIs())
}

func TestPipeline_WayUnclassifiedNotEmitted(t *testing.T) {
	coords := CoordIndex{1: orb.Point{0, 0}}
	p := NewPipeline(coords, 1)

	// Named but unclassified: inspected, not emitted.
	p.processWay(newWay(13, []int64{1}, map[string]string{"name": "Some Track", "highway": "residential"}))
	// Neither named nor classified: skipped outright.
	p.processWay(newWay(14, []int64{1}, map[string]string{"highway": "residential"}))

	assert.Empty(t, p.POIs())
}

func TestPipeline_WayInlineAddressFallback(t *testing.T) {
	coords := CoordIndex{
		1: orb.Point{10, 20},
		2: orb.Point{10, 20},
	}
	p := NewPipeline(coords, 1)

	// Indexed address near the future centroid.
	p.processNode(100, 20, 10, map[string]string{
		"addr:housenumber": "5",
		"addr:street":      "Oak Ave",
		"addr:city":        "Barrie",
	})

	p.processWay(newWay(15, []int64{1, 2}, map[string]string{"shop": "bakery", "name": "Best Bakery"}))

	require.Len(t, p.POIs(), 1)
	poi := p.POIs()[0]
	assert.Equal(t, "5", poi.Housenumber)
	assert.Equal(t, "Oak Ave", poi.Street)
	assert.Equal(t, "Barrie", poi.City)
}

func TestPipeline_WayOwnTagsSuppressFallback(t *testing.T) {
	coords := CoordIndex{1: orb.Point{10, 20}}
	p := NewPipeline(coords, 1)

	p.processNode(100, 20, 10, map[string]string{
		"addr:housenumber": "5",
		"addr:street":      "Oak Ave",
	})

	// The way has its own street; nearest-neighbor fallback must not run.
	p.processWay(newWay(16, []int64{1}, map[string]string{
		"shop":        "bakery",
		"addr:street": "Elm St",
	}))

	require.Len(t, p.POIs(), 1)
	assert.Equal(t, "Elm St", p.POIs()[0].Street)
	assert.Empty(t, p.POIs()[0].Housenumber)
}

// End-to-end over in-memory elements: three nodes plus a way, then the
// post-pass enrichment.
func TestPipeline_EndToEnd(t *testing.T) {
	coords := CoordIndex{
		1: orb.Point{-79.7, 44.4}, // node A
		2: orb.Point{-79.5, 44.6}, // node B
	}
	p := NewPipeline(coords, 1)

	// Node A: POI, no address tags.
	p.processNode(1, 44.4, -79.7, map[string]string{"amenity": "cafe", "name": "Joe's"})
	// Node B: address only.
	p.processNode(2, 44.6, -79.5, map[string]string{
		"addr:housenumber": "5",
		"addr:street":      "Oak Ave",
	})
	// Node C: untagged.
	p.processNode(3, 44.5, -79.6, map[string]string{})
	// Way referencing A and B.
	p.processWay(newWay(20, []int64{1, 2}, map[string]string{"shop": "bakery", "name": "Best Bakery"}))

	require.Len(t, p.POIs(), 2)
	require.Len(t, p.Addresses(), 1)

	wayPOI := p.POIs()[1]
	assert.Equal(t, model.OriginWay, wayPOI.OSMType)
	assert.InDelta(t, -79.6, wayPOI.Longitude, 1e-9)
	assert.InDelta(t, 44.5, wayPOI.Latitude, 1e-9)
	// Pre-filled at pass-2 time from the sole indexed address.
	assert.Equal(t, "5", wayPOI.Housenumber)
	assert.Equal(t, "Oak Ave", wayPOI.Street)

	// Node A's POI has no address until enrichment.
	assert.False(t, p.POIs()[0].HasAddress())

	enriched := EnrichPOIs(p.POIs(), p.Index())
	assert.Equal(t, 1, enriched)
	assert.Equal(t, "5", p.POIs()[0].Housenumber)
	assert.Equal(t, "Oak Ave", p.POIs()[0].Street)
}
