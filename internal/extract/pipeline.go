package extract

import (
	"context"
	"io"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/osmpoi/internal/model"
	"github.com/sells-group/osmpoi/internal/spatial"
)

// Pipeline is the pass-2 driver. It owns the POI and address
// accumulators and the spatial index so that all mutation during the
// scan is explicit and single-owner. Emission order equals input
// element order, which keeps repeated runs over the same input
// byte-identical.
type Pipeline struct {
	coords CoordIndex
	procs  int

	pois      []model.PointOfInterest
	addresses []model.Address
	index     *spatial.Index
}

// NewPipeline creates a pass-2 pipeline reading way-node coordinates
// from the pass-1 index.
func NewPipeline(coords CoordIndex, procs int) *Pipeline {
	return &Pipeline{
		coords: coords,
		procs:  procs,
		index:  spatial.NewIndex(),
	}
}

// Run scans the input a second time, extracting POIs and addresses and
// filling the spatial index. Relations are skipped without error. A
// decode error aborts the pass and none of the partial collections
// should be used.
func (p *Pipeline) Run(ctx context.Context, r io.ReadSeeker) error {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return eris.Wrap(err, "extract: seek input")
	}

	scanner := osmpbf.New(ctx, r, p.procs)
	defer scanner.Close()

	var processed int64
	for scanner.Scan() {
		switch el := scanner.Object().(type) {
		case *osm.Node:
			p.processNode(int64(el.ID), el.Lat, el.Lon, el.Tags.Map())
		case *osm.Way:
			p.processWay(el)
		}

		processed++
		if processed%progressInterval == 0 {
			zap.L().Info("pass 2 progress",
				zap.Int64("elements", processed),
				zap.Int("pois", len(p.pois)),
				zap.Int("addresses", len(p.addresses)))
		}
	}
	if err := scanner.Err(); err != nil {
		return eris.Wrap(err, "extract: pass 2 scan")
	}

	zap.L().Info("pass 2 complete",
		zap.Int("pois", len(p.pois)),
		zap.Int("addresses", len(p.addresses)),
		zap.Int("indexed_addresses", p.index.Size()))
	return nil
}

// POIs returns the extracted POIs in input order.
func (p *Pipeline) POIs() []model.PointOfInterest { return p.pois }

// Addresses returns the extracted addresses in input order.
func (p *Pipeline) Addresses() []model.Address { return p.addresses }

// Index returns the spatial index of high-confidence addresses.
func (p *Pipeline) Index() *spatial.Index { return p.index }

// processNode emits a POI if the node classifies, and independently an
// Address if the node carries addr:housenumber or addr:street.
func (p *Pipeline) processNode(id int64, lat, lon float64, tags map[string]string) {
	if category, subcategory, ok := Classify(tags); ok {
		p.pois = append(p.pois, model.PointOfInterest{
			ID:          id,
			Name:        nameOrDefault(tags),
			Category:    category,
			Subcategory: subcategory,
			Latitude:    lat,
			Longitude:   lon,
			Housenumber: tags["addr:housenumber"],
			City:        tags["addr:city"],
			Street:      tags["addr:street"],
			OSMType:     model.OriginNode,
		})
	}

	if tags["addr:housenumber"] == "" && tags["addr:street"] == "" {
		return
	}

	addr := model.Address{
		ID:          id,
		Housenumber: tags["addr:housenumber"],
		Street:      tags["addr:street"],
		City:        tags["addr:city"],
		Postcode:    tags["addr:postcode"],
		Suburb:      tags["addr:suburb"],
		Place:       tags["addr:place"],
		Latitude:    lat,
		Longitude:   lon,
	}
	addr.FullAddress = model.FormatFullAddress(
		addr.Housenumber, addr.Street, addr.City, addr.Postcode, addr.Suburb, addr.Place)
	p.addresses = append(p.addresses, addr)

	if addr.HighConfidence() {
		p.index.Insert(addr.Housenumber, addr.Street, addr.City, lon, lat)
	}
}

// processWay considers ways that classify or carry a name. The way's
// location is the arithmetic mean of the coordinates of its referenced
// nodes that resolved in pass 1; dangling references are skipped, and
// a way with no resolvable nodes is dropped. Only classified ways are
// emitted, with missing address fields pre-filled from the nearest
// indexed address at scan time.
func (p *Pipeline) processWay(way *osm.Way) {
	tags := way.Tags.Map()

	category, subcategory, classified := Classify(tags)
	_, named := tags["name"]
	if !classified && !named {
		return
	}

	var latSum, lonSum float64
	var resolved int
	for _, wn := range way.Nodes {
		pt, ok := p.coords[wn.ID]
		if !ok {
			continue
		}
		lonSum += pt.Lon()
		latSum += pt.Lat()
		resolved++
	}
	if resolved == 0 {
		return
	}
	centroidLat := latSum / float64(resolved)
	centroidLon := lonSum / float64(resolved)

	if !classified {
		return
	}

	housenumber := tags["addr:housenumber"]
	street := tags["addr:street"]
	city := tags["addr:city"]

	if street == "" && housenumber == "" {
		if nn, ok := p.index.Nearest(centroidLon, centroidLat); ok {
			housenumber = nn.Housenumber
			street = nn.Street
			if city == "" {
				city = nn.City
			}
		}
	}

	p.pois = append(p.pois, model.PointOfInterest{
		ID:          int64(way.ID),
		Name:        nameOrDefault(tags),
		Category:    category,
		Subcategory: subcategory,
		Latitude:    centroidLat,
		Longitude:   centroidLon,
		Housenumber: housenumber,
		City:        city,
		Street:      street,
		OSMType:     model.OriginWay,
	})
}

func nameOrDefault(tags map[string]string) string {
	if name := tags["name"]; name != "" {
		return name
	}
	return model.UnnamedPOI
}
