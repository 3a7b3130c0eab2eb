// Package model defines the records produced by the extraction pipeline.
package model

// OriginKind identifies the OSM element kind a POI was derived from.
// Numeric OSM ids are only unique within a kind, so the kind is part of
// every POI's identity.
type OriginKind string

const (
	OriginNode OriginKind = "node"
	OriginWay  OriginKind = "way"
)

// UnnamedPOI is the display name used when an element carries no name tag.
const UnnamedPOI = "Unnamed"

// PointOfInterest is a classified place derived from a node or way.
// Address fields may be filled after creation by nearest-neighbor
// enrichment; everything else is immutable once emitted.
type PointOfInterest struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Subcategory string     `json:"subcategory"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Housenumber string     `json:"housenumber"`
	City        string     `json:"city"`
	Street      string     `json:"street"`
	OSMType     OriginKind `json:"osm_type"`
}

// HasAddress reports whether any address component was resolved,
// either from the element's own tags or by enrichment.
func (p *PointOfInterest) HasAddress() bool {
	return p.Street != "" || p.Housenumber != ""
}

// Address is a standalone address record derived from a node carrying
// addr:housenumber or addr:street. Immutable once emitted.
type Address struct {
	ID          int64   `json:"id"`
	Housenumber string  `json:"housenumber"`
	Street      string  `json:"street"`
	City        string  `json:"city"`
	Postcode    string  `json:"postcode"`
	Suburb      string  `json:"suburb"`
	Place       string  `json:"place"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	FullAddress string  `json:"full_address"`
}

// HighConfidence reports whether the address is precise enough to serve
// as an enrichment source: both house number and street are present.
func (a *Address) HighConfidence() bool {
	return a.Housenumber != "" && a.Street != ""
}
