package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/sells-group/osmpoi/internal/model"
)

// WriteGeoJSON writes the POI collection as a GeoJSON FeatureCollection
// of points. Feature ids are kind-scoped ("node/123", "way/456") since
// numeric ids collide across element kinds.
func WriteGeoJSON(path string, pois []model.PointOfInterest) error {
	fc := geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(pois)),
	}
	for i := range pois {
		fc.Features = append(fc.Features, poiFeature(&pois[i]))
	}

	data, err := json.Marshal(&fc)
	if err != nil {
		return eris.Wrap(err, "export: marshal geojson")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}

	zap.L().Info("geojson export complete",
		zap.String("path", path),
		zap.Int("features", len(fc.Features)))
	return nil
}

func poiFeature(poi *model.PointOfInterest) *geojson.Feature {
	return &geojson.Feature{
		ID:       fmt.Sprintf("%s/%d", poi.OSMType, poi.ID),
		Geometry: geom.NewPointFlat(geom.XY, []float64{poi.Longitude, poi.Latitude}),
		Properties: map[string]interface{}{
			"name":        poi.Name,
			"category":    poi.Category,
			"subcategory": poi.Subcategory,
			"housenumber": poi.Housenumber,
			"street":      poi.Street,
			"city":        poi.City,
		},
	}
}
