package extract

import (
	"go.uber.org/zap"

	"github.com/sells-group/osmpoi/internal/model"
	"github.com/sells-group/osmpoi/internal/spatial"
)

// EnrichPOIs backfills missing address fields on POIs from the nearest
// indexed address. A POI is considered when street or house number is
// empty; on a hit both are replaced together from the same neighbor
// (never merged field-by-field), and city only if it was empty. A miss
// leaves the POI untouched. Best-effort: never fails, returns the
// number of POIs updated.
func EnrichPOIs(pois []model.PointOfInterest, index *spatial.Index) int {
	enriched := 0
	for i := range pois {
		poi := &pois[i]
		if poi.Street != "" && poi.Housenumber != "" {
			continue
		}
		nn, ok := index.Nearest(poi.Longitude, poi.Latitude)
		if !ok {
			continue
		}
		poi.Housenumber = nn.Housenumber
		poi.Street = nn.Street
		if poi.City == "" {
			poi.City = nn.City
		}
		enriched++
	}

	zap.L().Info("enrichment complete", zap.Int("pois_enriched", enriched))
	return enriched
}
