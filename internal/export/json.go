// Package export writes the extracted collections as document files.
package export

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/osmpoi/internal/model"
)

// POIDocument wraps the POI collection for serialization.
type POIDocument struct {
	POIs []model.PointOfInterest `json:"pois"`
}

// AddressDocument wraps the address collection for serialization.
type AddressDocument struct {
	Addresses []model.Address `json:"addresses"`
}

// WriteJSON writes pois.json and addresses.json into dir, creating it
// if needed.
func WriteJSON(dir string, pois []model.PointOfInterest, addresses []model.Address) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "export: create dir %s", dir)
	}

	if err := writeDocument(filepath.Join(dir, "pois.json"), POIDocument{POIs: pois}); err != nil {
		return err
	}
	if err := writeDocument(filepath.Join(dir, "addresses.json"), AddressDocument{Addresses: addresses}); err != nil {
		return err
	}

	zap.L().Info("json export complete",
		zap.String("dir", dir),
		zap.Int("pois", len(pois)),
		zap.Int("addresses", len(addresses)))
	return nil
}

func writeDocument(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "export: marshal %s", filepath.Base(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}
	return nil
}
