// Package store persists extracted POI and address collections into a
// relational database.
package store

import (
	"context"

	"github.com/sells-group/osmpoi/internal/model"
)

// Store is the persistence interface for extraction output. Inserts
// are batched inside explicit transactions; Optimize refreshes
// statistics (and compacts, where the backend supports it) after both
// collections are loaded.
type Store interface {
	Migrate(ctx context.Context) error
	InsertPOIs(ctx context.Context, pois []model.PointOfInterest) error
	InsertAddresses(ctx context.Context, addresses []model.Address) error
	Optimize(ctx context.Context) error
	Close() error
}
