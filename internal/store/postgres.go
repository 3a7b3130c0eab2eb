package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/osmpoi/internal/db"
	"github.com/sells-group/osmpoi/internal/model"
)

// PostgresStore implements Store using a pgx pool, bulk-loading rows
// through the COPY protocol.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 4
	pgxCfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS pois (
	id          BIGINT NOT NULL,
	name        TEXT NOT NULL,
	category    TEXT NOT NULL,
	subcategory TEXT,
	latitude    DOUBLE PRECISION NOT NULL,
	longitude   DOUBLE PRECISION NOT NULL,
	housenumber TEXT,
	street      TEXT,
	city        TEXT,
	osm_type    TEXT NOT NULL,
	full_address TEXT GENERATED ALWAYS AS (
		CASE
			WHEN housenumber IS NOT NULL AND housenumber != '' AND street IS NOT NULL AND street != ''
			THEN housenumber || ' ' || street || CASE WHEN city != '' THEN ', ' || city ELSE '' END
			WHEN street IS NOT NULL AND street != ''
			THEN street || CASE WHEN city != '' THEN ', ' || city ELSE '' END
			WHEN city IS NOT NULL AND city != ''
			THEN city
			ELSE ''
		END
	) STORED,
	PRIMARY KEY (osm_type, id)
);

CREATE INDEX IF NOT EXISTS idx_poi_name ON pois(lower(name));
CREATE INDEX IF NOT EXISTS idx_poi_full_address ON pois(lower(full_address));
CREATE INDEX IF NOT EXISTS idx_poi_category ON pois(category);
CREATE INDEX IF NOT EXISTS idx_poi_city ON pois(lower(city));

CREATE TABLE IF NOT EXISTS addresses (
	id          BIGINT PRIMARY KEY,
	housenumber TEXT,
	street      TEXT,
	city        TEXT,
	postcode    TEXT,
	suburb      TEXT,
	place       TEXT,
	latitude    DOUBLE PRECISION NOT NULL,
	longitude   DOUBLE PRECISION NOT NULL,
	full_address TEXT
);

CREATE INDEX IF NOT EXISTS idx_addr_full ON addresses(lower(full_address));
CREATE INDEX IF NOT EXISTS idx_addr_street ON addresses(lower(street));
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// poiColumns excludes full_address, which is generated.
var poiColumns = []string{
	"id", "name", "category", "subcategory", "latitude", "longitude",
	"housenumber", "city", "street", "osm_type",
}

var addressColumns = []string{
	"id", "housenumber", "street", "city", "postcode", "suburb", "place",
	"latitude", "longitude", "full_address",
}

// InsertPOIs bulk-loads all POIs via COPY.
func (s *PostgresStore) InsertPOIs(ctx context.Context, pois []model.PointOfInterest) error {
	rows := make([][]any, 0, len(pois))
	for _, poi := range pois {
		rows = append(rows, []any{
			poi.ID, poi.Name, poi.Category, poi.Subcategory,
			poi.Latitude, poi.Longitude,
			poi.Housenumber, poi.City, poi.Street, string(poi.OSMType),
		})
	}

	n, err := db.CopyFrom(ctx, s.pool, "pois", poiColumns, rows)
	if err != nil {
		return eris.Wrap(err, "postgres: insert pois")
	}
	zap.L().Info("pois inserted", zap.Int64("count", n))
	return nil
}

// InsertAddresses bulk-loads all addresses via COPY.
func (s *PostgresStore) InsertAddresses(ctx context.Context, addresses []model.Address) error {
	rows := make([][]any, 0, len(addresses))
	for _, addr := range addresses {
		rows = append(rows, []any{
			addr.ID, addr.Housenumber, addr.Street, addr.City,
			addr.Postcode, addr.Suburb, addr.Place,
			addr.Latitude, addr.Longitude, addr.FullAddress,
		})
	}

	n, err := db.CopyFrom(ctx, s.pool, "addresses", addressColumns, rows)
	if err != nil {
		return eris.Wrap(err, "postgres: insert addresses")
	}
	zap.L().Info("addresses inserted", zap.Int64("count", n))
	return nil
}

// Optimize refreshes planner statistics after the bulk load.
func (s *PostgresStore) Optimize(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "ANALYZE pois, addresses")
	return eris.Wrap(err, "postgres: analyze")
}
