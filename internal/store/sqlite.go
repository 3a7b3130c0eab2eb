package store

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/sells-group/osmpoi/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

// full_address is generated in the schema so that autocomplete queries
// can hit an index instead of concatenating at query time.
const sqliteMigration = `
CREATE TABLE IF NOT EXISTS pois (
	id          INTEGER NOT NULL,
	name        TEXT NOT NULL,
	category    TEXT NOT NULL,
	subcategory TEXT,
	latitude    REAL NOT NULL,
	longitude   REAL NOT NULL,
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

CREATE INDEX IF NOT EXISTS idx_poi_name ON pois(name COLLATE NOCASE);
CREATE INDEX IF NOT EXISTS idx_poi_full_address ON pois(full_address COLLATE NOCASE);
CREATE INDEX IF NOT EXISTS idx_poi_category ON pois(category);
CREATE INDEX IF NOT EXISTS idx_poi_city ON pois(city COLLATE NOCASE);

CREATE TABLE IF NOT EXISTS addresses (
	id          INTEGER PRIMARY KEY,
	housenumber TEXT,
	street      TEXT,
	city        TEXT,
	postcode    TEXT,
	suburb      TEXT,
	place       TEXT,
	latitude    REAL NOT NULL,
	longitude   REAL NOT NULL,
	full_address TEXT
);

CREATE INDEX IF NOT EXISTS idx_addr_full ON addresses(full_address COLLATE NOCASE);
CREATE INDEX IF NOT EXISTS idx_addr_street ON addresses(street COLLATE NOCASE);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// InsertPOIs loads all POIs inside one transaction.
func (s *SQLiteStore) InsertPOIs(ctx context.Context, pois []model.PointOfInterest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin pois tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO pois (id, name, category, subcategory, latitude, longitude, housenumber, city, street, osm_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare poi insert")
	}
	defer stmt.Close()

	for _, poi := range pois {
		if _, err := stmt.ExecContext(ctx,
			poi.ID, poi.Name, poi.Category, poi.Subcategory,
			poi.Latitude, poi.Longitude,
			poi.Housenumber, poi.City, poi.Street, string(poi.OSMType),
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert poi %s/%d", poi.OSMType, poi.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "sqlite: commit pois")
	}
	zap.L().Info("pois inserted", zap.Int("count", len(pois)))
	return nil
}

// InsertAddresses loads all addresses inside one transaction.
func (s *SQLiteStore) InsertAddresses(ctx context.Context, addresses []model.Address) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin addresses tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO addresses (id, housenumber, street, city, postcode, suburb, place, latitude, longitude, full_address)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare address insert")
	}
	defer stmt.Close()

	for _, addr := range addresses {
		if _, err := stmt.ExecContext(ctx,
			addr.ID, addr.Housenumber, addr.Street, addr.City,
			addr.Postcode, addr.Suburb, addr.Place,
			addr.Latitude, addr.Longitude, addr.FullAddress,
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert address %d", addr.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "sqlite: commit addresses")
	}
	zap.L().Info("addresses inserted", zap.Int("count", len(addresses)))
	return nil
}

// Optimize refreshes planner statistics and compacts the database file.
func (s *SQLiteStore) Optimize(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "ANALYZE"); err != nil {
		return eris.Wrap(err, "sqlite: analyze")
	}
	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return eris.Wrap(err, "sqlite: vacuum")
	}
	return nil
}
