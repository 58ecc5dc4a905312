// Package archive persists finished estimate snapshots to Postgres. It sits
// outside the estimation engines: a snapshot is written after a computation
// completes, and nothing in the pipeline ever reads it back. Amounts round
// to cents here, at the persistence boundary.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"sealcost/pkg/api"
	"sealcost/pkg/units"
)

// Store writes estimate snapshots.
type Store struct {
	db *sql.DB
}

// New opens a Postgres-backed store and verifies connectivity.
func New(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks connectivity for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureSchema creates the snapshot tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS estimates (
	id            UUID PRIMARY KEY,
	created_at    TIMESTAMPTZ NOT NULL,
	area_sqft     DOUBLE PRECISION NOT NULL,
	coat_count    INTEGER NOT NULL,
	subtotal      NUMERIC(12,2) NOT NULL,
	overhead      NUMERIC(12,2) NOT NULL,
	profit        NUMERIC(12,2) NOT NULL,
	total         NUMERIC(12,2) NOT NULL
);
CREATE TABLE IF NOT EXISTS estimate_line_items (
	estimate_id   UUID NOT NULL REFERENCES estimates(id) ON DELETE CASCADE,
	position      INTEGER NOT NULL,
	category      TEXT NOT NULL,
	item          TEXT NOT NULL,
	amount        NUMERIC(12,2) NOT NULL,
	PRIMARY KEY (estimate_id, position)
);`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

// SaveEstimate writes one computation snapshot atomically and returns its
// id. The header and every breakdown line land in a single transaction so a
// partial snapshot can never be read back.
func (s *Store) SaveEstimate(ctx context.Context, in api.ProjectInputs, comp *api.Computation) (uuid.UUID, error) {
	id := uuid.New()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO estimates (id, created_at, area_sqft, coat_count, subtotal, overhead, profit, total)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id,
		comp.ComputedAt,
		in.TotalAreaSqFt,
		in.CoatCount,
		units.RoundCurrency(comp.Costs.Subtotal),
		units.RoundCurrency(comp.Costs.Overhead),
		units.RoundCurrency(comp.Costs.Profit),
		units.RoundCurrency(comp.Costs.Total),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert estimate: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO estimate_line_items (estimate_id, position, category, item, amount)
		 VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("prepare lines: %w", err)
	}
	defer stmt.Close()

	for i, line := range comp.Breakdown {
		if _, err := stmt.ExecContext(ctx, id, i, string(line.Category), line.Item,
			units.RoundCurrency(line.Amount)); err != nil {
			return uuid.Nil, fmt.Errorf("insert line %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}
