package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/platform/db"
)

// Initialize the database schema. Statements are portable across SQLite and Postgres.
func InitSchema(ctx context.Context, conn *sql.DB) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createClientsQuery := `
	CREATE TABLE IF NOT EXISTS clients (
		id INTEGER PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		zone TEXT NOT NULL,
		trash_bins INTEGER NOT NULL,
		recycle_bins INTEGER NOT NULL,
		actions INTEGER NOT NULL,
		monthly_cost INTEGER NOT NULL,
		first_service BOOLEAN NOT NULL,
		instructions TEXT NOT NULL DEFAULT '',
		photo_url TEXT NOT NULL DEFAULT ''
	);
	`

	createZonesQuery := `
	CREATE TABLE IF NOT EXISTS zones (
		name TEXT PRIMARY KEY,
		worker TEXT NOT NULL
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		miles DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_clients_zone ON clients(zone);
	`

	statements := []string{
		createClientsQuery,
		createZonesQuery,
		createDistanceCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedIfEmpty inserts the zones (keeping existing assignments) and, when the
// clients table is empty, the given clients. It reports whether clients were written.
func SeedIfEmpty(
	ctx context.Context,
	conn *sql.DB,
	dialect db.Dialect,
	clients []domain.Client,
	zones []domain.Zone,
) (bool, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	zoneStmt, err := tx.PrepareContext(ctx, dialect.Rebind(`
	INSERT INTO zones (name, worker)
	VALUES (?, ?)
	ON CONFLICT (name) DO NOTHING;
	`))
	if err != nil {
		return false, fmt.Errorf("seed: prepare zone insert: %w", err)
	}
	defer zoneStmt.Close()

	for _, z := range zones {
		if _, err := zoneStmt.ExecContext(ctx, z.Name, z.Worker); err != nil {
			return false, fmt.Errorf("seed: insert zone %q: %w", z.Name, err)
		}
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients;`).Scan(&count); err != nil {
		return false, fmt.Errorf("seed: count clients: %w", err)
	}

	seeded := false
	if count == 0 && len(clients) > 0 {
		clientStmt, err := tx.PrepareContext(ctx, dialect.Rebind(`
		INSERT INTO clients (
			id, lat, lng, zone, trash_bins, recycle_bins,
			actions, monthly_cost, first_service, instructions, photo_url
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
		`))
		if err != nil {
			return false, fmt.Errorf("seed: prepare client insert: %w", err)
		}
		defer clientStmt.Close()

		for _, c := range clients {
			if _, err := clientStmt.ExecContext(ctx,
				c.ID, c.Location.Lat, c.Location.Lng, c.Zone, c.TrashBins, c.RecycleBins,
				c.Actions, c.MonthlyCost, c.FirstService, c.Instructions, c.PhotoURL,
			); err != nil {
				return false, fmt.Errorf("seed: insert client id=%d: %w", c.ID, err)
			}
		}
		seeded = true
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("seed: commit tx: %w", err)
	}

	return seeded, nil
}
