package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/platform/db"
)

// SQL-backed implementation of the ZoneRepository port.
type SQLZoneRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLZoneRepository(conn *sql.DB, dialect db.Dialect) *SQLZoneRepository {
	return &SQLZoneRepository{DB: conn, Dialect: dialect}
}

func (s *SQLZoneRepository) ListZones(ctx context.Context) (map[string]string, error) {
	if s.DB == nil {
		return nil, errors.New("sql zone repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT name, worker FROM zones;`)
	if err != nil {
		return nil, fmt.Errorf("list zones: query zones table: %w", err)
	}
	defer rows.Close()

	zones := make(map[string]string)
	for rows.Next() {
		var name, worker string
		if err := rows.Scan(&name, &worker); err != nil {
			return nil, fmt.Errorf("list zones: scan row: %w", err)
		}
		zones[name] = worker
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list zones: row iteration: %w", err)
	}

	return zones, nil
}

// AssignWorker updates an existing zone row; zones are never inserted here.
func (s *SQLZoneRepository) AssignWorker(ctx context.Context, zone, worker string) error {
	if s.DB == nil {
		return errors.New("sql zone repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, s.Dialect.Rebind(`UPDATE zones SET worker = ? WHERE name = ?;`), worker, zone)
	if err != nil {
		return fmt.Errorf("assign zone %q: %w", zone, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("assign zone %q: rows affected: %w", zone, err)
	}
	if n == 0 {
		return fmt.Errorf("assign zone %q: %w", zone, domain.ErrNotFound)
	}

	return nil
}
