package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/platform/db"
)

const clientColumns = `
	id, lat, lng, zone, trash_bins, recycle_bins,
	actions, monthly_cost, first_service, instructions, photo_url
`

// SQL-backed implementation of the ClientRepository port (SQLite or Postgres).
type SQLClientRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLClientRepository(conn *sql.DB, dialect db.Dialect) *SQLClientRepository {
	return &SQLClientRepository{DB: conn, Dialect: dialect}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ID, &c.Location.Lat, &c.Location.Lng, &c.Zone, &c.TrashBins, &c.RecycleBins,
		&c.Actions, &c.MonthlyCost, &c.FirstService, &c.Instructions, &c.PhotoURL,
	)
	return c, err
}

// Return all clients ordered by id.
func (s *SQLClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	if s.DB == nil {
		return nil, errors.New("sql client repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("list clients: query clients table: %w", err)
	}
	defer rows.Close()

	clients := make([]domain.Client, 0, 64)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("list clients: scan row: %w", err)
		}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list clients: row iteration: %w", err)
	}

	return clients, nil
}

func (s *SQLClientRepository) GetClient(ctx context.Context, id int) (domain.Client, error) {
	if s.DB == nil {
		return domain.Client{}, errors.New("sql client repository: DB is nil")
	}

	q := s.Dialect.Rebind(`SELECT ` + clientColumns + ` FROM clients WHERE id = ?;`)
	c, err := scanClient(s.DB.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Client{}, fmt.Errorf("get client %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Client{}, fmt.Errorf("get client %d: %w", id, err)
	}

	return c, nil
}

// UpdateClient runs the read-modify-write inside one transaction. Postgres
// locks the row; SQLite serializes writers on its single connection.
func (s *SQLClientRepository) UpdateClient(
	ctx context.Context,
	id int,
	mutate func(*domain.Client) error,
) (domain.Client, error) {
	if s.DB == nil {
		return domain.Client{}, errors.New("sql client repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.Client{}, fmt.Errorf("update client %d: begin tx: %w", id, err)
	}
	defer func() { _ = tx.Rollback() }()

	q := s.Dialect.Rebind(`SELECT ` + clientColumns + ` FROM clients WHERE id = ?` + s.Dialect.LockClause() + `;`)
	c, err := scanClient(tx.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Client{}, fmt.Errorf("update client %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Client{}, fmt.Errorf("update client %d: select: %w", id, err)
	}

	if err := mutate(&c); err != nil {
		return domain.Client{}, fmt.Errorf("update client %d: %w", id, err)
	}

	update := s.Dialect.Rebind(`
	UPDATE clients
	SET zone = ?, trash_bins = ?, recycle_bins = ?, actions = ?, monthly_cost = ?,
		first_service = ?, instructions = ?, photo_url = ?
	WHERE id = ?;
	`)
	if _, err := tx.ExecContext(ctx, update,
		c.Zone, c.TrashBins, c.RecycleBins, c.Actions, c.MonthlyCost,
		c.FirstService, c.Instructions, c.PhotoURL, c.ID,
	); err != nil {
		return domain.Client{}, fmt.Errorf("update client %d: write: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Client{}, fmt.Errorf("update client %d: commit tx: %w", id, err)
	}

	return c, nil
}
