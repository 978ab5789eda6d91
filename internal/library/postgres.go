package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS drawings (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		width      INTEGER NOT NULL,
		height     INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS snapshots (
		id         TEXT PRIMARY KEY,
		drawing_id TEXT NOT NULL REFERENCES drawings(id) ON DELETE CASCADE,
		version    INTEGER NOT NULL,
		document   JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (drawing_id, version)
	)`,
}

// PostgresStore is a Store backed by a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to databaseURL and applies the schema.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	for _, stmt := range postgresSchema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			pool.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) CreateDrawing(ctx context.Context, d Drawing) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO drawings (id, name, width, height, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, d.ID, d.Name, d.Width, d.Height, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert drawing: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetDrawing(ctx context.Context, id string) (*Drawing, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT d.id, d.name, d.width, d.height, d.created_at, d.updated_at,
		       COALESCE(MAX(s.version), 0)
		FROM drawings d
		LEFT JOIN snapshots s ON s.drawing_id = d.id
		WHERE d.id = $1
		GROUP BY d.id
	`, id)

	var d Drawing
	if err := row.Scan(&d.ID, &d.Name, &d.Width, &d.Height, &d.CreatedAt, &d.UpdatedAt, &d.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get drawing: %w", err)
	}
	return &d, nil
}

func (s *PostgresStore) ListDrawings(ctx context.Context) ([]Drawing, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT d.id, d.name, d.width, d.height, d.created_at, d.updated_at,
		       COALESCE(MAX(s.version), 0)
		FROM drawings d
		LEFT JOIN snapshots s ON s.drawing_id = d.id
		GROUP BY d.id
		ORDER BY d.updated_at DESC, d.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	defer rows.Close()

	drawings := []Drawing{}
	for rows.Next() {
		var d Drawing
		if err := rows.Scan(&d.ID, &d.Name, &d.Width, &d.Height, &d.CreatedAt, &d.UpdatedAt, &d.Version); err != nil {
			return nil, fmt.Errorf("scan drawing: %w", err)
		}
		drawings = append(drawings, d)
	}
	return drawings, rows.Err()
}

func (s *PostgresStore) DeleteDrawing(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM drawings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete drawing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CreateSnapshot(ctx context.Context, snap Snapshot) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	// The update locks the drawing row, so concurrent saves of one drawing
	// read the version one after another.
	tag, err := tx.Exec(ctx, `UPDATE drawings SET updated_at = $1 WHERE id = $2`, snap.CreatedAt, snap.DrawingID)
	if err != nil {
		return 0, fmt.Errorf("touch drawing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrNotFound
	}

	var version int
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(version), 0) + 1 FROM snapshots WHERE drawing_id = $1
	`, snap.DrawingID).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("next version: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO snapshots (id, drawing_id, version, document, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, snap.ID, snap.DrawingID, version, []byte(snap.Document), snap.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return version, nil
}

func (s *PostgresStore) LatestSnapshot(ctx context.Context, drawingID string) (*Snapshot, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, drawing_id, version, document, created_at
		FROM snapshots
		WHERE drawing_id = $1
		ORDER BY version DESC
		LIMIT 1
	`, drawingID)

	var snap Snapshot
	var doc []byte
	if err := row.Scan(&snap.ID, &snap.DrawingID, &snap.Version, &doc, &snap.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	snap.Document = doc
	return &snap, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
