package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS drawings (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		width      INTEGER NOT NULL,
		height     INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS snapshots (
		id         TEXT PRIMARY KEY,
		drawing_id TEXT NOT NULL REFERENCES drawings(id) ON DELETE CASCADE,
		version    INTEGER NOT NULL,
		document   TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE (drawing_id, version)
	)`,
}

// SQLiteStore is a Store backed by a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at dbPath and applies
// the schema.
func OpenSQLite(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) CreateDrawing(ctx context.Context, d Drawing) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO drawings (id, name, width, height, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, d.ID, d.Name, d.Width, d.Height, formatTime(d.CreatedAt), formatTime(d.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert drawing: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetDrawing(ctx context.Context, id string) (*Drawing, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT d.id, d.name, d.width, d.height, d.created_at, d.updated_at,
		       COALESCE(MAX(s.version), 0)
		FROM drawings d
		LEFT JOIN snapshots s ON s.drawing_id = d.id
		WHERE d.id = ?
		GROUP BY d.id
	`, id)

	d, err := scanSQLiteDrawing(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get drawing: %w", err)
	}
	return d, nil
}

func (s *SQLiteStore) ListDrawings(ctx context.Context) ([]Drawing, error) {
	rows, err := s.db.QueryContext(ctx, `
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
		d, err := scanSQLiteDrawing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan drawing: %w", err)
		}
		drawings = append(drawings, *d)
	}
	return drawings, rows.Err()
}

func (s *SQLiteStore) DeleteDrawing(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE drawing_id = ?`, id); err != nil {
		return fmt.Errorf("delete snapshots: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM drawings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete drawing: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func (s *SQLiteStore) CreateSnapshot(ctx context.Context, snap Snapshot) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// Writing the drawing row first takes the write lock before the
	// version is read.
	res, err := tx.ExecContext(ctx, `UPDATE drawings SET updated_at = ? WHERE id = ?`,
		formatTime(snap.CreatedAt), snap.DrawingID)
	if err != nil {
		return 0, fmt.Errorf("touch drawing: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, ErrNotFound
	}

	var version int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(version), 0) + 1 FROM snapshots WHERE drawing_id = ?
	`, snap.DrawingID).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("next version: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, drawing_id, version, document, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, snap.ID, snap.DrawingID, version, string(snap.Document), formatTime(snap.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return version, nil
}

func (s *SQLiteStore) LatestSnapshot(ctx context.Context, drawingID string) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, drawing_id, version, document, created_at
		FROM snapshots
		WHERE drawing_id = ?
		ORDER BY version DESC
		LIMIT 1
	`, drawingID)

	var snap Snapshot
	var doc, createdAt string
	if err := row.Scan(&snap.ID, &snap.DrawingID, &snap.Version, &doc, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	snap.Document = []byte(doc)

	var err error
	if snap.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse snapshot time: %w", err)
	}
	return &snap, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteDrawing(row rowScanner) (*Drawing, error) {
	var d Drawing
	var createdAt, updatedAt string
	if err := row.Scan(&d.ID, &d.Name, &d.Width, &d.Height, &createdAt, &updatedAt, &d.Version); err != nil {
		return nil, err
	}

	var err error
	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
