package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ImportRecord is one audit row: a processed ingest batch and its outcome.
type ImportRecord struct {
	ID         int64
	Source     string // "ocr", "manual" or "amqp"
	DateLabel  string
	Entries    int
	Succeeded  int
	Failed     int
	FirstError string
	CreatedAt  time.Time
}

// ImportRepository keeps the local import history in sqlite.
type ImportRepository struct {
	db *sql.DB
}

func NewImportRepository(dbPath string) (*ImportRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &ImportRepository{db: db}, nil
}

func (r *ImportRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Record inserts one import outcome and returns its id.
func (r *ImportRepository) Record(ctx context.Context, rec ImportRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO imports (source, date_label, entries, succeeded, failed, first_error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Source, rec.DateLabel, rec.Entries, rec.Succeeded, rec.Failed, rec.FirstError)
	if err != nil {
		return 0, fmt.Errorf("insert import record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// Recent returns the newest import records, most recent first.
func (r *ImportRepository) Recent(ctx context.Context, limit int) ([]ImportRecord, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source, date_label, entries, succeeded, failed, first_error, created_at
		 FROM imports ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query imports: %w", err)
	}
	defer rows.Close()

	var out []ImportRecord
	for rows.Next() {
		var rec ImportRecord
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.DateLabel, &rec.Entries,
			&rec.Succeeded, &rec.Failed, &rec.FirstError, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan import record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate imports: %w", err)
	}
	return out, nil
}
