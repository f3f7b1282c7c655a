package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	corehistory "github.com/kilianp07/nhltiers/core/history"
	"github.com/kilianp07/nhltiers/core/model"
)

// SQLiteBackend persists one row per player holding its predictions as JSON.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend opens or creates the database and ensures schema.
// maxPageCount caps the database size in pages; zero keeps the SQLite default.
func NewSQLiteBackend(path string, maxPageCount int) (*SQLiteBackend, error) {
	if path == "" {
		return nil, errors.New("sqlite backend requires a path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)
	schema := `CREATE TABLE IF NOT EXISTS prediction_history (
        player_id TEXT PRIMARY KEY,
        predictions TEXT NOT NULL
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	if maxPageCount > 0 {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA max_page_count = %d", maxPageCount)); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return &SQLiteBackend{db: db}, nil
}

// Read loads every player row.
func (s *SQLiteBackend) Read(ctx context.Context) (corehistory.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT player_id, predictions FROM prediction_history`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	snap := corehistory.Snapshot{}
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		var preds []model.Prediction
		if err := json.Unmarshal([]byte(raw), &preds); err != nil {
			return nil, fmt.Errorf("decode history of %s: %w", id, err)
		}
		snap[id] = preds
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Write replaces the table content in one transaction.
func (s *SQLiteBackend) Write(ctx context.Context, snap corehistory.Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapSQLiteErr(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM prediction_history`); err != nil {
		return mapSQLiteErr(err)
	}
	for id, preds := range snap {
		raw, merr := json.Marshal(preds)
		if merr != nil {
			return merr
		}
		if _, err = tx.ExecContext(ctx, `INSERT INTO prediction_history (player_id, predictions) VALUES (?, ?)`, id, string(raw)); err != nil {
			return mapSQLiteErr(err)
		}
	}
	if err = tx.Commit(); err != nil {
		return mapSQLiteErr(err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteBackend) Close() error { return s.db.Close() }

// mapSQLiteErr turns SQLITE_FULL into ErrQuotaExceeded.
func mapSQLiteErr(err error) error {
	if err == nil {
		return nil
	}
	var serr *sqlite.Error
	if errors.As(err, &serr) && serr.Code()&0xff == sqlite3.SQLITE_FULL {
		return fmt.Errorf("%v: %w", err, corehistory.ErrQuotaExceeded)
	}
	if strings.Contains(err.Error(), "database or disk is full") {
		return fmt.Errorf("%v: %w", err, corehistory.ErrQuotaExceeded)
	}
	return err
}
