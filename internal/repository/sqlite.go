package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/CS-UT/course-plan-sub000/internal/model"
)

// stateKey is the single key the planner document lives under.
const stateKey = "planner"

// SQLiteStateRepository stores the planner document in a local SQLite
// database, one row per key.
type SQLiteStateRepository struct {
	db *sql.DB
}

// NewSQLite opens or creates the database at path and ensures the schema.
func NewSQLite(path string) (*SQLiteStateRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	r := &SQLiteStateRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate state db: %w", err)
	}
	return r, nil
}

func (r *SQLiteStateRepository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS planner_state (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`
	_, err := r.db.Exec(schema)
	return err
}

// Load reads and decodes the planner document. A missing row maps to
// ErrStateNotFound; an undecodable row is reported as an error so the
// caller can fall back to the default state.
func (r *SQLiteStateRepository) Load(ctx context.Context) (model.PlannerState, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM planner_state WHERE key = ?`, stateKey,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PlannerState{}, ErrStateNotFound
	}
	if err != nil {
		return model.PlannerState{}, fmt.Errorf("load state: %w", err)
	}

	var state model.PlannerState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return model.PlannerState{}, fmt.Errorf("decode state: %w", err)
	}
	if len(state.Schedules) == 0 {
		return model.PlannerState{}, fmt.Errorf("decode state: no schedules")
	}
	return state, nil
}

// Save encodes and upserts the planner document.
func (r *SQLiteStateRepository) Save(ctx context.Context, state model.PlannerState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO planner_state (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		stateKey, string(raw), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (r *SQLiteStateRepository) Close() error {
	return r.db.Close()
}
