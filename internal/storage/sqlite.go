package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/meur/dotasource/internal/models"
)

// Store handles all database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			revision TEXT NOT NULL,
			count INTEGER NOT NULL,
			payload TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_kind ON snapshots(kind, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_revision ON snapshots(kind, revision)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// --- Snapshots ---

// CreateSnapshot stores a serialized payload
func (s *Store) CreateSnapshot(in *models.SnapshotCreate) (*models.Snapshot, error) {
	snaps, err := s.CreateSnapshots([]models.SnapshotCreate{*in})
	if err != nil {
		return nil, err
	}
	return &snaps[0], nil
}

// CreateSnapshots stores several payloads in one transaction
func (s *Store) CreateSnapshots(in []models.SnapshotCreate) ([]models.Snapshot, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO snapshots (id, kind, revision, count, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	out := make([]models.Snapshot, 0, len(in))
	for _, c := range in {
		snap := models.Snapshot{
			ID:        uuid.New().String(),
			Kind:      c.Kind,
			Revision:  c.Revision,
			Count:     c.Count,
			Payload:   c.Payload,
			CreatedAt: now,
		}
		if _, err := stmt.Exec(snap.ID, snap.Kind, snap.Revision, snap.Count, string(snap.Payload), snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("inserting %s snapshot: %w", c.Kind, err)
		}
		out = append(out, snap)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSnapshot returns a snapshot by ID
func (s *Store) GetSnapshot(id string) (*models.Snapshot, error) {
	return s.scanSnapshot(s.db.QueryRow(`
		SELECT id, kind, revision, count, payload, created_at
		FROM snapshots WHERE id = ?
	`, id))
}

// GetLatestSnapshot returns the newest snapshot of a kind
func (s *Store) GetLatestSnapshot(kind string) (*models.Snapshot, error) {
	return s.scanSnapshot(s.db.QueryRow(`
		SELECT id, kind, revision, count, payload, created_at
		FROM snapshots WHERE kind = ? ORDER BY created_at DESC, rowid DESC LIMIT 1
	`, kind))
}

func (s *Store) scanSnapshot(row *sql.Row) (*models.Snapshot, error) {
	var snap models.Snapshot
	var payload string
	err := row.Scan(&snap.ID, &snap.Kind, &snap.Revision, &snap.Count, &payload, &snap.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	snap.Payload = []byte(payload)
	return &snap, nil
}

// ListSnapshots returns snapshot summaries, newest first, optionally
// filtered by kind
func (s *Store) ListSnapshots(kind string) ([]models.SnapshotSummary, error) {
	query := `SELECT id, kind, revision, count, created_at FROM snapshots`
	var args []interface{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []models.SnapshotSummary{}
	for rows.Next() {
		var sum models.SnapshotSummary
		if err := rows.Scan(&sum.ID, &sum.Kind, &sum.Revision, &sum.Count, &sum.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// HasRevision reports whether a snapshot of kind with revision exists
func (s *Store) HasRevision(kind, revision string) (bool, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(1) FROM snapshots WHERE kind = ? AND revision = ?
	`, kind, revision).Scan(&n)
	return n > 0, err
}

// PruneSnapshots deletes all but the newest keep snapshots of each given kind
func (s *Store) PruneSnapshots(keep int, kinds ...string) (int64, error) {
	if len(kinds) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(kinds)), ", ")
	args := make([]interface{}, 0, len(kinds)+1)
	for _, k := range kinds {
		args = append(args, k)
	}
	args = append(args, keep)

	res, err := s.db.Exec(fmt.Sprintf(`
		DELETE FROM snapshots WHERE id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY kind ORDER BY created_at DESC, rowid DESC) AS rn
				FROM snapshots WHERE kind IN (%s)
			) WHERE rn > ?
		)
	`, placeholders), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
