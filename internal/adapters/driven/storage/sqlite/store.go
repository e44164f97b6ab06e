package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/opengrama/gramasurvey/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/opengrama/gramasurvey/internal/core/domain"
	"github.com/opengrama/gramasurvey/internal/core/ports/driven"
	"golang.org/x/oauth2"
)

// Store is a unified SQLite-based storage that provides access to
// all device-local store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.gramasurvey/data/gramasurvey.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".gramasurvey", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "gramasurvey.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DraftStore returns a DraftStore interface backed by this store.
func (s *Store) DraftStore() driven.DraftStore {
	return &draftStore{store: s}
}

// SessionStore returns a SessionStore interface backed by this store.
func (s *Store) SessionStore() driven.SessionStore {
	return &sessionStore{store: s}
}

// SyncLogStore returns a SyncLogStore interface backed by this store.
func (s *Store) SyncLogStore() driven.SyncLogStore {
	return &syncLogStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Draft Store ====================

// draftStore implements driven.DraftStore over the single-row draft_slot
// table.
type draftStore struct {
	store *Store
}

var _ driven.DraftStore = (*draftStore)(nil)

// Save writes the draft into the slot, replacing whatever was there.
func (s *draftStore) Save(ctx context.Context, draft *domain.Draft) error {
	if draft == nil {
		return domain.ErrInvalidInput
	}

	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshalling draft: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO draft_slot (id, draft_id, payload, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			draft_id = excluded.draft_id,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, draft.ID, string(payload), time.Now().UTC())

	if err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

// Load returns the slotted draft, or domain.ErrNoDraft.
func (s *draftStore) Load(ctx context.Context) (*domain.Draft, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT payload FROM draft_slot WHERE id = 1
	`)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoDraft
		}
		return nil, fmt.Errorf("scanning draft: %w", err)
	}

	var draft domain.Draft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return nil, fmt.Errorf("unmarshaling draft: %w", err)
	}
	return &draft, nil
}

// Clear empties the slot. Clearing an empty slot is a no-op.
func (s *draftStore) Clear(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM draft_slot WHERE id = 1")
	if err != nil {
		return fmt.Errorf("clearing draft: %w", err)
	}
	return nil
}

// ==================== Session Store ====================

// sessionStore implements driven.SessionStore over the single-row session
// table.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// Save stores the session, replacing any previous one.
func (s *sessionStore) Save(ctx context.Context, session domain.Session) error {
	tokenJSON, err := json.Marshal(session.Token)
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO session (id, username, token, created_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			token = excluded.token,
			created_at = excluded.created_at
	`, session.Username, string(tokenJSON), session.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Get returns the stored session, or domain.ErrNotFound.
func (s *sessionStore) Get(ctx context.Context) (*domain.Session, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT username, token, created_at FROM session WHERE id = 1
	`)

	var session domain.Session
	var tokenJSON string
	var createdAt sql.NullTime
	if err := row.Scan(&session.Username, &tokenJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(tokenJSON), &token); err != nil {
		return nil, fmt.Errorf("unmarshaling token: %w", err)
	}
	session.Token = token
	if createdAt.Valid {
		session.CreatedAt = createdAt.Time
	}

	return &session, nil
}

// Clear removes the stored session.
func (s *sessionStore) Clear(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM session WHERE id = 1")
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// ==================== Sync Log Store ====================

// syncLogStore implements driven.SyncLogStore.
type syncLogStore struct {
	store *Store
}

var _ driven.SyncLogStore = (*syncLogStore)(nil)

// Record appends an accepted push.
func (s *syncLogStore) Record(ctx context.Context, entry domain.SyncLogEntry) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sync_log (draft_id, household_id, synced_at)
		VALUES (?, ?, ?)
	`, entry.DraftID, entry.HouseholdID, entry.SyncedAt)

	if err != nil {
		return fmt.Errorf("recording sync: %w", err)
	}
	return nil
}

// Last returns the most recent entry, or domain.ErrNotFound.
func (s *syncLogStore) Last(ctx context.Context) (*domain.SyncLogEntry, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT draft_id, household_id, synced_at
		FROM sync_log ORDER BY id DESC LIMIT 1
	`)

	var entry domain.SyncLogEntry
	var syncedAt sql.NullTime
	if err := row.Scan(&entry.DraftID, &entry.HouseholdID, &syncedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning sync log: %w", err)
	}
	if syncedAt.Valid {
		entry.SyncedAt = syncedAt.Time
	}

	return &entry, nil
}

// List returns entries newest first, at most limit (0 = all).
func (s *syncLogStore) List(ctx context.Context, limit int) ([]domain.SyncLogEntry, error) {
	query := `
		SELECT draft_id, household_id, synced_at
		FROM sync_log ORDER BY id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sync log: %w", err)
	}
	defer rows.Close()

	var entries []domain.SyncLogEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry domain.SyncLogEntry
		var syncedAt sql.NullTime
		if err := rows.Scan(&entry.DraftID, &entry.HouseholdID, &syncedAt); err != nil {
			return nil, fmt.Errorf("scanning sync log: %w", err)
		}
		if syncedAt.Valid {
			entry.SyncedAt = syncedAt.Time
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sync log: %w", err)
	}

	return entries, nil
}
