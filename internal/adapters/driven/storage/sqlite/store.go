package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/thatssomoneybaby/IPdf/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driven"
)

// Store is the SQLite-backed metadata store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.ipdf/data/metadata.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".ipdf", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// WAL mode for better concurrency across CLI invocations.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

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
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Put inserts or replaces a document record.
func (d *documentStore) Put(ctx context.Context, rec domain.DocumentRecord) error {
	if rec.DocID == "" {
		return fmt.Errorf("document record: %w", domain.ErrInvalidInput)
	}
	if rec.IngestedAt.IsZero() {
		rec.IngestedAt = time.Now().UTC()
	}
	if rec.Status == "" {
		rec.Status = domain.StatusQueued
	}

	errorsJSON, err := json.Marshal(rec.Errors)
	if err != nil {
		return fmt.Errorf("marshalling errors: %w", err)
	}

	_, err = d.store.db.ExecContext(ctx, `
		INSERT INTO documents (doc_id, filename, status, page_count, chunk_count, ingested_at, definitions_status, entitlements_status, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(doc_id) DO UPDATE SET
			filename = excluded.filename,
			status = excluded.status,
			page_count = excluded.page_count,
			chunk_count = excluded.chunk_count,
			definitions_status = excluded.definitions_status,
			entitlements_status = excluded.entitlements_status,
			errors = excluded.errors
	`, rec.DocID, rec.Filename, string(rec.Status), rec.PageCount, rec.ChunkCount,
		rec.IngestedAt, string(rec.DefinitionsStatus), string(rec.EntitlementsStatus), string(errorsJSON))

	if err != nil {
		return fmt.Errorf("saving document record: %w", err)
	}
	return nil
}

// Get returns the record for a document id.
func (d *documentStore) Get(ctx context.Context, docID string) (*domain.DocumentRecord, error) {
	row := d.store.db.QueryRowContext(ctx, `
		SELECT doc_id, filename, status, page_count, chunk_count, ingested_at, definitions_status, entitlements_status, errors
		FROM documents WHERE doc_id = ?
	`, docID)

	rec, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document record: %w", err)
	}
	return rec, nil
}

// List returns all document records, most recently ingested first.
func (d *documentStore) List(ctx context.Context) ([]domain.DocumentRecord, error) {
	rows, err := d.store.db.QueryContext(ctx, `
		SELECT doc_id, filename, status, page_count, chunk_count, ingested_at, definitions_status, entitlements_status, errors
		FROM documents ORDER BY ingested_at DESC, doc_id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var out []domain.DocumentRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document record: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// SetStatus updates the lifecycle status of a document.
func (d *documentStore) SetStatus(ctx context.Context, docID string, status domain.DocumentStatus) error {
	res, err := d.store.db.ExecContext(ctx,
		"UPDATE documents SET status = ? WHERE doc_id = ?", string(status), docID)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}
	return requireRow(res)
}

// SetExtractionStatus updates one extraction status column.
func (d *documentStore) SetExtractionStatus(ctx context.Context, docID, itemType string, status domain.ExtractionStatus) error {
	var column string
	switch itemType {
	case "definitions":
		column = "definitions_status"
	case "entitlements":
		column = "entitlements_status"
	default:
		return fmt.Errorf("extraction type %q: %w", itemType, domain.ErrInvalidInput)
	}

	res, err := d.store.db.ExecContext(ctx,
		"UPDATE documents SET "+column+" = ? WHERE doc_id = ?", string(status), docID)
	if err != nil {
		return fmt.Errorf("updating %s: %w", column, err)
	}
	return requireRow(res)
}

// Close releases resources. The underlying connection is owned by the
// parent Store.
func (d *documentStore) Close() error {
	return nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*domain.DocumentRecord, error) {
	var rec domain.DocumentRecord
	var status, defsStatus, entsStatus, errorsJSON string
	var ingestedAt sql.NullTime
	if err := row.Scan(&rec.DocID, &rec.Filename, &status, &rec.PageCount, &rec.ChunkCount,
		&ingestedAt, &defsStatus, &entsStatus, &errorsJSON); err != nil {
		return nil, err
	}
	rec.Status = domain.DocumentStatus(status)
	rec.DefinitionsStatus = domain.ExtractionStatus(defsStatus)
	rec.EntitlementsStatus = domain.ExtractionStatus(entsStatus)
	if ingestedAt.Valid {
		rec.IngestedAt = ingestedAt.Time
	}
	if errorsJSON != "" {
		if err := json.Unmarshal([]byte(errorsJSON), &rec.Errors); err != nil {
			return nil, fmt.Errorf("unmarshaling errors: %w", err)
		}
	}
	return &rec, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
