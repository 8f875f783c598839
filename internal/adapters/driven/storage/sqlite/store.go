package sqlite

import (
	"context"
	"database/sql"
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

	"github.com/clamsproject/app-datimex-extraction/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driven"
)

// DatabaseFile is the file name of the database within the data directory.
const DatabaseFile = "annotations.db"

// Store is a SQLite-based storage for annotation views.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.datimex/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".datimex", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
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

// AnnotationStore returns an AnnotationStore interface backed by this store.
func (s *Store) AnnotationStore() driven.AnnotationStore {
	return &annotationStore{store: s}
}

// migrate applies every NNN_name.up.sql file newer than the recorded
// schema version, each in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
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
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
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
		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// SchemaVersion returns the latest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v)
	return v, err
}

// ==================== Annotation Store ====================

// annotationStore implements driven.AnnotationStore.
type annotationStore struct {
	store *Store
}

var _ driven.AnnotationStore = (*annotationStore)(nil)

// SaveView stores or replaces a view and its annotations.
func (s *annotationStore) SaveView(ctx context.Context, view *domain.View) error {
	if view == nil {
		return domain.ErrInvalidInput
	}

	paramsJSON, err := json.Marshal(view.Parameters)
	if err != nil {
		return fmt.Errorf("marshalling parameters: %w", err)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// Replacing the view cascades to its old annotations.
	if _, err := tx.ExecContext(ctx, "DELETE FROM views WHERE id = ?", view.ID); err != nil {
		return fmt.Errorf("replacing view: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO views (id, app, created_at, parameters)
		VALUES (?, ?, ?, ?)
	`, view.ID, view.App, view.Timestamp.UnixNano(), string(paramsJSON))
	if err != nil {
		return fmt.Errorf("saving view: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO annotations (view_id, seq, id, document_id, start_offset, end_offset, text, date, category)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, ann := range view.Annotations {
		_, err := stmt.ExecContext(ctx, view.ID, i, ann.ID, ann.DocumentID,
			ann.Start, ann.End, ann.Text, ann.Date, ann.Category)
		if err != nil {
			return fmt.Errorf("saving annotation %s: %w", ann.ID, err)
		}
	}

	return tx.Commit()
}

// GetView retrieves a view and its annotations by ID.
func (s *annotationStore) GetView(ctx context.Context, id string) (*domain.View, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT id, app, created_at, parameters FROM views WHERE id = ?", id)
	view, err := scanView(row)
	if err != nil {
		return nil, err
	}

	anns, err := s.ListAnnotations(ctx, driven.AnnotationFilter{ViewID: id})
	if err != nil {
		return nil, err
	}
	view.Annotations = anns
	return view, nil
}

// ListViews returns all views with their annotations, newest first.
func (s *annotationStore) ListViews(ctx context.Context) ([]domain.View, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT id, app, created_at, parameters FROM views ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("listing views: %w", err)
	}
	defer rows.Close()

	var views []domain.View
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range views {
		anns, err := s.ListAnnotations(ctx, driven.AnnotationFilter{ViewID: views[i].ID})
		if err != nil {
			return nil, err
		}
		views[i].Annotations = anns
	}
	return views, nil
}

// ListAnnotations returns matching annotations, newest view first and scan
// order within a view.
func (s *annotationStore) ListAnnotations(
	ctx context.Context,
	filter driven.AnnotationFilter,
) ([]domain.DateAnnotation, error) {
	query := `
		SELECT a.id, a.document_id, a.start_offset, a.end_offset, a.text, a.date, a.category
		FROM annotations a
		JOIN views v ON v.id = a.view_id
		WHERE 1 = 1`
	var args []any

	if filter.ViewID != "" {
		query += " AND a.view_id = ?"
		args = append(args, filter.ViewID)
	}
	if filter.DocumentID != "" {
		query += " AND a.document_id = ?"
		args = append(args, filter.DocumentID)
	}
	if !filter.Since.IsZero() {
		query += " AND v.created_at >= ?"
		args = append(args, filter.Since.UnixNano())
	}
	query += " ORDER BY v.created_at DESC, v.id, a.seq"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing annotations: %w", err)
	}
	defer rows.Close()

	var anns []domain.DateAnnotation
	for rows.Next() {
		var a domain.DateAnnotation
		if err := rows.Scan(&a.ID, &a.DocumentID, &a.Start, &a.End, &a.Text, &a.Date, &a.Category); err != nil {
			return nil, fmt.Errorf("scanning annotation: %w", err)
		}
		anns = append(anns, a)
	}
	return anns, rows.Err()
}

// DeleteView removes a view. Its annotations are removed by cascade.
func (s *annotationStore) DeleteView(ctx context.Context, id string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM views WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting view: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanView(row rowScanner) (*domain.View, error) {
	var view domain.View
	var createdAt int64
	var paramsJSON string

	if err := row.Scan(&view.ID, &view.App, &createdAt, &paramsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning view: %w", err)
	}

	view.Timestamp = time.Unix(0, createdAt).UTC()
	if paramsJSON != "" && paramsJSON != "null" {
		if err := json.Unmarshal([]byte(paramsJSON), &view.Parameters); err != nil {
			return nil, fmt.Errorf("unmarshalling parameters: %w", err)
		}
	}
	return &view, nil
}
