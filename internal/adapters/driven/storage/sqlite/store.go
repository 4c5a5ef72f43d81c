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

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/chrona-labs/chrona-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/chrona-labs/chrona-cli/internal/core/domain"
	"github.com/chrona-labs/chrona-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// knowledge base store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.chrona/data/knowledge.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".chrona", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "knowledge.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
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

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// ImageStore returns an ImageStore interface backed by this store.
func (s *Store) ImageStore() driven.ImageStore {
	return &imageStore{store: s}
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

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// SaveDocument stores or replaces a document, keyed by URL.
func (s *documentStore) SaveDocument(ctx context.Context, doc *domain.Document) error {
	keywordsJSON, err := json.Marshal(doc.Keywords)
	if err != nil {
		return fmt.Errorf("marshalling keywords: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, title, content, url, category, subcategory, keywords, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			category = excluded.category,
			subcategory = excluded.subcategory,
			keywords = excluded.keywords,
			scraped_at = excluded.scraped_at
	`, doc.ID, doc.Title, doc.Content, doc.URL, doc.Category,
		doc.Subcategory, string(keywordsJSON), doc.ScrapedAt)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// GetByURL retrieves a document by its unique URL.
func (s *documentStore) GetByURL(ctx context.Context, url string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, content, url, category, subcategory, keywords, scraped_at
		FROM documents WHERE url = ?
	`, url)

	return scanDocument(row)
}

// SearchByTerms returns candidate documents where any term appears in
// the title, content or keywords, unioned with all documents in the
// hinted category. Hinted-category documents sort first, then title
// ascending; scoring downstream reorders within that.
func (s *documentStore) SearchByTerms(
	ctx context.Context, terms []string, categoryHint string, limit int,
) ([]domain.Document, error) {
	if len(terms) == 0 && categoryHint == "" {
		return nil, nil
	}

	var conditions []string
	var args []any
	for _, term := range terms {
		conditions = append(conditions,
			"(instr(lower(title), ?) > 0 OR instr(lower(content), ?) > 0 OR instr(lower(keywords), ?) > 0)")
		t := strings.ToLower(term)
		args = append(args, t, t, t)
	}
	where := strings.Join(conditions, " OR ")
	if categoryHint != "" {
		if where != "" {
			where += " OR "
		}
		where += "category = ?"
		args = append(args, categoryHint)
	}

	// Hinted category first, then title, for deterministic candidates.
	query := fmt.Sprintf(`
		SELECT id, title, content, url, category, subcategory, keywords, scraped_at
		FROM documents
		WHERE %s
		ORDER BY CASE WHEN category = ? THEN 0 ELSE 1 END, title ASC
		LIMIT ?
	`, where)
	args = append(args, categoryHint, limit)

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// Stats returns document counts, overall and per category.
func (s *documentStore) Stats(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{Categories: make(map[string]int)}

	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents")
	if err := row.Scan(&stats.TotalDocuments); err != nil {
		return nil, fmt.Errorf("counting documents: %w", err)
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT category, COUNT(*) FROM documents GROUP BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("querying category counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}
		stats.Categories[category] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category counts: %w", err)
	}

	return stats, nil
}

// ==================== Image Store ====================

// imageStore implements driven.ImageStore.
type imageStore struct {
	store *Store
}

var _ driven.ImageStore = (*imageStore)(nil)

// SaveImage stores or updates an image record.
func (s *imageStore) SaveImage(ctx context.Context, img *domain.Image) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO images
			(id, document_url, original_url, local_filename, alt_text, caption,
			 width, height, file_size, image_type, downloaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document_url = excluded.document_url,
			original_url = excluded.original_url,
			local_filename = excluded.local_filename,
			alt_text = excluded.alt_text,
			caption = excluded.caption,
			width = excluded.width,
			height = excluded.height,
			file_size = excluded.file_size,
			image_type = excluded.image_type,
			downloaded_at = excluded.downloaded_at
	`, img.ID, img.DocumentURL, img.OriginalURL, img.LocalFilename, img.AltText,
		img.Caption, img.Width, img.Height, img.FileSize, img.ImageType, img.DownloadedAt)

	if err != nil {
		return fmt.Errorf("saving image: %w", err)
	}
	return nil
}

// Count returns the number of stored image records.
func (s *imageStore) Count(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM images")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting images: %w", err)
	}
	return count, nil
}

// Query returns up to limit images matching the filter, joined with
// their owning documents.
func (s *imageStore) Query(
	ctx context.Context, filter driven.ImageFilter, limit int,
) ([]driven.ImageRow, error) {
	where, args := buildImageWhere(filter)

	query := fmt.Sprintf(`
		SELECT i.id, i.document_url, i.original_url, i.local_filename, i.alt_text,
		       i.caption, i.width, i.height, i.file_size, i.image_type, i.downloaded_at,
		       d.title, d.url, d.category, d.content
		FROM images i
		JOIN documents d ON i.document_url = d.url
		%s
		ORDER BY d.title ASC, i.id ASC
		LIMIT ?
	`, where)
	args = append(args, limit)

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying images: %w", err)
	}
	defer rows.Close()

	var results []driven.ImageRow //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r driven.ImageRow
		var downloadedAt sql.NullTime
		if err := rows.Scan(&r.Image.ID, &r.Image.DocumentURL, &r.Image.OriginalURL,
			&r.Image.LocalFilename, &r.Image.AltText, &r.Image.Caption,
			&r.Image.Width, &r.Image.Height, &r.Image.FileSize, &r.Image.ImageType,
			&downloadedAt, &r.DocTitle, &r.DocURL, &r.DocCategory, &r.DocContent); err != nil {
			return nil, fmt.Errorf("scanning image row: %w", err)
		}
		if downloadedAt.Valid {
			r.Image.DownloadedAt = downloadedAt.Time
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating images: %w", err)
	}

	return results, nil
}

// buildImageWhere translates an ImageFilter into a WHERE fragment.
// Clauses are OR'd, fields within one clause are AND'd, and the title
// exclusion applies on top of whatever the clauses admit.
func buildImageWhere(filter driven.ImageFilter) (string, []any) {
	var parts []string
	var args []any

	var clauseParts []string
	for _, clause := range filter.Clauses {
		var fields []string
		for _, term := range clause.TitleHas {
			fields = append(fields, "instr(lower(d.title), ?) > 0")
			args = append(args, strings.ToLower(term))
		}
		for _, term := range clause.AltHas {
			fields = append(fields, "instr(lower(i.alt_text), ?) > 0")
			args = append(args, strings.ToLower(term))
		}
		for _, term := range clause.ContentHas {
			fields = append(fields, "instr(lower(d.content), ?) > 0")
			args = append(args, strings.ToLower(term))
		}
		if len(clause.Categories) > 0 {
			placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(clause.Categories)), ", ")
			fields = append(fields, fmt.Sprintf("d.category IN (%s)", placeholders))
			for _, cat := range clause.Categories {
				args = append(args, cat)
			}
		}
		if len(fields) > 0 {
			clauseParts = append(clauseParts, "("+strings.Join(fields, " AND ")+")")
		}
	}
	if len(clauseParts) > 0 {
		parts = append(parts, "("+strings.Join(clauseParts, " OR ")+")")
	}

	for _, term := range filter.ExcludeTitle {
		parts = append(parts, "instr(lower(d.title), ?) = 0")
		args = append(args, strings.ToLower(term))
	}

	if len(parts) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(parts, " AND "), args
}

// ==================== Helper Functions ====================

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var keywordsJSON string
	var scrapedAt sql.NullTime

	if err := row.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.URL,
		&doc.Category, &doc.Subcategory, &keywordsJSON, &scrapedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if keywordsJSON != "" {
		if err := json.Unmarshal([]byte(keywordsJSON), &doc.Keywords); err != nil {
			return nil, fmt.Errorf("unmarshaling keywords: %w", err)
		}
	}
	if scrapedAt.Valid {
		doc.ScrapedAt = scrapedAt.Time
	}

	return &doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var keywordsJSON string
	var scrapedAt sql.NullTime

	if err := rows.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.URL,
		&doc.Category, &doc.Subcategory, &keywordsJSON, &scrapedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if keywordsJSON != "" {
		if err := json.Unmarshal([]byte(keywordsJSON), &doc.Keywords); err != nil {
			return nil, fmt.Errorf("unmarshaling keywords: %w", err)
		}
	}
	if scrapedAt.Valid {
		doc.ScrapedAt = scrapedAt.Time
	}

	return &doc, nil
}
