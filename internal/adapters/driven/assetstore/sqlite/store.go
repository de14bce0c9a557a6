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

	"github.com/custodia-labs/scenekit/internal/adapters/driven/assetstore/sqlite/migrations"
	"github.com/custodia-labs/scenekit/internal/core/domain"
	"github.com/custodia-labs/scenekit/internal/core/ports/driven"
)

// Ensure Store implements the port.
var _ driven.AssetStore = (*Store)(nil)

// assetColumns is the canonical column list for asset scans.
const assetColumns = `id, url, name, description, asset_type, category,
	keywords, priority, is_default, mime_type, entity_type, entity_name`

// Store is the SQLite-backed asset repository.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite asset store at the specified data
// directory. If dataDir is empty, defaults to ~/.scenekit/data/assets.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".scenekit", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "assets.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
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
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
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

// Save stores or updates an asset.
func (s *Store) Save(ctx context.Context, asset domain.BrandAsset) error {
	if asset.ID == "" {
		return domain.ErrInvalidInput
	}

	keywordsJSON, err := json.Marshal(asset.Keywords)
	if err != nil {
		return fmt.Errorf("marshalling keywords: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assets
			(id, url, name, description, asset_type, category, keywords,
			 priority, is_default, mime_type, entity_type, entity_name,
			 active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			url = excluded.url,
			name = excluded.name,
			description = excluded.description,
			asset_type = excluded.asset_type,
			category = excluded.category,
			keywords = excluded.keywords,
			priority = excluded.priority,
			is_default = excluded.is_default,
			mime_type = excluded.mime_type,
			entity_type = excluded.entity_type,
			entity_name = excluded.entity_name,
			updated_at = excluded.updated_at
	`, asset.ID, asset.URL, asset.Name, asset.Description, asset.AssetType,
		string(asset.Category), string(keywordsJSON), asset.Priority,
		boolToInt(asset.IsDefault), asset.MimeType, asset.EntityType,
		asset.EntityName, now, now)

	if err != nil {
		return fmt.Errorf("saving asset: %w", err)
	}
	return nil
}

// Get retrieves an asset by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.BrandAsset, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+assetColumns+" FROM assets WHERE id = ?", id)

	asset, err := scanAsset(row)
	if err != nil {
		return nil, err
	}
	return asset, nil
}

// Delete removes an asset.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM assets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting asset: %w", err)
	}
	return nil
}

// Deactivate marks an asset inactive without removing its record.
func (s *Store) Deactivate(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE assets SET active = 0, updated_at = ? WHERE id = ?",
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("deactivating asset: %w", err)
	}
	return nil
}

// List returns all assets, in insertion order.
func (s *Store) List(ctx context.Context) ([]domain.BrandAsset, error) {
	return s.query(ctx, "SELECT "+assetColumns+" FROM assets ORDER BY rowid", nil)
}

// QueryAssets returns assets matching the filter. An empty filter
// matches everything. The filter legs combine with OR so assets with
// incomplete metadata still arrive via the category or keyword legs.
func (s *Store) QueryAssets(ctx context.Context, filter driven.AssetFilter) ([]domain.BrandAsset, error) {
	var where []string
	var args []any

	if !filter.Empty() {
		var legs []string
		if len(filter.Types) > 0 {
			placeholders := strings.Repeat("?,", len(filter.Types))
			legs = append(legs, "asset_type IN ("+placeholders[:len(placeholders)-1]+")")
			for _, t := range filter.Types {
				args = append(args, t)
			}
		}
		if filter.Category != "" {
			legs = append(legs, "category = ?")
			args = append(args, string(filter.Category))
		}
		for _, kw := range filter.KeywordsAny {
			// Keywords are a JSON array; an exact member always appears
			// quoted.
			legs = append(legs, `keywords LIKE ? ESCAPE '\'`)
			args = append(args, `%"`+escapeLike(kw)+`"%`)
		}
		where = append(where, "("+strings.Join(legs, " OR ")+")")
	}
	if filter.ActiveOnly {
		where = append(where, "active = 1")
	}

	query := "SELECT " + assetColumns + " FROM assets"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY rowid"

	return s.query(ctx, query, args)
}

func (s *Store) query(ctx context.Context, query string, args []any) ([]domain.BrandAsset, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying assets: %w", err)
	}
	defer rows.Close()

	var assets []domain.BrandAsset //nolint:prealloc // size unknown from query
	for rows.Next() {
		asset, err := scanAssetRows(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *asset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assets: %w", err)
	}
	return assets, nil
}

// scanAsset scans a single asset row.
func scanAsset(row *sql.Row) (*domain.BrandAsset, error) {
	var asset domain.BrandAsset
	var category, keywordsJSON string
	var isDefault int

	if err := row.Scan(&asset.ID, &asset.URL, &asset.Name, &asset.Description,
		&asset.AssetType, &category, &keywordsJSON, &asset.Priority,
		&isDefault, &asset.MimeType, &asset.EntityType, &asset.EntityName); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning asset: %w", err)
	}

	return finishAsset(asset, category, keywordsJSON, isDefault)
}

// scanAssetRows scans an asset from *sql.Rows.
func scanAssetRows(rows *sql.Rows) (*domain.BrandAsset, error) {
	var asset domain.BrandAsset
	var category, keywordsJSON string
	var isDefault int

	if err := rows.Scan(&asset.ID, &asset.URL, &asset.Name, &asset.Description,
		&asset.AssetType, &category, &keywordsJSON, &asset.Priority,
		&isDefault, &asset.MimeType, &asset.EntityType, &asset.EntityName); err != nil {
		return nil, fmt.Errorf("scanning asset: %w", err)
	}

	return finishAsset(asset, category, keywordsJSON, isDefault)
}

func finishAsset(asset domain.BrandAsset, category, keywordsJSON string, isDefault int) (*domain.BrandAsset, error) {
	asset.Category = domain.AssetCategory(category)
	asset.IsDefault = isDefault != 0
	if keywordsJSON != "" {
		if err := json.Unmarshal([]byte(keywordsJSON), &asset.Keywords); err != nil {
			return nil, fmt.Errorf("unmarshaling keywords: %w", err)
		}
	}
	return &asset, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
