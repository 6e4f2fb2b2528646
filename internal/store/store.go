// Package store provides durable string-keyed storage for the ledger and preferences,
// plus the byte cache behind the offline asset cache.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Well-known keys.
const (
	KeyEntries       = "entries"
	KeyTheme         = "theme"
	KeyQuoteOfTheDay = "quoteOfTheDay"
)

// KV is the key-value contract the ledger, preferences and quote selector depend on.
// Load reports ok=false for a missing key.
type KV interface {
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
	Remove(key string) error
}

// Asset is one cached response body.
type Asset struct {
	Path        string
	ContentType string
	Body        []byte
}

// DB is the SQLite-backed store.
type DB struct {
	db *sql.DB
}

var _ KV = (*DB)(nil)

// Open opens or creates the database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(full)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Load returns the value stored under key.
func (d *DB) Load(key string) (string, bool, error) {
	query, args, err := sq.Select("value").From("kv").Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return "", false, err
	}

	var value string
	err = d.db.QueryRow(query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("loading %q: %w", key, err)
	}
	return value, true, nil
}

// Save stores value under key, replacing any previous value.
func (d *DB) Save(key, value string) error {
	query, args, err := sq.Insert("kv").
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC().Format(time.RFC3339)).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := d.db.Exec(query, args...); err != nil {
		return fmt.Errorf("saving %q: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (d *DB) Remove(key string) error {
	query, args, err := sq.Delete("kv").Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return err
	}
	if _, err := d.db.Exec(query, args...); err != nil {
		return fmt.Errorf("removing %q: %w", key, err)
	}
	return nil
}

// PutAssets stores a full set of assets under cacheName in one transaction.
func (d *DB) PutAssets(cacheName string, assets []Asset) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, a := range assets {
		query, args, err := sq.Insert("asset_cache").
			Columns("cache_name", "path", "content_type", "body", "stored_at").
			Values(cacheName, a.Path, a.ContentType, a.Body, now).
			Suffix("ON CONFLICT(cache_name, path) DO UPDATE SET content_type = excluded.content_type, body = excluded.body, stored_at = excluded.stored_at").
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("caching %s: %w", a.Path, err)
		}
	}

	return tx.Commit()
}

// GetAsset returns the cached asset for path under cacheName.
func (d *DB) GetAsset(cacheName, path string) (Asset, bool, error) {
	query, args, err := sq.Select("path", "content_type", "body").
		From("asset_cache").
		Where(sq.Eq{"cache_name": cacheName, "path": path}).
		ToSql()
	if err != nil {
		return Asset{}, false, err
	}

	var a Asset
	var contentType sql.NullString
	err = d.db.QueryRow(query, args...).Scan(&a.Path, &contentType, &a.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return Asset{}, false, nil
	}
	if err != nil {
		return Asset{}, false, fmt.Errorf("reading asset %s: %w", path, err)
	}
	a.ContentType = contentType.String
	return a, true, nil
}

// AssetCacheNames returns the distinct cache names present, sorted.
func (d *DB) AssetCacheNames() ([]string, error) {
	query, args, err := sq.Select("DISTINCT cache_name").From("asset_cache").OrderBy("cache_name").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DeleteAssetCache removes every asset stored under cacheName.
func (d *DB) DeleteAssetCache(cacheName string) error {
	query, args, err := sq.Delete("asset_cache").Where(sq.Eq{"cache_name": cacheName}).ToSql()
	if err != nil {
		return err
	}
	_, err = d.db.Exec(query, args...)
	return err
}

// AssetCount returns the number of assets stored under cacheName.
func (d *DB) AssetCount(cacheName string) (int, error) {
	query, args, err := sq.Select("COUNT(*)").From("asset_cache").Where(sq.Eq{"cache_name": cacheName}).ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	err = d.db.QueryRow(query, args...).Scan(&count)
	return count, err
}
