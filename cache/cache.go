package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/riadafridishibly/fsprops/scanner"
	_ "modernc.org/sqlite"
)

// ErrMiss is returned when no row exists for a path.
var ErrMiss = errors.New("cache miss")

// Entry is the outcome of one clean aggregation run over Path.
// LastModifiedAt is the newest modification time of any directory in the
// tree when it was counted.
type Entry struct {
	Path           string
	Files          int64
	Folders        int64
	Size           int64
	LastModifiedAt time.Time
	ScannedAt      time.Time
}

type Cache struct {
	db *sql.DB
}

// Bumped whenever dir_stats changes meaning; older tables are dropped.
const schemaVersion = 2

const schema = `
CREATE TABLE IF NOT EXISTS dir_stats (
    path TEXT PRIMARY KEY,
    files INTEGER NOT NULL,
    folders INTEGER NOT NULL,
    size INTEGER NOT NULL,
    last_modified_at INTEGER NOT NULL,
    scanned_at INTEGER NOT NULL
);
`

// NewCache opens the cache in the user's cache directory.
func NewCache() (*Cache, error) {
	cacheDir, err := getCacheDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get cache directory: %w", err)
	}
	return Open(filepath.Join(cacheDir, "fsprops.db"))
}

func Open(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA synchronous=NORMAL;`,
		`PRAGMA busy_timeout=5000;`,
		`PRAGMA temp_store=MEMORY;`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Cache{db: db}, nil
}

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow(`PRAGMA user_version;`).Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version == schemaVersion {
		return nil
	}
	if _, err := db.Exec(`DROP TABLE IF EXISTS dir_stats;`); err != nil {
		return fmt.Errorf("failed to drop old cache table: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf(`PRAGMA user_version = %d;`, schemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func getCacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fsprops"), nil
}

func (c *Cache) Put(entry *Entry) error {
	query := `
        INSERT INTO dir_stats (path, files, folders, size, last_modified_at, scanned_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(path) DO UPDATE SET
            files = excluded.files,
            folders = excluded.folders,
            size = excluded.size,
            last_modified_at = excluded.last_modified_at,
            scanned_at = excluded.scanned_at
    `
	_, err := c.db.Exec(query, entry.Path, entry.Files, entry.Folders, entry.Size,
		entry.LastModifiedAt.UnixNano(), entry.ScannedAt.Unix())
	return err
}

func (c *Cache) Get(path string) (*Entry, error) {
	row := c.db.QueryRow(`SELECT path, files, folders, size, last_modified_at, scanned_at
        FROM dir_stats WHERE path = ?`, path)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMiss
	}
	return entry, err
}

// Lookup returns the row for path only while stamp, taken from the tree as
// it is now, still matches the folder count and newest directory
// modification time recorded. Stale rows are deleted.
func (c *Cache) Lookup(path string, stamp scanner.Stamp) (*Entry, bool, error) {
	entry, err := c.Get(path)
	if errors.Is(err, ErrMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if entry.Folders != stamp.Folders || entry.LastModifiedAt.UnixNano() != stamp.Latest.UnixNano() {
		return nil, false, c.Delete(path)
	}
	return entry, true, nil
}

func (c *Cache) GetAll() ([]*Entry, error) {
	rows, err := c.db.Query(`SELECT path, files, folders, size, last_modified_at, scanned_at FROM dir_stats`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (c *Cache) Delete(path string) error {
	_, err := c.db.Exec("DELETE FROM dir_stats WHERE path = ?", path)
	return err
}

// DeleteTree removes path and every cached directory below it.
func (c *Cache) DeleteTree(path string) error {
	prefix := filepath.Clean(path) + string(filepath.Separator)
	_, err := c.db.Exec(`DELETE FROM dir_stats
        WHERE path = ?1 OR substr(path, 1, length(?2)) = ?2`, filepath.Clean(path), prefix)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(s rowScanner) (*Entry, error) {
	var entry Entry
	var lastModNano, scannedUnix int64
	if err := s.Scan(&entry.Path, &entry.Files, &entry.Folders, &entry.Size, &lastModNano, &scannedUnix); err != nil {
		return nil, err
	}
	entry.LastModifiedAt = time.Unix(0, lastModNano)
	entry.ScannedAt = time.Unix(scannedUnix, 0)
	return &entry, nil
}
