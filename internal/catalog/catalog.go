package catalog

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/takawasi/LightningFiler-sub000/internal/apperr"
	"github.com/takawasi/LightningFiler-sub000/internal/fs"
	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
)

//go:embed db/schema.sql
var dbFS embed.FS

// Tag is a named label together with the number of files carrying it.
type Tag struct {
	ID    int64
	Name  string
	Count int
}

// Catalog is the SQLite-backed metadata store behind tag and timeline views.
type Catalog struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the catalog at path. An empty path opens a
// private in-memory catalog.
func Open(path string) (*Catalog, error) {
	dsn := ":memory:"
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, apperr.New(apperr.KindCatalog, path, err)
		}
		dsn = path + "?_busy_timeout=5000&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, apperr.New(apperr.KindCatalog, path, err)
	}
	// One connection keeps in-memory catalogs coherent and serialises writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, apperr.New(apperr.KindCatalog, path, fmt.Errorf("enable foreign keys: %w", err))
	}

	schema, err := dbFS.ReadFile("db/schema.sql")
	if err != nil {
		db.Close()
		return nil, apperr.New(apperr.KindCatalog, path, err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		db.Close()
		return nil, apperr.New(apperr.KindCatalog, path, fmt.Errorf("initialize schema: %w", err))
	}

	return &Catalog{db: db, path: path}, nil
}

// Close releases the database handle.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Path returns the database location, empty for in-memory catalogs.
func (c *Catalog) Path() string { return c.path }

// Tag attaches name to the file at path, recording the file if the catalog
// has not seen it yet.
func (c *Catalog) Tag(path, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.New(apperr.KindCatalog, path, fmt.Errorf("empty tag name"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return apperr.FromOS(path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return apperr.FromOS(abs, err)
	}

	tx, err := c.db.Begin()
	if err != nil {
		return c.wrap(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT OR IGNORE INTO files (path, name, size, modified)
		VALUES (?, ?, ?, ?)
	`, abs, info.Name(), info.Size(), info.ModTime().Unix()); err != nil {
		return c.wrap(err)
	}
	if _, err := tx.Exec(`INSERT OR IGNORE INTO tags (name) VALUES (?)`, name); err != nil {
		return c.wrap(err)
	}
	if _, err := tx.Exec(`
		INSERT OR IGNORE INTO file_tags (file_path, tag_id)
		SELECT ?, id FROM tags WHERE name = ?
	`, abs, name); err != nil {
		return c.wrap(err)
	}
	return c.wrap(tx.Commit())
}

// Untag removes name from the file at path. Removing an absent tag is not an
// error.
func (c *Catalog) Untag(path, name string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return apperr.FromOS(path, err)
	}
	_, err = c.db.Exec(`
		DELETE FROM file_tags
		WHERE file_path = ? AND tag_id IN (SELECT id FROM tags WHERE name = ?)
	`, abs, strings.TrimSpace(name))
	return c.wrap(err)
}

// Tags lists every tag by name.
func (c *Catalog) Tags() ([]Tag, error) {
	rows, err := c.db.Query(`
		SELECT t.id, t.name, COUNT(ft.file_path)
		FROM tags t
		LEFT JOIN file_tags ft ON ft.tag_id = t.id
		GROUP BY t.id, t.name
		ORDER BY t.name
	`)
	if err != nil {
		return nil, c.wrap(err)
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Count); err != nil {
			return nil, c.wrap(err)
		}
		tags = append(tags, t)
	}
	return tags, c.wrap(rows.Err())
}

// TagIDs resolves tag names. An unknown name is reported as not found.
func (c *Catalog) TagIDs(names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var id int64
		err := c.db.QueryRow(`SELECT id FROM tags WHERE name = ?`, name).Scan(&id)
		if err == sql.ErrNoRows {
			return nil, apperr.New(apperr.KindNotFound, name, fmt.Errorf("unknown tag %q", name))
		}
		if err != nil {
			return nil, c.wrap(err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// FilesWithTags returns the files carrying every one of ids, ordered by path.
func (c *Catalog) FilesWithTags(ids []int64) ([]navigation.FileEntry, error) {
	if len(ids) == 0 {
		return []navigation.FileEntry{}, nil
	}

	unique := make(map[int64]struct{}, len(ids))
	args := make([]any, 0, len(ids)+1)
	for _, id := range ids {
		if _, dup := unique[id]; dup {
			continue
		}
		unique[id] = struct{}{}
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(args)), ",")
	args = append(args, len(unique))

	return c.queryEntries(`
		SELECT f.path, f.name, f.size, f.modified
		FROM files f
		JOIN file_tags ft ON ft.file_path = f.path
		WHERE ft.tag_id IN (`+placeholders+`)
		GROUP BY f.path
		HAVING COUNT(DISTINCT ft.tag_id) = ?
		ORDER BY f.path
	`, args...)
}

// Timeline returns files modified within [start, end], newest first.
func (c *Catalog) Timeline(start, end time.Time) ([]navigation.FileEntry, error) {
	return c.queryEntries(`
		SELECT path, name, size, modified
		FROM files
		WHERE modified BETWEEN ? AND ?
		ORDER BY modified DESC, path
	`, start.Unix(), end.Unix())
}

func (c *Catalog) queryEntries(query string, args ...any) ([]navigation.FileEntry, error) {
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, c.wrap(err)
	}
	defer rows.Close()

	entries := []navigation.FileEntry{}
	for rows.Next() {
		var (
			path, name string
			size       int64
			modified   int64
		)
		if err := rows.Scan(&path, &name, &size, &modified); err != nil {
			return nil, c.wrap(err)
		}
		entries = append(entries, navigation.NewFileEntry(path, name, false).
			WithSize(uint64(size)).
			WithModified(modified).
			WithThumbnailHash(fs.ThumbnailHash(path, uint64(size), modified)))
	}
	return entries, c.wrap(rows.Err())
}

func (c *Catalog) wrap(err error) error {
	if err == nil {
		return nil
	}
	return apperr.New(apperr.KindCatalog, c.path, err)
}
