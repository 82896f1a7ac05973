package catalog

import (
	"context"
	"database/sql"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/takawasi/LightningFiler-sub000/internal/apperr"
	"github.com/takawasi/LightningFiler-sub000/internal/archive"
	"github.com/takawasi/LightningFiler-sub000/internal/fs"
	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
)

type fileRecord struct {
	path     string
	name     string
	size     int64
	modified int64
}

// Indexable reports whether the catalog records files named like path.
func Indexable(path string) bool {
	return navigation.IsImagePath(path) || archive.IsArchive(path)
}

// Index walks root and records every image and archive below it. Files
// previously recorded under root that no longer exist are dropped. progress,
// when non-nil, receives the running count of recorded files.
func (c *Catalog) Index(ctx context.Context, root string, progress func(n int)) (int, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return 0, apperr.FromOS(root, err)
	}
	if _, err := os.Stat(root); err != nil {
		return 0, apperr.FromOS(root, err)
	}

	scan := time.Now().UnixNano()
	paths := make(chan string, 64)
	records := make(chan fileRecord, 64)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(paths)
		return filepath.WalkDir(root, func(path string, d iofs.DirEntry, walkErr error) error {
			if walkErr != nil {
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				if path == root {
					return walkErr
				}
				return nil
			}
			if path != root && fs.IsHidden(path, d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !Indexable(d.Name()) {
				return nil
			}
			select {
			case paths <- path:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})

	var stat errgroup.Group
	for i := 0; i < max(2, runtime.NumCPU()); i++ {
		stat.Go(func() error {
			for path := range paths {
				info, err := os.Stat(path)
				if err != nil || info.IsDir() {
					continue
				}
				rec := fileRecord{
					path:     path,
					name:     info.Name(),
					size:     info.Size(),
					modified: info.ModTime().Unix(),
				}
				select {
				case records <- rec:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		err := stat.Wait()
		close(records)
		return err
	})

	count := 0
	g.Go(func() error {
		tx, err := c.db.BeginTx(gctx, nil)
		if err != nil {
			return c.wrap(err)
		}
		defer tx.Rollback()

		upsert, err := tx.PrepareContext(gctx, `
			INSERT INTO files (path, name, size, modified, scan)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET
				name = excluded.name,
				size = excluded.size,
				modified = excluded.modified,
				scan = excluded.scan
		`)
		if err != nil {
			return c.wrap(err)
		}
		defer upsert.Close()

		for rec := range records {
			if _, err := upsert.ExecContext(gctx, rec.path, rec.name, rec.size, rec.modified, scan); err != nil {
				return c.wrap(err)
			}
			count++
			if progress != nil {
				progress(count)
			}
		}

		prefix := root + string(filepath.Separator)
		if err := pruneMissing(gctx, tx, scan, prefix); err != nil {
			return c.wrap(err)
		}
		return c.wrap(tx.Commit())
	})

	if err := g.Wait(); err != nil {
		return count, err
	}
	return count, nil
}

// pruneMissing drops records under prefix that the current scan did not
// touch and whose files are gone. Tagged files outside the indexable set
// survive as long as they exist.
func pruneMissing(ctx context.Context, tx *sql.Tx, scan int64, prefix string) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT path FROM files
		WHERE scan <> ? AND substr(path, 1, ?) = ?
	`, scan, utf8.RuneCountInString(prefix), prefix)
	if err != nil {
		return err
	}
	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return err
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, iofs.ErrNotExist) {
			stale = append(stale, path)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, path := range stale {
		if _, err := tx.ExecContext(ctx, `DELETE FROM files WHERE path = ?`, path); err != nil {
			return err
		}
	}
	return nil
}
