package pyrt

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"
)

// Store keeps the /persist tree in a SQLite database between sessions.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// OpenStore opens or creates the store at dbPath.
func OpenStore(dbPath string, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, logger: logger}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS files (
		path TEXT PRIMARY KEY,
		is_dir INTEGER NOT NULL,
		data BLOB,
		mtime INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save replaces the stored tree with the contents of dir.
func (s *Store) Save(ctx context.Context, dir string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM files`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO files (path, is_dir, data, mtime) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	count := 0
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == dir {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		var data []byte
		isDir := 0
		if d.IsDir() {
			isDir = 1
		} else if data, err = os.ReadFile(p); err != nil {
			return err
		}
		count++
		_, err = stmt.ExecContext(ctx, filepath.ToSlash(rel), isDir, data, info.ModTime().UnixMilli())
		return err
	})
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Debug("store saved", "entries", count)
	return nil
}

// Load recreates dir from the stored tree, discarding whatever dir held.
func (s *Store) Load(ctx context.Context, dir string) error {
	rows, err := s.db.QueryContext(ctx, `SELECT path, is_dir, data, mtime FROM files ORDER BY path`)
	if err != nil {
		return err
	}
	defer rows.Close()

	if err := clearDir(dir); err != nil {
		return err
	}
	count := 0
	for rows.Next() {
		var (
			rel   string
			isDir bool
			data  []byte
			mtime int64
		)
		if err := rows.Scan(&rel, &isDir, &data, &mtime); err != nil {
			return err
		}
		host := filepath.Join(dir, filepath.FromSlash(rel))
		if isDir {
			err = os.MkdirAll(host, 0o755)
		} else {
			if err = os.MkdirAll(filepath.Dir(host), 0o755); err == nil {
				err = os.WriteFile(host, data, 0o644)
			}
		}
		if err != nil {
			return err
		}
		t := time.UnixMilli(mtime)
		_ = os.Chtimes(host, t, t)
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	s.logger.Debug("store loaded", "entries", count)
	return nil
}

// Empty reports whether nothing has been saved yet.
func (s *Store) Empty(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

// Wipe deletes every stored entry.
func (s *Store) Wipe(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM files`)
	return err
}
