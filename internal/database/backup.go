package database

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"timehair/internal/domain"
)

var sqliteHeader = []byte("SQLite format 3\x00")

// Path returns the absolute location of the SQLite database file.
func (s *Store) Path() (string, error) {
	return sqliteFilePath(s.dsn)
}

func sqliteFilePath(dsn string) (string, error) {
	if IsPostgresDSN(dsn) {
		return "", fmt.Errorf("%w: storage path is not supported for postgres", domain.ErrValidation)
	}

	p := dsn
	if strings.HasPrefix(p, "file:") {
		p = strings.TrimPrefix(p, "file:")
		if i := strings.IndexByte(p, '?'); i >= 0 {
			query, _ := url.ParseQuery(p[i+1:])
			if query.Get("mode") == "memory" {
				return "", fmt.Errorf("%w: in-memory storage has no path", domain.ErrValidation)
			}
			p = p[:i]
		}
	}
	if p == "" || p == ":memory:" {
		return "", fmt.Errorf("%w: in-memory storage has no path", domain.ErrValidation)
	}
	return filepath.Abs(p)
}

// Backup writes a consistent snapshot of the database to dst.
func (s *Store) Backup(ctx context.Context, dst string) error {
	if IsPostgresDSN(s.dsn) {
		return fmt.Errorf("%w: backup is not supported for postgres", domain.ErrValidation)
	}
	dst, err := filepath.Abs(strings.TrimSpace(dst))
	if err != nil {
		return fmt.Errorf("%w: backup path: %v", domain.ErrValidation, err)
	}
	if current, err := s.Path(); err == nil && current == dst {
		return fmt.Errorf("%w: backup path is the live database", domain.ErrValidation)
	}

	return s.Do(ctx, func(db *gorm.DB) error {
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("%w: backup dir: %w", domain.ErrStorage, err)
		}
		// VACUUM INTO refuses to overwrite an existing file
		if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("%w: replace backup: %w", domain.ErrStorage, err)
		}
		if err := db.Exec("VACUUM INTO ?", dst).Error; err != nil {
			return fmt.Errorf("%w: backup: %w", domain.ErrStorage, err)
		}
		log.Printf("storage_backup path=%s", dst)
		return nil
	})
}

// Restore replaces the live database with the SQLite file at src and
// reopens the connection. The candidate is copied and verified beside the
// live file first; if the swap fails the original files are put back and
// the store keeps serving them.
func (s *Store) Restore(ctx context.Context, src string) error {
	target, err := s.Path()
	if err != nil {
		return err
	}
	src, err = filepath.Abs(strings.TrimSpace(src))
	if err != nil {
		return fmt.Errorf("%w: restore path: %v", domain.ErrValidation, err)
	}
	if src == target {
		return fmt.Errorf("%w: restore source is the live database", domain.ErrValidation)
	}
	if err := checkSQLiteFile(src); err != nil {
		return err
	}

	staging, err := s.stage(src, target)
	if err != nil {
		return err
	}
	defer removeWithSidecars(staging)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		s.db = nil
	}

	aside := target + ".prev"
	removeWithSidecars(aside)
	if err := moveWithSidecars(target, aside); err != nil {
		return s.rollbackRestore(target, aside, fmt.Errorf("%w: move live database aside: %w", domain.ErrStorage, err))
	}
	if err := os.Rename(staging, target); err != nil {
		return s.rollbackRestore(target, aside, fmt.Errorf("%w: restore swap: %w", domain.ErrStorage, err))
	}

	db, err := openMigrated(s.dsn, s.logLevel)
	if err != nil {
		return s.rollbackRestore(target, aside, fmt.Errorf("%w: reopen after restore: %w", domain.ErrStorage, err))
	}
	s.db = db
	removeWithSidecars(aside)
	log.Printf("storage_restore source=%s target=%s", src, target)
	return nil
}

// stage copies src next to target and checks that the copy opens, passes
// the integrity check and migrates. The live database is not touched.
func (s *Store) stage(src, target string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".restore-*")
	if err != nil {
		return "", fmt.Errorf("%w: restore staging: %w", domain.ErrStorage, err)
	}
	staging := f.Name()
	_ = f.Close()

	if err := copyFile(src, staging); err != nil {
		removeWithSidecars(staging)
		return "", fmt.Errorf("%w: restore copy: %w", domain.ErrStorage, err)
	}
	if err := verifySQLite(staging, s.logLevel); err != nil {
		removeWithSidecars(staging)
		return "", fmt.Errorf("%w: %s is not a usable SQLite database: %v", domain.ErrValidation, src, err)
	}
	return staging, nil
}

// rollbackRestore puts the files moved aside back in place and reopens them.
// Called with the lock held and s.db closed.
func (s *Store) rollbackRestore(target, aside string, cause error) error {
	if _, err := os.Stat(aside); err == nil {
		removeWithSidecars(target)
		if err := moveWithSidecars(aside, target); err != nil {
			log.Printf("storage_restore_rollback_failed target=%s err=%v", target, err)
			return cause
		}
	}

	db, err := openMigrated(s.dsn, s.logLevel)
	if err != nil {
		log.Printf("storage_restore_reopen_failed target=%s err=%v", target, err)
		return cause
	}
	s.db = db
	log.Printf("storage_restore_rolled_back target=%s err=%v", target, cause)
	return cause
}

func verifySQLite(path, logLevel string) error {
	db, err := openMigrated(path, logLevel)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var result string
	if err := db.Raw("PRAGMA integrity_check").Row().Scan(&result); err != nil {
		return err
	}
	if result != "ok" {
		return fmt.Errorf("integrity check: %s", result)
	}
	return nil
}

var sidecarSuffixes = []string{"-journal", "-wal", "-shm"}

// moveWithSidecars renames the database file and any journal files next to
// it. The main file must exist; sidecars are optional.
func moveWithSidecars(from, to string) error {
	if err := os.Rename(from, to); err != nil {
		return err
	}
	for _, suffix := range sidecarSuffixes {
		if err := os.Rename(from+suffix, to+suffix); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func removeWithSidecars(path string) {
	_ = os.Remove(path)
	for _, suffix := range sidecarSuffixes {
		_ = os.Remove(path + suffix)
	}
}

func checkSQLiteFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: restore source: %v", domain.ErrValidation, err)
	}
	defer f.Close()

	header := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, header); err != nil || !bytes.Equal(header, sqliteHeader) {
		return fmt.Errorf("%w: %s is not a SQLite database", domain.ErrValidation, path)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
