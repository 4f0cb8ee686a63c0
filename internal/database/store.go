package database

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"timehair/internal/domain"
)

// Store is the single writer in front of the database. Every read and write
// goes through Do or Tx, so all operations observe one total order.
type Store struct {
	mu       sync.Mutex
	db       *gorm.DB
	dsn      string
	logLevel string
}

// Open connects, limits the pool to one connection and migrates the schema.
func Open(dsn, logLevel string) (*Store, error) {
	db, err := openMigrated(dsn, logLevel)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, dsn: dsn, logLevel: logLevel}, nil
}

func openMigrated(dsn, logLevel string) (*gorm.DB, error) {
	db, err := Connect(dsn, logLevel)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Do runs fn with the store lock held.
func (s *Store) Do(ctx context.Context, fn func(db *gorm.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db == nil {
		return fmt.Errorf("%w: store is closed", domain.ErrStorage)
	}
	return fn(s.db.WithContext(ctx))
}

// Tx runs fn inside one transaction with the store lock held. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Tx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.Do(ctx, func(db *gorm.DB) error {
		return db.Transaction(fn)
	})
}

func (s *Store) DSN() string {
	return s.dsn
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.db = nil
	return sqlDB.Close()
}
