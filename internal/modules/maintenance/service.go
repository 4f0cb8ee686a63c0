package maintenance

import (
	"context"
	"fmt"
	"strings"

	"timehair/internal/database"
	"timehair/internal/domain"
)

type Service struct {
	store *database.Store
}

func NewService(store *database.Store) *Service {
	return &Service{store: store}
}

// Backup writes a snapshot of the live database to path.
func (s *Service) Backup(ctx context.Context, path string) (*StorageInfo, error) {
	path, err := cleanPath(path)
	if err != nil {
		return nil, err
	}
	if err := s.store.Backup(ctx, path); err != nil {
		return nil, err
	}
	return &StorageInfo{Path: path}, nil
}

// Restore replaces the live database with the file at path.
func (s *Service) Restore(ctx context.Context, path string) (*StorageInfo, error) {
	path, err := cleanPath(path)
	if err != nil {
		return nil, err
	}
	if err := s.store.Restore(ctx, path); err != nil {
		return nil, err
	}
	return s.StoragePath()
}

func (s *Service) StoragePath() (*StorageInfo, error) {
	path, err := s.store.Path()
	if err != nil {
		return nil, err
	}
	return &StorageInfo{Path: path}, nil
}

func cleanPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("%w: path is required", domain.ErrValidation)
	}
	return path, nil
}
