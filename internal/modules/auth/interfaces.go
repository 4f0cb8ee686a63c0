package auth

import (
	"context"

	"gorm.io/gorm"

	"timehair/internal/database"
	"timehair/internal/domain"
	"timehair/internal/pkg/jwt"
	"timehair/internal/repository"
)

// UserRepositoryInterface lists only the methods the auth service uses.
type UserRepositoryInterface interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type tokenService interface {
	GenerateToken(userID, username string) (string, error)
	ValidateToken(token string) (*jwt.Claims, error)
}

// storeUsers reads users through the store lock.
type storeUsers struct {
	store *database.Store
}

func NewStoreUsers(store *database.Store) UserRepositoryInterface {
	return &storeUsers{store: store}
}

func (s *storeUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u *domain.User
	err := s.store.Do(ctx, func(db *gorm.DB) error {
		var err error
		u, err = repository.NewUserRepository(db).GetByUsername(ctx, username)
		return err
	})
	return u, err
}

func (s *storeUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u *domain.User
	err := s.store.Do(ctx, func(db *gorm.DB) error {
		var err error
		u, err = repository.NewUserRepository(db).GetByID(ctx, id)
		return err
	})
	return u, err
}
