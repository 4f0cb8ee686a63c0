package staff

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"timehair/internal/database"
	"timehair/internal/domain"
	"timehair/internal/pkg/utils"
	"timehair/internal/pkg/validator"
	"timehair/internal/repository"
)

type Service struct {
	store *database.Store
}

func NewService(store *database.Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]domain.Staff, error) {
	var out []domain.Staff
	err := s.store.Do(ctx, func(db *gorm.DB) error {
		var err error
		out, err = repository.NewStaffRepository(db).List(ctx)
		return err
	})
	return out, err
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Staff, error) {
	var out *domain.Staff
	err := s.store.Do(ctx, func(db *gorm.DB) error {
		var err error
		out, err = repository.NewStaffRepository(db).GetByID(ctx, id)
		return err
	})
	return out, err
}

func (s *Service) Create(ctx context.Context, req StaffRequest) (*domain.Staff, error) {
	req.Name = utils.NormalizeText(req.Name)
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	now := time.Now()
	st := &domain.Staff{ID: uuid.NewString(), Name: req.Name, CreatedAt: now, UpdatedAt: now}
	err := s.store.Do(ctx, func(db *gorm.DB) error {
		return repository.NewStaffRepository(db).Create(ctx, st)
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) Update(ctx context.Context, id string, req StaffRequest) (*domain.Staff, error) {
	req.Name = utils.NormalizeText(req.Name)
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	var out *domain.Staff
	err := s.store.Tx(ctx, func(tx *gorm.DB) error {
		repo := repository.NewStaffRepository(tx)
		if err := repo.Update(ctx, id, req.Name, time.Now()); err != nil {
			return err
		}
		var err error
		out, err = repo.GetByID(ctx, id)
		return err
	})
	return out, err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Do(ctx, func(db *gorm.DB) error {
		return repository.NewStaffRepository(db).SoftDelete(ctx, id, time.Now())
	})
}
