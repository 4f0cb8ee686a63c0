package member

import (
	"context"
	"fmt"
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

func (s *Service) List(ctx context.Context, search string) ([]domain.Member, error) {
	var out []domain.Member
	err := s.store.Do(ctx, func(db *gorm.DB) error {
		var err error
		out, err = repository.NewMemberRepository(db).List(ctx, utils.NormalizeText(search))
		return err
	})
	return out, err
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Member, error) {
	var out *domain.Member
	err := s.store.Do(ctx, func(db *gorm.DB) error {
		var err error
		out, err = repository.NewMemberRepository(db).GetByID(ctx, id)
		return err
	})
	return out, err
}

func (s *Service) GetByPhone(ctx context.Context, phone string) (*domain.Member, error) {
	phone = utils.NormalizeText(phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", domain.ErrValidation)
	}

	var out *domain.Member
	err := s.store.Do(ctx, func(db *gorm.DB) error {
		var err error
		out, err = repository.NewMemberRepository(db).GetByPhone(ctx, phone)
		return err
	})
	return out, err
}

func (s *Service) Create(ctx context.Context, req MemberRequest) (*domain.Member, error) {
	req = normalize(req)
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	now := time.Now()
	m := &domain.Member{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.store.Tx(ctx, func(tx *gorm.DB) error {
		repo := repository.NewMemberRepository(tx)
		if err := ensurePhoneFree(ctx, repo, req.Phone, ""); err != nil {
			return err
		}
		return duplicateAware(repo.Create(ctx, m))
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, id string, req MemberRequest) (*domain.Member, error) {
	req = normalize(req)
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	var out *domain.Member
	err := s.store.Tx(ctx, func(tx *gorm.DB) error {
		repo := repository.NewMemberRepository(tx)
		if _, err := repo.GetByID(ctx, id); err != nil {
			return err
		}
		if err := ensurePhoneFree(ctx, repo, req.Phone, id); err != nil {
			return err
		}
		if err := duplicateAware(repo.Update(ctx, id, req.Name, req.Phone, time.Now())); err != nil {
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
		return repository.NewMemberRepository(db).SoftDelete(ctx, id, time.Now())
	})
}

func (s *Service) AddStamp(ctx context.Context, id string) (*domain.Member, error) {
	return s.mutate(ctx, id, func(repo *repository.MemberRepository) error {
		return repo.AddStamp(ctx, id, time.Now())
	})
}

func (s *Service) ResetStamps(ctx context.Context, id string) (*domain.Member, error) {
	return s.mutate(ctx, id, func(repo *repository.MemberRepository) error {
		return repo.ResetStamps(ctx, id, time.Now())
	})
}

func (s *Service) mutate(ctx context.Context, id string, fn func(repo *repository.MemberRepository) error) (*domain.Member, error) {
	var out *domain.Member
	err := s.store.Tx(ctx, func(tx *gorm.DB) error {
		repo := repository.NewMemberRepository(tx)
		if err := fn(repo); err != nil {
			return err
		}
		var err error
		out, err = repo.GetByID(ctx, id)
		return err
	})
	return out, err
}

func normalize(req MemberRequest) MemberRequest {
	req.Name = utils.NormalizeText(req.Name)
	req.Phone = utils.NormalizeText(req.Phone)
	return req
}

func ensurePhoneFree(ctx context.Context, repo *repository.MemberRepository, phone, exceptID string) error {
	taken, err := repo.PhoneTaken(ctx, phone, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicatePhone
	}
	return nil
}

func duplicateAware(err error) error {
	if repository.IsUniqueViolation(err) {
		return ErrDuplicatePhone
	}
	return err
}
