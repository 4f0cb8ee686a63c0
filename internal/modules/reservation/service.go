package reservation

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
	now   func() time.Time
}

func NewService(store *database.Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Reservation, error) {
	f := repository.ReservationFilter{
		Date:  q.Date,
		All:   q.All,
		Today: repository.LocalDate(s.now()),
	}
	if q.Status != "" {
		status, err := ParseStatus(q.Status)
		if err != nil {
			return nil, err
		}
		f.Status = &status
	}
	if q.Date != "" {
		if _, err := time.Parse(repository.DateLayout, q.Date); err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
		}
	}

	var out []domain.Reservation
	err := s.store.Do(ctx, func(db *gorm.DB) error {
		var err error
		out, err = repository.NewReservationRepository(db).List(ctx, f)
		return err
	})
	return out, err
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	var out *domain.Reservation
	err := s.store.Do(ctx, func(db *gorm.DB) error {
		var err error
		out, err = repository.NewReservationRepository(db).GetByID(ctx, id)
		return err
	})
	return out, err
}

// Create books a reservation; it always starts out scheduled.
func (s *Service) Create(ctx context.Context, req ReservationRequest) (*domain.Reservation, error) {
	if err := check(req); err != nil {
		return nil, err
	}

	now := s.now()
	res := &domain.Reservation{
		ID:        uuid.NewString(),
		Status:    domain.ReservationScheduled,
		CreatedAt: now,
	}

	err := s.store.Tx(ctx, func(tx *gorm.DB) error {
		if err := fill(ctx, tx, res, req, now); err != nil {
			return err
		}
		return repository.NewReservationRepository(tx).Create(ctx, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Update replaces every editable field and the service list. Status is
// changed only through UpdateStatus.
func (s *Service) Update(ctx context.Context, id string, req ReservationRequest) (*domain.Reservation, error) {
	if err := check(req); err != nil {
		return nil, err
	}

	var out *domain.Reservation
	err := s.store.Tx(ctx, func(tx *gorm.DB) error {
		repo := repository.NewReservationRepository(tx)
		res, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fill(ctx, tx, res, req, s.now()); err != nil {
			return err
		}
		if err := repo.Update(ctx, res); err != nil {
			return err
		}
		out, err = repo.GetByID(ctx, id)
		return err
	})
	return out, err
}

// UpdateStatus writes any status; transitions are not restricted.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	var out *domain.Reservation
	err := s.store.Tx(ctx, func(tx *gorm.DB) error {
		repo := repository.NewReservationRepository(tx)
		if err := repo.SetStatus(ctx, id, status, s.now()); err != nil {
			return err
		}
		var err error
		out, err = repo.GetByID(ctx, id)
		return err
	})
	return out, err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Tx(ctx, func(tx *gorm.DB) error {
		return repository.NewReservationRepository(tx).SoftDelete(ctx, id, s.now())
	})
}

func ParseStatus(v string) (domain.ReservationStatus, error) {
	status, ok := domain.ParseReservationStatus(v)
	if !ok {
		return status, fmt.Errorf("%w: unknown reservation status %q", domain.ErrValidation, v)
	}
	return status, nil
}

func check(req ReservationRequest) error {
	if err := validator.Check(req); err != nil {
		return err
	}
	if req.ReservedAt.IsZero() {
		return fmt.Errorf("%w: reservedAt is required", domain.ErrValidation)
	}
	return nil
}

func fill(ctx context.Context, tx *gorm.DB, res *domain.Reservation, req ReservationRequest, now time.Time) error {
	memberID := utils.NormalizePtr(req.MemberID)
	member, memberName, err := repository.ResolveMember(ctx, tx, memberID, utils.NormalizeText(req.MemberName))
	if err != nil {
		return err
	}
	staffName, err := repository.ResolveStaffName(ctx, tx, req.StaffID, utils.NormalizeText(req.StaffName))
	if err != nil {
		return err
	}

	phone := utils.NormalizePtr(req.MemberPhone)
	if phone == nil && member != nil {
		p := member.Phone
		phone = &p
	}

	total := domain.TotalOf(req.Services)
	if req.TotalPrice != nil {
		total = *req.TotalPrice
	}

	services := make([]domain.SelectedService, len(req.Services))
	for i, svc := range req.Services {
		svc.Name = utils.NormalizeText(svc.Name)
		services[i] = svc
	}

	res.MemberID = memberID
	res.MemberName = memberName
	res.MemberPhone = phone
	res.SeatID = req.SeatID
	res.StaffID = req.StaffID
	res.StaffName = staffName
	res.Services = services
	res.TotalPrice = total
	res.ReservedAt = req.ReservedAt
	res.EstimatedDuration = req.EstimatedDuration
	res.UpdatedAt = now
	return nil
}

// StatusSync lets the seat lifecycle move a reservation along using the
// caller's database handle.
type StatusSync struct{}

func (StatusSync) SyncStatus(ctx context.Context, db *gorm.DB, id string, status domain.ReservationStatus) error {
	return repository.NewReservationRepository(db).SetStatus(ctx, id, status, time.Now())
}
