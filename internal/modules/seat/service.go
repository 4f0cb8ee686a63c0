package seat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"timehair/internal/database"
	"timehair/internal/domain"
	"timehair/internal/pkg/utils"
	"timehair/internal/pkg/validator"
	"timehair/internal/repository"
)

// Service owns the seat/session lifecycle. Every operation runs under the
// store lock; the primary writes of a transition share one transaction and
// the follow-up updates run after commit, still under the lock.
type Service struct {
	store        *database.Store
	ledger       LedgerRecorder
	reservations ReservationSync
	stamps       StampAwarder
	notifier     Notifier
	now          func() time.Time
}

func NewService(
	store *database.Store,
	ledger LedgerRecorder,
	reservations ReservationSync,
	stamps StampAwarder,
	notifier Notifier,
) *Service {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Service{
		store:        store,
		ledger:       ledger,
		reservations: reservations,
		stamps:       stamps,
		notifier:     notifier,
		now:          time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Seat, error) {
	var out []domain.Seat
	err := s.store.Do(ctx, func(db *gorm.DB) error {
		var err error
		out, err = repository.NewSeatRepository(db).List(ctx)
		return err
	})
	return out, err
}

func (s *Service) Get(ctx context.Context, id int) (*domain.Seat, error) {
	var out *domain.Seat
	err := s.store.Do(ctx, func(db *gorm.DB) error {
		var err error
		out, err = repository.NewSeatRepository(db).GetByID(ctx, id)
		return err
	})
	return out, err
}

// StartService opens a session on an available or reserved seat.
func (s *Service) StartService(ctx context.Context, seatID int, req StartRequest) (*domain.Seat, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	now := s.now()

	var seat *domain.Seat
	err := s.store.Do(ctx, func(db *gorm.DB) error {
		err := db.Transaction(func(tx *gorm.DB) error {
			seats := repository.NewSeatRepository(tx)
			sessions := repository.NewSessionRepository(tx)

			current, err := seats.GetByID(ctx, seatID)
			if err != nil {
				return err
			}
			if current.Status != domain.SeatAvailable && current.Status != domain.SeatReserved {
				return ErrSeatOccupied
			}
			occupied, err := sessions.ExistsForSeat(ctx, seatID)
			if err != nil {
				return err
			}
			if occupied {
				return ErrSeatOccupied
			}

			session, err := s.newSession(ctx, tx, seatID, req, now)
			if err != nil {
				return err
			}
			if err := sessions.Create(ctx, session); err != nil {
				return err
			}
			return seats.SetStatus(ctx, seatID, domain.SeatInUse, now)
		})
		if err != nil {
			return err
		}

		if req.ReservationID != nil && *req.ReservationID != "" {
			s.syncReservation(ctx, db, seatID, *req.ReservationID, domain.ReservationInProgress)
		}

		seat, err = repository.NewSeatRepository(db).GetByID(ctx, seatID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(domain.EventServiceStarted, seatID, domain.SeatInUse, now)
	return seat, nil
}

func (s *Service) newSession(ctx context.Context, tx *gorm.DB, seatID int, req StartRequest, now time.Time) (*domain.ServiceSession, error) {
	memberID := utils.NormalizePtr(req.MemberID)
	_, memberName, err := repository.ResolveMember(ctx, tx, memberID, utils.NormalizeText(req.MemberName))
	if err != nil {
		return nil, err
	}
	staffName, err := repository.ResolveStaffName(ctx, tx, req.StaffID, utils.NormalizeText(req.StaffName))
	if err != nil {
		return nil, err
	}

	services := make([]domain.SelectedService, len(req.Services))
	for i, svc := range req.Services {
		svc.Name = utils.NormalizeText(svc.Name)
		services[i] = svc
	}
	total := domain.TotalOf(services)
	if req.TotalPrice != nil {
		total = *req.TotalPrice
	}

	return &domain.ServiceSession{
		ID:            uuid.NewString(),
		SeatID:        seatID,
		MemberID:      memberID,
		MemberName:    memberName,
		StaffID:       req.StaffID,
		StaffName:     staffName,
		Services:      services,
		TotalPrice:    total,
		StartTime:     now,
		ReservationID: utils.NormalizePtr(req.ReservationID),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// CompleteService closes the seat's session. The ledger entry, the session
// removal and the seat release commit together or not at all; the stamp
// and reservation updates that follow are best-effort and reported as
// warnings.
func (s *Service) CompleteService(ctx context.Context, seatID int) (*CompletionResult, error) {
	now := s.now()
	result := &CompletionResult{Warnings: []string{}}

	err := s.store.Do(ctx, func(db *gorm.DB) error {
		var session *domain.ServiceSession
		err := db.Transaction(func(tx *gorm.DB) error {
			var err error
			session, err = activeSession(ctx, tx, seatID)
			if err != nil {
				return err
			}
			result.Entry, err = s.ledger.Record(ctx, tx, session, now)
			if err != nil {
				return err
			}
			if err := repository.NewSessionRepository(tx).Delete(ctx, session.ID); err != nil {
				return err
			}
			return repository.NewSeatRepository(tx).SetStatus(ctx, seatID, domain.SeatAvailable, now)
		})
		if err != nil {
			result.Entry = nil
			return err
		}

		if session.MemberID != nil {
			if err := s.stamps.AwardStamp(ctx, db, *session.MemberID); err != nil {
				log.Printf("seat_complete_stamp_failed seat_id=%d member_id=%s err=%v", seatID, *session.MemberID, err)
				result.Warnings = append(result.Warnings, fmt.Sprintf("stamp not awarded: %v", err))
			}
		}
		if session.ReservationID != nil {
			if err := s.syncReservation(ctx, db, seatID, *session.ReservationID, domain.ReservationCompleted); err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("reservation not marked completed: %v", err))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(domain.EventServiceCompleted, seatID, domain.SeatAvailable, now)
	return result, nil
}

// CancelService drops the seat's session without a ledger entry.
func (s *Service) CancelService(ctx context.Context, seatID int) (*domain.Seat, error) {
	now := s.now()

	var seat *domain.Seat
	err := s.store.Do(ctx, func(db *gorm.DB) error {
		var session *domain.ServiceSession
		err := db.Transaction(func(tx *gorm.DB) error {
			var err error
			session, err = activeSession(ctx, tx, seatID)
			if err != nil {
				return err
			}
			if err := repository.NewSessionRepository(tx).Delete(ctx, session.ID); err != nil {
				return err
			}
			return repository.NewSeatRepository(tx).SetStatus(ctx, seatID, domain.SeatAvailable, now)
		})
		if err != nil {
			return err
		}

		if session.ReservationID != nil {
			s.syncReservation(ctx, db, seatID, *session.ReservationID, domain.ReservationScheduled)
		}

		seat, err = repository.NewSeatRepository(db).GetByID(ctx, seatID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(domain.EventServiceCancelled, seatID, domain.SeatAvailable, now)
	return seat, nil
}

// HoldSeat toggles a free seat between available and reserved.
func (s *Service) HoldSeat(ctx context.Context, seatID int, status domain.SeatStatus) (*domain.Seat, error) {
	if status != domain.SeatAvailable && status != domain.SeatReserved {
		return nil, fmt.Errorf("%w: seat status can only be set to available or reserved", domain.ErrValidation)
	}
	now := s.now()

	var seat *domain.Seat
	err := s.store.Tx(ctx, func(tx *gorm.DB) error {
		seats := repository.NewSeatRepository(tx)
		current, err := seats.GetByID(ctx, seatID)
		if err != nil {
			return err
		}
		if current.CurrentSession != nil {
			return ErrSeatOccupied
		}
		if err := seats.SetStatus(ctx, seatID, status, now); err != nil {
			return err
		}
		seat, err = seats.GetByID(ctx, seatID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(domain.EventSeatStatus, seatID, status, now)
	return seat, nil
}

func activeSession(ctx context.Context, tx *gorm.DB, seatID int) (*domain.ServiceSession, error) {
	if _, err := repository.NewSeatRepository(tx).GetByID(ctx, seatID); err != nil {
		return nil, err
	}
	session, err := repository.NewSessionRepository(tx).FindBySeatID(ctx, seatID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

func (s *Service) syncReservation(ctx context.Context, db *gorm.DB, seatID int, reservationID string, status domain.ReservationStatus) error {
	err := s.reservations.SyncStatus(ctx, db, reservationID, status)
	if err != nil {
		level := "failed"
		if errors.Is(err, domain.ErrNotFound) {
			level = "missing"
		}
		log.Printf("seat_reservation_sync_%s seat_id=%d reservation_id=%s status=%s err=%v", level, seatID, reservationID, status, err)
	}
	return err
}

func (s *Service) publish(eventType string, seatID int, status domain.SeatStatus, at time.Time) {
	s.notifier.Publish(domain.SeatEvent{Type: eventType, SeatID: seatID, Status: status, At: at})
}
