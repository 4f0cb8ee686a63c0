package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"timehair/internal/domain"
	"timehair/internal/repository"
)

// Recorder turns a finished session into a ledger entry. It runs inside the
// caller's transaction.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Record(ctx context.Context, tx *gorm.DB, s *domain.ServiceSession, completedAt time.Time) (*domain.LedgerEntry, error) {
	services := make([]domain.SelectedService, len(s.Services))
	copy(services, s.Services)

	entry := &domain.LedgerEntry{
		ID:            uuid.NewString(),
		ReservationID: s.ReservationID,
		MemberID:      s.MemberID,
		MemberName:    s.MemberName,
		SeatID:        s.SeatID,
		StaffID:       s.StaffID,
		StaffName:     s.StaffName,
		Services:      services,
		TotalPrice:    s.TotalPrice,
		CompletedAt:   completedAt,
		CreatedAt:     completedAt,
	}
	if err := repository.NewLedgerRepository(tx).Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
