package seat

import (
	"context"
	"time"

	"gorm.io/gorm"

	"timehair/internal/domain"
)

// Notifier publishes seat board events. Delivery is best-effort.
type Notifier interface {
	Publish(event domain.SeatEvent)
}

// LedgerRecorder writes the ledger entry inside the completion transaction.
type LedgerRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, s *domain.ServiceSession, completedAt time.Time) (*domain.LedgerEntry, error)
}

// ReservationSync moves the linked reservation along with the session.
type ReservationSync interface {
	SyncStatus(ctx context.Context, db *gorm.DB, id string, status domain.ReservationStatus) error
}

// StampAwarder gives the member a loyalty stamp after a completed session.
type StampAwarder interface {
	AwardStamp(ctx context.Context, db *gorm.DB, memberID string) error
}

type noopNotifier struct{}

func (noopNotifier) Publish(domain.SeatEvent) {}
