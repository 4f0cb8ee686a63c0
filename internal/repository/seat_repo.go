package repository

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"timehair/internal/domain"
)

type SeatRepository struct {
	db *gorm.DB
}

func NewSeatRepository(db *gorm.DB) *SeatRepository {
	return &SeatRepository{db: db}
}

type seatModel struct {
	ID        int     `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name      string  `gorm:"column:name;not null"`
	Status    string  `gorm:"column:status;not null;default:available"`
	CreatedAt string  `gorm:"column:created_at;not null"`
	UpdatedAt string  `gorm:"column:updated_at;not null"`
	DeletedAt *string `gorm:"column:deleted_at;index"`
}

func (seatModel) TableName() string { return "seats" }

func decodeSeatStatus(m seatModel) domain.SeatStatus {
	status, ok := domain.ParseSeatStatus(m.Status)
	if !ok {
		log.Printf("repository_unknown_status entity=seat id=%d value=%q fallback=%s", m.ID, m.Status, status)
	}
	return status
}

func toDomainSeat(m seatModel) domain.Seat {
	return domain.Seat{
		ID:        m.ID,
		Name:      m.Name,
		Status:    decodeSeatStatus(m),
		CreatedAt: parseTime(m.CreatedAt),
		UpdatedAt: parseTime(m.UpdatedAt),
	}
}

func (r *SeatRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&seatModel{}).Where("deleted_at IS NULL")
}

// List returns every seat ordered by id with its current session attached.
func (r *SeatRepository) List(ctx context.Context) ([]domain.Seat, error) {
	var rows []seatModel
	if err := r.active(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, wrapErr(err, "list seats")
	}

	sessions, err := NewSessionRepository(r.db).BySeat(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Seat, 0, len(rows))
	for _, m := range rows {
		seat := toDomainSeat(m)
		seat.CurrentSession = sessions[seat.ID]
		out = append(out, seat)
	}
	return out, nil
}

func (r *SeatRepository) GetByID(ctx context.Context, id int) (*domain.Seat, error) {
	var m seatModel
	if err := r.active(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, wrapErr(err, "seat")
	}

	seat := toDomainSeat(m)
	session, err := NewSessionRepository(r.db).FindBySeatID(ctx, id)
	if err != nil {
		return nil, err
	}
	seat.CurrentSession = session
	return &seat, nil
}

// SetStatus writes status unconditionally.
func (r *SeatRepository) SetStatus(ctx context.Context, id int, status domain.SeatStatus, at time.Time) error {
	tx := r.active(ctx).Where("id = ?", id).Updates(map[string]any{
		"status":     status.String(),
		"updated_at": formatTime(at),
	})
	if tx.Error != nil {
		return wrapErr(tx.Error, "update seat")
	}
	if tx.RowsAffected == 0 {
		return notFound("seat")
	}
	return nil
}

func (r *SeatRepository) Create(ctx context.Context, s *domain.Seat) error {
	row := seatModel{
		ID:        s.ID,
		Name:      s.Name,
		Status:    s.Status.String(),
		CreatedAt: formatTime(s.CreatedAt),
		UpdatedAt: formatTime(s.UpdatedAt),
	}
	return wrapErr(r.db.WithContext(ctx).Create(&row).Error, "create seat")
}

func (r *SeatRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.active(ctx).Count(&n).Error
	return n, wrapErr(err, "count seats")
}
