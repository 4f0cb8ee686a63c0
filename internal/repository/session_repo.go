package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"timehair/internal/domain"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

type sessionModel struct {
	ID            string  `gorm:"column:id;primaryKey"`
	SeatID        int     `gorm:"column:seat_id;not null;uniqueIndex:idx_service_sessions_seat"`
	MemberID      *string `gorm:"column:member_id"`
	MemberName    string  `gorm:"column:member_name;not null"`
	StaffID       string  `gorm:"column:staff_id;not null"`
	StaffName     string  `gorm:"column:staff_name;not null"`
	TotalPrice    int     `gorm:"column:total_price;not null"`
	StartTime     string  `gorm:"column:start_time;not null"`
	ReservationID *string `gorm:"column:reservation_id"`
	CreatedAt     string  `gorm:"column:created_at;not null"`
	UpdatedAt     string  `gorm:"column:updated_at;not null"`
}

func (sessionModel) TableName() string { return "service_sessions" }

func toDomainSession(m sessionModel, services []domain.SelectedService) *domain.ServiceSession {
	return &domain.ServiceSession{
		ID:            m.ID,
		SeatID:        m.SeatID,
		MemberID:      m.MemberID,
		MemberName:    m.MemberName,
		StaffID:       m.StaffID,
		StaffName:     m.StaffName,
		Services:      orEmpty(services),
		TotalPrice:    m.TotalPrice,
		StartTime:     parseTime(m.StartTime),
		ReservationID: m.ReservationID,
		CreatedAt:     parseTime(m.CreatedAt),
		UpdatedAt:     parseTime(m.UpdatedAt),
	}
}

// FindBySeatID returns the seat's session, or nil when the seat is free.
func (r *SessionRepository) FindBySeatID(ctx context.Context, seatID int) (*domain.ServiceSession, error) {
	db := r.db.WithContext(ctx)

	var m sessionModel
	err := db.Where("seat_id = ?", seatID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(err, "session")
	}

	lines, err := loadLines(db, ownerSession, []string{m.ID})
	if err != nil {
		return nil, wrapErr(err, "session services")
	}
	return toDomainSession(m, lines[m.ID]), nil
}

// BySeat returns all sessions keyed by seat id.
func (r *SessionRepository) BySeat(ctx context.Context) (map[int]*domain.ServiceSession, error) {
	db := r.db.WithContext(ctx)

	var rows []sessionModel
	if err := db.Find(&rows).Error; err != nil {
		return nil, wrapErr(err, "list sessions")
	}

	ids := make([]string, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.ID)
	}
	lines, err := loadLines(db, ownerSession, ids)
	if err != nil {
		return nil, wrapErr(err, "session services")
	}

	out := make(map[int]*domain.ServiceSession, len(rows))
	for _, m := range rows {
		out[m.SeatID] = toDomainSession(m, lines[m.ID])
	}
	return out, nil
}

func (r *SessionRepository) ExistsForSeat(ctx context.Context, seatID int) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&sessionModel{}).Where("seat_id = ?", seatID).Count(&n).Error
	if err != nil {
		return false, wrapErr(err, "check session")
	}
	return n > 0, nil
}

// Create inserts the session and its services. A second session for the
// same seat is rejected by the unique seat index.
func (r *SessionRepository) Create(ctx context.Context, s *domain.ServiceSession) error {
	db := r.db.WithContext(ctx)

	row := sessionModel{
		ID:            s.ID,
		SeatID:        s.SeatID,
		MemberID:      s.MemberID,
		MemberName:    s.MemberName,
		StaffID:       s.StaffID,
		StaffName:     s.StaffName,
		TotalPrice:    s.TotalPrice,
		StartTime:     formatTime(s.StartTime),
		ReservationID: s.ReservationID,
		CreatedAt:     formatTime(s.CreatedAt),
		UpdatedAt:     formatTime(s.UpdatedAt),
	}
	if err := db.Create(&row).Error; err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: seat %d already has a session", domain.ErrConflict, s.SeatID)
		}
		return wrapErr(err, "create session")
	}
	if err := insertLines(db, ownerSession, s.ID, s.Services); err != nil {
		return wrapErr(err, "create session services")
	}
	return nil
}

// Delete removes the session row and its services.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)

	if err := deleteLines(db, ownerSession, id); err != nil {
		return wrapErr(err, "delete session services")
	}
	tx := db.Where("id = ?", id).Delete(&sessionModel{})
	if tx.Error != nil {
		return wrapErr(tx.Error, "delete session")
	}
	if tx.RowsAffected == 0 {
		return notFound("session")
	}
	return nil
}
