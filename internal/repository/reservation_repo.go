package repository

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"timehair/internal/domain"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID                string  `gorm:"column:id;primaryKey"`
	MemberID          *string `gorm:"column:member_id"`
	MemberName        string  `gorm:"column:member_name;not null"`
	MemberPhone       *string `gorm:"column:member_phone"`
	SeatID            *int    `gorm:"column:seat_id"`
	StaffID           string  `gorm:"column:staff_id;not null"`
	StaffName         string  `gorm:"column:staff_name;not null"`
	TotalPrice        int     `gorm:"column:total_price;not null"`
	ReservedAt        string  `gorm:"column:reserved_at;not null;index"`
	EstimatedDuration int     `gorm:"column:estimated_duration;not null"`
	Status            string  `gorm:"column:status;not null;default:scheduled"`
	CreatedAt         string  `gorm:"column:created_at;not null"`
	UpdatedAt         string  `gorm:"column:updated_at;not null"`
	DeletedAt         *string `gorm:"column:deleted_at;index"`
}

func (reservationModel) TableName() string { return "reservations" }

// ReservationFilter selects reservations for List. Date wins over All; with
// neither, only reservations dated Today or later (plus in-progress ones)
// are returned.
type ReservationFilter struct {
	Status *domain.ReservationStatus
	Date   string
	All    bool
	Today  string
}

func toDomainReservation(m reservationModel, services []domain.SelectedService) domain.Reservation {
	status, ok := domain.ParseReservationStatus(m.Status)
	if !ok {
		log.Printf("repository_unknown_status entity=reservation id=%s value=%q fallback=%s", m.ID, m.Status, status)
	}
	return domain.Reservation{
		ID:                m.ID,
		MemberID:          m.MemberID,
		MemberName:        m.MemberName,
		MemberPhone:       m.MemberPhone,
		SeatID:            m.SeatID,
		StaffID:           m.StaffID,
		StaffName:         m.StaffName,
		Services:          orEmpty(services),
		TotalPrice:        m.TotalPrice,
		ReservedAt:        parseTime(m.ReservedAt),
		EstimatedDuration: m.EstimatedDuration,
		Status:            status,
		CreatedAt:         parseTime(m.CreatedAt),
		UpdatedAt:         parseTime(m.UpdatedAt),
	}
}

func (r *ReservationRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&reservationModel{}).Where("deleted_at IS NULL")
}

func (r *ReservationRepository) List(ctx context.Context, f ReservationFilter) ([]domain.Reservation, error) {
	q := r.active(ctx)
	if f.Status != nil {
		q = q.Where("status = ?", f.Status.String())
	}
	switch {
	case f.Date != "":
		q = q.Where("substr(reserved_at, 1, 10) = ?", f.Date)
	case !f.All:
		q = q.Where("(substr(reserved_at, 1, 10) >= ? OR status = ?)", f.Today, domain.ReservationInProgress.String())
	}

	var rows []reservationModel
	if err := q.Order("reserved_at ASC").Order("id").Find(&rows).Error; err != nil {
		return nil, wrapErr(err, "list reservations")
	}

	ids := make([]string, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.ID)
	}
	lines, err := loadLines(r.db.WithContext(ctx), ownerReservation, ids)
	if err != nil {
		return nil, wrapErr(err, "reservation services")
	}

	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainReservation(m, lines[m.ID]))
	}
	return out, nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var m reservationModel
	if err := r.active(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, wrapErr(err, "reservation")
	}
	lines, err := loadLines(r.db.WithContext(ctx), ownerReservation, []string{id})
	if err != nil {
		return nil, wrapErr(err, "reservation services")
	}
	out := toDomainReservation(m, lines[id])
	return &out, nil
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	db := r.db.WithContext(ctx)

	row := reservationModel{
		ID:                res.ID,
		MemberID:          res.MemberID,
		MemberName:        res.MemberName,
		MemberPhone:       res.MemberPhone,
		SeatID:            res.SeatID,
		StaffID:           res.StaffID,
		StaffName:         res.StaffName,
		TotalPrice:        res.TotalPrice,
		ReservedAt:        formatTime(res.ReservedAt),
		EstimatedDuration: res.EstimatedDuration,
		Status:            res.Status.String(),
		CreatedAt:         formatTime(res.CreatedAt),
		UpdatedAt:         formatTime(res.UpdatedAt),
	}
	if err := db.Create(&row).Error; err != nil {
		return wrapErr(err, "create reservation")
	}
	if err := insertLines(db, ownerReservation, res.ID, res.Services); err != nil {
		return wrapErr(err, "create reservation services")
	}
	return nil
}

// Update overwrites the editable fields and replaces the services. Status is
// left as stored.
func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	tx := r.active(ctx).Where("id = ?", res.ID).Updates(map[string]any{
		"member_id":          res.MemberID,
		"member_name":        res.MemberName,
		"member_phone":       res.MemberPhone,
		"seat_id":            res.SeatID,
		"staff_id":           res.StaffID,
		"staff_name":         res.StaffName,
		"total_price":        res.TotalPrice,
		"reserved_at":        formatTime(res.ReservedAt),
		"estimated_duration": res.EstimatedDuration,
		"updated_at":         formatTime(res.UpdatedAt),
	})
	if tx.Error != nil {
		return wrapErr(tx.Error, "update reservation")
	}
	if tx.RowsAffected == 0 {
		return notFound("reservation")
	}

	db := r.db.WithContext(ctx)
	if err := deleteLines(db, ownerReservation, res.ID); err != nil {
		return wrapErr(err, "replace reservation services")
	}
	if err := insertLines(db, ownerReservation, res.ID, res.Services); err != nil {
		return wrapErr(err, "replace reservation services")
	}
	return nil
}

// SetStatus writes status unconditionally; any transition is allowed.
func (r *ReservationRepository) SetStatus(ctx context.Context, id string, status domain.ReservationStatus, at time.Time) error {
	tx := r.active(ctx).Where("id = ?", id).Updates(map[string]any{
		"status":     status.String(),
		"updated_at": formatTime(at),
	})
	if tx.Error != nil {
		return wrapErr(tx.Error, "update reservation status")
	}
	if tx.RowsAffected == 0 {
		return notFound("reservation")
	}
	return nil
}

// SoftDelete marks the reservation deleted and drops its services.
func (r *ReservationRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	tx := r.active(ctx).Where("id = ?", id).Updates(map[string]any{
		"deleted_at": formatTime(at),
		"updated_at": formatTime(at),
	})
	if tx.Error != nil {
		return wrapErr(tx.Error, "delete reservation")
	}
	if tx.RowsAffected == 0 {
		return notFound("reservation")
	}
	return wrapErr(deleteLines(r.db.WithContext(ctx), ownerReservation, id), "delete reservation services")
}
