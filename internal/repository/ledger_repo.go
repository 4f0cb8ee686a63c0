package repository

import (
	"context"

	"gorm.io/gorm"

	"timehair/internal/domain"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

type ledgerEntryModel struct {
	ID            string  `gorm:"column:id;primaryKey"`
	ReservationID *string `gorm:"column:reservation_id"`
	MemberID      *string `gorm:"column:member_id"`
	MemberName    string  `gorm:"column:member_name;not null"`
	SeatID        int     `gorm:"column:seat_id;not null"`
	StaffID       string  `gorm:"column:staff_id;not null;index"`
	StaffName     string  `gorm:"column:staff_name;not null"`
	TotalPrice    int     `gorm:"column:total_price;not null"`
	CompletedAt   string  `gorm:"column:completed_at;not null;index"`
	CreatedAt     string  `gorm:"column:created_at;not null"`
}

func (ledgerEntryModel) TableName() string { return "ledger_entries" }

// LedgerFilter narrows ledger queries. Date takes precedence over the
// inclusive StartDate/EndDate range; all dates are YYYY-MM-DD.
type LedgerFilter struct {
	Date      string
	StartDate string
	EndDate   string
	StaffID   string
}

func (f LedgerFilter) HasDate() bool {
	return f.Date != "" || f.StartDate != "" || f.EndDate != ""
}

func toDomainLedgerEntry(m ledgerEntryModel, services []domain.SelectedService) domain.LedgerEntry {
	return domain.LedgerEntry{
		ID:            m.ID,
		ReservationID: m.ReservationID,
		MemberID:      m.MemberID,
		MemberName:    m.MemberName,
		SeatID:        m.SeatID,
		StaffID:       m.StaffID,
		StaffName:     m.StaffName,
		Services:      orEmpty(services),
		TotalPrice:    m.TotalPrice,
		CompletedAt:   parseTime(m.CompletedAt),
		CreatedAt:     parseTime(m.CreatedAt),
	}
}

// Create inserts the entry with a copy of its services.
func (r *LedgerRepository) Create(ctx context.Context, e *domain.LedgerEntry) error {
	db := r.db.WithContext(ctx)

	row := ledgerEntryModel{
		ID:            e.ID,
		ReservationID: e.ReservationID,
		MemberID:      e.MemberID,
		MemberName:    e.MemberName,
		SeatID:        e.SeatID,
		StaffID:       e.StaffID,
		StaffName:     e.StaffName,
		TotalPrice:    e.TotalPrice,
		CompletedAt:   formatTime(e.CompletedAt),
		CreatedAt:     formatTime(e.CreatedAt),
	}
	if err := db.Create(&row).Error; err != nil {
		return wrapErr(err, "create ledger entry")
	}
	if err := insertLines(db, ownerLedger, e.ID, e.Services); err != nil {
		return wrapErr(err, "create ledger services")
	}
	return nil
}

func (r *LedgerRepository) List(ctx context.Context, f LedgerFilter) ([]domain.LedgerEntry, error) {
	q := r.db.WithContext(ctx).Model(&ledgerEntryModel{})
	if f.Date != "" {
		q = q.Where("substr(completed_at, 1, 10) = ?", f.Date)
	} else {
		if f.StartDate != "" {
			q = q.Where("substr(completed_at, 1, 10) >= ?", f.StartDate)
		}
		if f.EndDate != "" {
			q = q.Where("substr(completed_at, 1, 10) <= ?", f.EndDate)
		}
	}
	if f.StaffID != "" {
		q = q.Where("staff_id = ?", f.StaffID)
	}

	var rows []ledgerEntryModel
	if err := q.Order("completed_at DESC").Order("id").Find(&rows).Error; err != nil {
		return nil, wrapErr(err, "list ledger")
	}

	ids := make([]string, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.ID)
	}
	lines, err := loadLines(r.db.WithContext(ctx), ownerLedger, ids)
	if err != nil {
		return nil, wrapErr(err, "ledger services")
	}

	out := make([]domain.LedgerEntry, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainLedgerEntry(m, lines[m.ID]))
	}
	return out, nil
}

// DailyTotals groups entries of one month (YYYY-MM) by local date.
func (r *LedgerRepository) DailyTotals(ctx context.Context, month string) ([]domain.DailyTotal, error) {
	out := []domain.DailyTotal{}
	err := r.db.WithContext(ctx).
		Model(&ledgerEntryModel{}).
		Select("substr(completed_at, 1, 10) AS date, COALESCE(SUM(total_price), 0) AS revenue, COUNT(*) AS count").
		Where("substr(completed_at, 1, 7) = ?", month).
		Group("substr(completed_at, 1, 10)").
		Order("date ASC").
		Scan(&out).Error
	if err != nil {
		return nil, wrapErr(err, "daily totals")
	}
	return out, nil
}
