package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"timehair/internal/domain"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

type staffModel struct {
	ID        string  `gorm:"column:id;primaryKey"`
	Name      string  `gorm:"column:name;not null"`
	CreatedAt string  `gorm:"column:created_at;not null"`
	UpdatedAt string  `gorm:"column:updated_at;not null"`
	DeletedAt *string `gorm:"column:deleted_at;index"`
}

func (staffModel) TableName() string { return "staff" }

func toDomainStaff(m staffModel) domain.Staff {
	return domain.Staff{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: parseTime(m.CreatedAt),
		UpdatedAt: parseTime(m.UpdatedAt),
	}
}

func (r *StaffRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&staffModel{}).Where("deleted_at IS NULL")
}

func (r *StaffRepository) List(ctx context.Context) ([]domain.Staff, error) {
	var rows []staffModel
	if err := r.active(ctx).Order("created_at ASC").Order("id").Find(&rows).Error; err != nil {
		return nil, wrapErr(err, "list staff")
	}
	out := make([]domain.Staff, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainStaff(m))
	}
	return out, nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id string) (*domain.Staff, error) {
	var m staffModel
	if err := r.active(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, wrapErr(err, "staff")
	}
	out := toDomainStaff(m)
	return &out, nil
}

func (r *StaffRepository) Create(ctx context.Context, s *domain.Staff) error {
	row := staffModel{
		ID:        s.ID,
		Name:      s.Name,
		CreatedAt: formatTime(s.CreatedAt),
		UpdatedAt: formatTime(s.UpdatedAt),
	}
	return wrapErr(r.db.WithContext(ctx).Create(&row).Error, "create staff")
}

func (r *StaffRepository) Update(ctx context.Context, id, name string, at time.Time) error {
	return r.update(ctx, id, map[string]any{"name": name, "updated_at": formatTime(at)})
}

func (r *StaffRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return r.update(ctx, id, map[string]any{"deleted_at": formatTime(at), "updated_at": formatTime(at)})
}

func (r *StaffRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.active(ctx).Count(&n).Error
	return n, wrapErr(err, "count staff")
}

func (r *StaffRepository) update(ctx context.Context, id string, fields map[string]any) error {
	tx := r.active(ctx).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return wrapErr(tx.Error, "update staff")
	}
	if tx.RowsAffected == 0 {
		return notFound("staff")
	}
	return nil
}
