package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"timehair/internal/domain"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

type memberModel struct {
	ID        string  `gorm:"column:id;primaryKey"`
	Name      string  `gorm:"column:name;not null"`
	Phone     string  `gorm:"column:phone;not null;uniqueIndex:idx_members_phone_active,where:deleted_at IS NULL"`
	Stamps    int     `gorm:"column:stamps;not null;default:0"`
	CreatedAt string  `gorm:"column:created_at;not null;index"`
	UpdatedAt string  `gorm:"column:updated_at;not null"`
	DeletedAt *string `gorm:"column:deleted_at;index"`
}

func (memberModel) TableName() string { return "members" }

func toDomainMember(m memberModel) domain.Member {
	return domain.Member{
		ID:        m.ID,
		Name:      m.Name,
		Phone:     m.Phone,
		Stamps:    m.Stamps,
		CreatedAt: parseTime(m.CreatedAt),
		UpdatedAt: parseTime(m.UpdatedAt),
	}
}

func (r *MemberRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&memberModel{}).Where("deleted_at IS NULL")
}

// List returns non-deleted members, newest first. A non-empty search keeps
// members whose name or phone contains it.
func (r *MemberRepository) List(ctx context.Context, search string) ([]domain.Member, error) {
	q := r.active(ctx)
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + search + "%"
		q = q.Where("(name LIKE ? OR phone LIKE ?)", like, like)
	}

	var rows []memberModel
	if err := q.Order("created_at DESC").Order("id").Find(&rows).Error; err != nil {
		return nil, wrapErr(err, "list members")
	}

	out := make([]domain.Member, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainMember(m))
	}
	return out, nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	var m memberModel
	if err := r.active(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, wrapErr(err, "member")
	}
	out := toDomainMember(m)
	return &out, nil
}

// GetByIDWithDeleted also finds soft-deleted members; history rows keep
// pointing at them.
func (r *MemberRepository) GetByIDWithDeleted(ctx context.Context, id string) (*domain.Member, error) {
	var m memberModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, wrapErr(err, "member")
	}
	out := toDomainMember(m)
	return &out, nil
}

func (r *MemberRepository) GetByPhone(ctx context.Context, phone string) (*domain.Member, error) {
	var m memberModel
	if err := r.active(ctx).Where("phone = ?", phone).First(&m).Error; err != nil {
		return nil, wrapErr(err, "member")
	}
	out := toDomainMember(m)
	return &out, nil
}

// PhoneTaken reports whether another non-deleted member uses phone.
func (r *MemberRepository) PhoneTaken(ctx context.Context, phone, exceptID string) (bool, error) {
	q := r.active(ctx).Where("phone = ?", phone)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, wrapErr(err, "check phone")
	}
	return n > 0, nil
}

func (r *MemberRepository) Create(ctx context.Context, m *domain.Member) error {
	row := memberModel{
		ID:        m.ID,
		Name:      m.Name,
		Phone:     m.Phone,
		Stamps:    m.Stamps,
		CreatedAt: formatTime(m.CreatedAt),
		UpdatedAt: formatTime(m.UpdatedAt),
	}
	return wrapErr(r.db.WithContext(ctx).Create(&row).Error, "create member")
}

func (r *MemberRepository) Update(ctx context.Context, id, name, phone string, at time.Time) error {
	return r.update(ctx, id, map[string]any{
		"name":       name,
		"phone":      phone,
		"updated_at": formatTime(at),
	})
}

func (r *MemberRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return r.update(ctx, id, map[string]any{
		"deleted_at": formatTime(at),
		"updated_at": formatTime(at),
	})
}

func (r *MemberRepository) AddStamp(ctx context.Context, id string, at time.Time) error {
	return r.update(ctx, id, map[string]any{
		"stamps":     gorm.Expr("stamps + 1"),
		"updated_at": formatTime(at),
	})
}

func (r *MemberRepository) ResetStamps(ctx context.Context, id string, at time.Time) error {
	return r.update(ctx, id, map[string]any{
		"stamps":     0,
		"updated_at": formatTime(at),
	})
}

func (r *MemberRepository) update(ctx context.Context, id string, fields map[string]any) error {
	tx := r.active(ctx).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return wrapErr(tx.Error, "update member")
	}
	if tx.RowsAffected == 0 {
		return notFound("member")
	}
	return nil
}
