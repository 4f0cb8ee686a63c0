package repository

import (
	"context"
	"strings"
	"time"

	"timehair/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID        string  `gorm:"column:id;primaryKey"`
	Username  string  `gorm:"column:username;not null;uniqueIndex"`
	Password  string  `gorm:"column:password;not null"`
	CreatedAt string  `gorm:"column:created_at;not null"`
	UpdatedAt string  `gorm:"column:updated_at;not null"`
	DeletedAt *string `gorm:"column:deleted_at;index"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.Password,
		CreatedAt:    parseTime(m.CreatedAt),
		UpdatedAt:    parseTime(m.UpdatedAt),
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:        u.ID,
		Username:  strings.TrimSpace(u.Username),
		Password:  u.PasswordHash,
		CreatedAt: formatTime(u.CreatedAt),
		UpdatedAt: formatTime(u.UpdatedAt),
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return wrapErr(tx.Error, "create user")
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("username = ? AND deleted_at IS NULL", strings.TrimSpace(username)).
		First(&m)
	if tx.Error != nil {
		return nil, wrapErr(tx.Error, "user")
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&m)
	if tx.Error != nil {
		return nil, wrapErr(tx.Error, "user")
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).Where("deleted_at IS NULL").Count(&n)
	return n, wrapErr(tx.Error, "count users")
}
