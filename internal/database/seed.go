package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"timehair/internal/domain"
	"timehair/internal/repository"
)

type SeedOptions struct {
	AdminUsername string
	AdminPassword string
	BcryptCost    int
	SeatCount     int
}

var defaultStaff = []string{"원장", "직원1", "직원2", "직원3", "직원4"}

// Seed fills an empty store with the admin account, the default staff and
// the seat board. It is safe to run on every start.
func Seed(ctx context.Context, s *Store, opts SeedOptions) error {
	return s.Tx(ctx, func(tx *gorm.DB) error {
		if err := seedAdmin(ctx, tx, opts); err != nil {
			return err
		}
		if err := seedStaff(ctx, tx); err != nil {
			return err
		}
		return seedSeats(ctx, tx, opts.SeatCount)
	})
}

func seedAdmin(ctx context.Context, tx *gorm.DB, opts SeedOptions) error {
	users := repository.NewUserRepository(tx)
	n, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), cost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Username:     opts.AdminUsername,
		PasswordHash: string(hash),
	}
	if err := users.Create(ctx, u); err != nil {
		return err
	}
	log.Printf("seed_admin username=%s", u.Username)
	return nil
}

func seedStaff(ctx context.Context, tx *gorm.DB) error {
	var n int64
	if err := tx.Table("staff").Count(&n).Error; err != nil {
		return fmt.Errorf("%w: count staff: %w", domain.ErrStorage, err)
	}
	if n > 0 {
		return nil
	}

	staff := repository.NewStaffRepository(tx)
	base := time.Now()
	for i, name := range defaultStaff {
		at := base.Add(time.Duration(i) * time.Millisecond)
		if err := staff.Create(ctx, &domain.Staff{
			ID:        uuid.NewString(),
			Name:      name,
			CreatedAt: at,
			UpdatedAt: at,
		}); err != nil {
			return err
		}
	}
	log.Printf("seed_staff count=%d", len(defaultStaff))
	return nil
}

func seedSeats(ctx context.Context, tx *gorm.DB, count int) error {
	seats := repository.NewSeatRepository(tx)
	now := time.Now()
	created := 0
	for id := 1; id <= count; id++ {
		var n int64
		if err := tx.Table("seats").Where("id = ?", id).Count(&n).Error; err != nil {
			return fmt.Errorf("%w: count seats: %w", domain.ErrStorage, err)
		}
		if n > 0 {
			continue
		}
		if err := seats.Create(ctx, &domain.Seat{
			ID:        id,
			Name:      fmt.Sprintf("%d번 좌석", id),
			Status:    domain.SeatAvailable,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}
		created++
	}
	if created > 0 {
		log.Printf("seed_seats created=%d", created)
	}
	return nil
}
