package member

import (
	"context"
	"time"

	"gorm.io/gorm"

	"timehair/internal/repository"
)

// Stamper awards loyalty stamps on behalf of the seat lifecycle, using the
// caller's database handle.
type Stamper struct{}

func (Stamper) AwardStamp(ctx context.Context, db *gorm.DB, memberID string) error {
	return repository.NewMemberRepository(db).AddStamp(ctx, memberID, time.Now())
}
