package repository

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"timehair/internal/domain"
)

// GuestName is recorded for walk-in customers without a member record.
const GuestName = "Guest"

// ResolveStaffName returns given when set, otherwise the registered name.
// An unregistered staff id is kept as given and named by the id itself.
func ResolveStaffName(ctx context.Context, db *gorm.DB, staffID, given string) (string, error) {
	if given != "" {
		return given, nil
	}
	st, err := NewStaffRepository(db).GetByID(ctx, staffID)
	if errors.Is(err, domain.ErrNotFound) {
		log.Printf("repository_unknown_staff staff_id=%s", staffID)
		return staffID, nil
	}
	if err != nil {
		return "", err
	}
	return st.Name, nil
}

// ResolveMember returns the member for memberID and the display name: given
// when set, then the member's name, then GuestName. Deleted members still
// resolve; an id with no row at all yields a nil member.
func ResolveMember(ctx context.Context, db *gorm.DB, memberID *string, given string) (*domain.Member, string, error) {
	if memberID == nil {
		if given == "" {
			given = GuestName
		}
		return nil, given, nil
	}

	m, err := NewMemberRepository(db).GetByIDWithDeleted(ctx, *memberID)
	if errors.Is(err, domain.ErrNotFound) {
		log.Printf("repository_unknown_member member_id=%s", *memberID)
		if given == "" {
			given = GuestName
		}
		return nil, given, nil
	}
	if err != nil {
		return nil, "", err
	}
	if given == "" {
		given = m.Name
	}
	return m, given, nil
}
