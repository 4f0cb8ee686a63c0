package reservation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"timehair/internal/database"
	"timehair/internal/domain"
	"timehair/internal/repository"
)

func setupTestService(t *testing.T) (*Service, *database.Store) {
	t.Helper()
	dsn := fmt.Sprintf("file:reservation_test_%s?mode=memory&cache=shared", uuid.NewString())
	store, err := database.Open(dsn, "silent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, database.Seed(context.Background(), store, database.SeedOptions{
		AdminUsername: "admin", AdminPassword: "admin", BcryptCost: bcrypt.MinCost, SeatCount: 6,
	}))
	return NewService(store), store
}

func firstStaff(t *testing.T, store *database.Store) domain.Staff {
	t.Helper()
	var list []domain.Staff
	require.NoError(t, store.Do(context.Background(), func(db *gorm.DB) error {
		var err error
		list, err = repository.NewStaffRepository(db).List(context.Background())
		return err
	}))
	require.NotEmpty(t, list)
	return list[0]
}

func localTime(t *testing.T, v string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", v, time.Local)
	require.NoError(t, err)
	return ts
}

func request(staffID string, reservedAt time.Time) ReservationRequest {
	return ReservationRequest{
		MemberName:        "홍길동",
		StaffID:           staffID,
		Services:          []domain.SelectedService{{Name: "cut", Price: 15000}},
		ReservedAt:        reservedAt,
		EstimatedDuration: 30,
	}
}

func TestService_CreateThenGet(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()
	staff := firstStaff(t, store)
	seat := 2
	reservedAt := localTime(t, "2026-07-01 14:30")

	req := request(staff.ID, reservedAt)
	req.SeatID = &seat
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationScheduled, created.Status)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "홍길동", got.MemberName)
	assert.Equal(t, staff.ID, got.StaffID)
	assert.Equal(t, staff.Name, got.StaffName)
	assert.Equal(t, []domain.SelectedService{{Name: "cut", Price: 15000}}, got.Services)
	assert.Equal(t, 15000, got.TotalPrice)
	assert.True(t, reservedAt.Equal(got.ReservedAt))
	assert.Equal(t, 30, got.EstimatedDuration)
	require.NotNil(t, got.SeatID)
	assert.Equal(t, 2, *got.SeatID)
	assert.Equal(t, domain.ReservationScheduled, got.Status)
}

func TestService_CreateResolvesMember(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()
	staff := firstStaff(t, store)

	now := time.Now()
	member := &domain.Member{ID: uuid.NewString(), Name: "김민지", Phone: "010-5555-6666", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Do(ctx, func(db *gorm.DB) error {
		return repository.NewMemberRepository(db).Create(ctx, member)
	}))

	req := request(staff.ID, localTime(t, "2026-07-01 10:00"))
	req.MemberName = ""
	req.MemberID = &member.ID
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "김민지", created.MemberName)
	require.NotNil(t, created.MemberPhone)
	assert.Equal(t, "010-5555-6666", *created.MemberPhone)
}

func TestService_CreateValidation(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()
	staff := firstStaff(t, store)

	noServices := request(staff.ID, time.Now())
	noServices.Services = nil
	_, err := svc.Create(ctx, noServices)
	assert.ErrorIs(t, err, domain.ErrValidation)

	noTime := request(staff.ID, time.Time{})
	_, err = svc.Create(ctx, noTime)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_CreateKeepsUnregisteredReferences(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	req := request("s1", time.Now())
	req.StaffName = ""
	gone := uuid.NewString()
	req.MemberID = &gone
	req.MemberName = ""

	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "s1", created.StaffID)
	assert.Equal(t, "s1", created.StaffName)
	assert.Equal(t, repository.GuestName, created.MemberName)
	require.NotNil(t, created.MemberID)
	assert.Equal(t, gone, *created.MemberID)

	// an update after the member was deleted keeps working
	now := time.Now()
	member := &domain.Member{ID: uuid.NewString(), Name: "박서준", Phone: "010-7777-8888", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Do(ctx, func(db *gorm.DB) error {
		return repository.NewMemberRepository(db).Create(ctx, member)
	}))
	req = request(firstStaff(t, store).ID, time.Now())
	req.MemberID = &member.ID
	req.MemberName = ""
	created, err = svc.Create(ctx, req)
	require.NoError(t, err)
	require.NoError(t, store.Do(ctx, func(db *gorm.DB) error {
		return repository.NewMemberRepository(db).SoftDelete(ctx, member.ID, time.Now())
	}))

	req.EstimatedDuration = 90
	updated, err := svc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, member.Name, updated.MemberName)
	assert.Equal(t, 90, updated.EstimatedDuration)
}

func TestService_ListUpcomingByDefault(t *testing.T) {
	svc, store := setupTestService(t)
	svc.now = func() time.Time { return localTime(t, "2026-07-10 09:00") }
	ctx := context.Background()
	staff := firstStaff(t, store)

	past, err := svc.Create(ctx, request(staff.ID, localTime(t, "2026-07-01 10:00")))
	require.NoError(t, err)
	today, err := svc.Create(ctx, request(staff.ID, localTime(t, "2026-07-10 15:00")))
	require.NoError(t, err)
	later, err := svc.Create(ctx, request(staff.ID, localTime(t, "2026-07-12 11:00")))
	require.NoError(t, err)

	upcoming, err := svc.List(ctx, ListQuery{})
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, today.ID, upcoming[0].ID)
	assert.Equal(t, later.ID, upcoming[1].ID)

	_, err = svc.UpdateStatus(ctx, past.ID, domain.ReservationInProgress)
	require.NoError(t, err)
	upcoming, err = svc.List(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Len(t, upcoming, 3)

	all, err := svc.List(ctx, ListQuery{All: true, Status: "scheduled"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onDate, err := svc.List(ctx, ListQuery{Date: "2026-07-12"})
	require.NoError(t, err)
	require.Len(t, onDate, 1)
	assert.Equal(t, later.ID, onDate[0].ID)

	_, err = svc.List(ctx, ListQuery{Status: "done"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_UpdateKeepsStatus(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()
	staff := firstStaff(t, store)

	created, err := svc.Create(ctx, request(staff.ID, localTime(t, "2026-07-01 10:00")))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, created.ID, domain.ReservationCancelled)
	require.NoError(t, err)

	req := request(staff.ID, localTime(t, "2026-07-02 10:00"))
	req.Services = []domain.SelectedService{{Name: "perm", Price: 60000}, {Name: "color", Price: 40000}}
	updated, err := svc.Update(ctx, created.ID, req)
	require.NoError(t, err)

	assert.Equal(t, domain.ReservationCancelled, updated.Status)
	assert.Equal(t, 100000, updated.TotalPrice)
	assert.Len(t, updated.Services, 2)

	_, err = svc.Update(ctx, "missing", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_StatusTransitionsAreUnrestricted(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, request(firstStaff(t, store).ID, time.Now().Truncate(time.Second)))
	require.NoError(t, err)

	for _, status := range []domain.ReservationStatus{
		domain.ReservationCompleted,
		domain.ReservationScheduled,
		domain.ReservationCancelled,
		domain.ReservationInProgress,
	} {
		res, err := svc.UpdateStatus(ctx, created.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, res.Status)
	}
}

func TestService_Delete(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, request(firstStaff(t, store).ID, time.Now().Truncate(time.Second)))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrNotFound)

	var lines int64
	require.NoError(t, store.Do(ctx, func(db *gorm.DB) error {
		return db.Table("selected_services").Where("reservation_id = ?", created.ID).Count(&lines).Error
	}))
	assert.Zero(t, lines)
}
