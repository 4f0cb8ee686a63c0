package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"timehair/internal/database"
	"timehair/internal/domain"
)

func setupTestService(t *testing.T) (*Service, *database.Store) {
	t.Helper()
	dsn := fmt.Sprintf("file:ledger_test_%s?mode=memory&cache=shared", uuid.NewString())
	store, err := database.Open(dsn, "silent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewService(store), store
}

func localTime(t *testing.T, v string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", v, time.Local)
	require.NoError(t, err)
	return ts
}

func record(t *testing.T, store *database.Store, staffID, staffName string, services []domain.SelectedService, completed time.Time) *domain.LedgerEntry {
	t.Helper()
	session := &domain.ServiceSession{
		ID: uuid.NewString(), SeatID: 1, MemberName: "Guest",
		StaffID: staffID, StaffName: staffName,
		Services: services, TotalPrice: domain.TotalOf(services),
	}

	var entry *domain.LedgerEntry
	require.NoError(t, store.Tx(context.Background(), func(tx *gorm.DB) error {
		var err error
		entry, err = NewRecorder().Record(context.Background(), tx, session, completed)
		return err
	}))
	return entry
}

func cut(price int) []domain.SelectedService {
	return []domain.SelectedService{{Name: "cut", Price: price}}
}

func TestRecorder_CopiesSession(t *testing.T) {
	_, store := setupTestService(t)
	reservationID := "r-1"
	session := &domain.ServiceSession{
		ID: "sess", SeatID: 3, MemberName: "홍길동", StaffID: "s1", StaffName: "원장",
		Services: cut(15000), TotalPrice: 15000, ReservationID: &reservationID,
	}
	completed := time.Now()

	var entry *domain.LedgerEntry
	require.NoError(t, store.Tx(context.Background(), func(tx *gorm.DB) error {
		var err error
		entry, err = NewRecorder().Record(context.Background(), tx, session, completed)
		return err
	}))

	assert.NotEqual(t, session.ID, entry.ID)
	assert.Equal(t, 3, entry.SeatID)
	assert.Equal(t, &reservationID, entry.ReservationID)
	assert.Equal(t, 15000, entry.TotalPrice)
	session.Services[0].Name = "changed"
	assert.Equal(t, "cut", entry.Services[0].Name)
}

func TestService_ListFilters(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	record(t, store, "s1", "원장", cut(15000), localTime(t, "2026-06-01 10:00"))
	record(t, store, "s2", "직원1", cut(20000), localTime(t, "2026-06-01 11:00"))
	record(t, store, "s1", "원장", cut(30000), localTime(t, "2026-06-03 11:00"))

	day, err := svc.List(ctx, Filter{Date: "2026-06-01"})
	require.NoError(t, err)
	assert.Len(t, day, 2)

	ranged, err := svc.List(ctx, Filter{StartDate: "2026-06-01", EndDate: "2026-06-03", StaffID: "s1"})
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, 30000, ranged[0].TotalPrice)

	all, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestService_ListRejectsBadDates(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.List(context.Background(), Filter{Date: "06/01/2026"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.List(context.Background(), Filter{StartDate: "2026-06-05", EndDate: "2026-06-01"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_SummaryMatchesEntries(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	record(t, store, "s1", "원장", []domain.SelectedService{{Name: "cut", Price: 15000}, {Name: "perm", Price: 50000}}, localTime(t, "2026-06-01 10:00"))
	record(t, store, "s2", "직원1", []domain.SelectedService{{Name: "cut", Price: 12000}}, localTime(t, "2026-06-01 12:00"))
	record(t, store, "s2", "직원1", cut(99999), localTime(t, "2026-06-02 12:00"))

	summary, err := svc.Summary(ctx, Filter{Date: "2026-06-01"})
	require.NoError(t, err)

	assert.Equal(t, 77000, summary.TotalRevenue)
	assert.Equal(t, 2, summary.TotalCount)
	assert.Equal(t, []domain.StaffRevenue{
		{StaffID: "s1", StaffName: "원장", Revenue: 65000, Count: 1},
		{StaffID: "s2", StaffName: "직원1", Revenue: 12000, Count: 1},
	}, summary.ByStaff)
	assert.Equal(t, []domain.ServiceRevenue{
		{ServiceName: "perm", Count: 1, Revenue: 50000},
		{ServiceName: "cut", Count: 2, Revenue: 27000},
	}, summary.ByService)
}

func TestService_SummaryDefaultsToToday(t *testing.T) {
	svc, store := setupTestService(t)
	svc.now = func() time.Time { return localTime(t, "2026-06-02 20:00") }

	record(t, store, "s1", "원장", cut(10000), localTime(t, "2026-06-01 10:00"))
	record(t, store, "s1", "원장", cut(20000), localTime(t, "2026-06-02 10:00"))

	summary, err := svc.Summary(context.Background(), Filter{StaffID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, 20000, summary.TotalRevenue)
	assert.Equal(t, 1, summary.TotalCount)
}

func TestService_DailyTotals(t *testing.T) {
	svc, store := setupTestService(t)
	svc.now = func() time.Time { return localTime(t, "2026-06-15 09:00") }
	ctx := context.Background()

	record(t, store, "s1", "원장", cut(10000), localTime(t, "2026-06-01 10:00"))
	record(t, store, "s1", "원장", cut(5000), localTime(t, "2026-06-01 18:00"))
	record(t, store, "s1", "원장", cut(7000), localTime(t, "2026-06-14 10:00"))
	record(t, store, "s1", "원장", cut(9000), localTime(t, "2026-07-01 10:00"))

	totals, err := svc.DailyTotals(ctx, DailyQuery{})
	require.NoError(t, err)
	assert.Equal(t, []domain.DailyTotal{
		{Date: "2026-06-01", Revenue: 15000, Count: 2},
		{Date: "2026-06-14", Revenue: 7000, Count: 1},
	}, totals)

	july, err := svc.DailyTotals(ctx, DailyQuery{Year: 2026, Month: 7})
	require.NoError(t, err)
	require.Len(t, july, 1)

	_, err = svc.DailyTotals(ctx, DailyQuery{Year: 2026, Month: 13})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.TotalRevenue)
	assert.NotNil(t, summary.ByStaff)
	assert.NotNil(t, summary.ByService)
}
