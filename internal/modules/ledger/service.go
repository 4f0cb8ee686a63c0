package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"timehair/internal/database"
	"timehair/internal/domain"
	"timehair/internal/repository"
)

type Service struct {
	store *database.Store
	now   func() time.Time
}

func NewService(store *database.Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) List(ctx context.Context, f Filter) ([]domain.LedgerEntry, error) {
	rf, err := f.toRepository()
	if err != nil {
		return nil, err
	}

	var out []domain.LedgerEntry
	err = s.store.Do(ctx, func(db *gorm.DB) error {
		var err error
		out, err = repository.NewLedgerRepository(db).List(ctx, rf)
		return err
	})
	return out, err
}

// Summary aggregates the matching entries. Without any date filter it
// covers today.
func (s *Service) Summary(ctx context.Context, f Filter) (*domain.LedgerSummary, error) {
	rf, err := f.toRepository()
	if err != nil {
		return nil, err
	}
	if !rf.HasDate() {
		rf.Date = repository.LocalDate(s.now())
	}

	var entries []domain.LedgerEntry
	err = s.store.Do(ctx, func(db *gorm.DB) error {
		var err error
		entries, err = repository.NewLedgerRepository(db).List(ctx, rf)
		return err
	})
	if err != nil {
		return nil, err
	}
	return Summarize(entries), nil
}

// DailyTotals returns per-day revenue for a month; zero year or month means
// the current one.
func (s *Service) DailyTotals(ctx context.Context, q DailyQuery) ([]domain.DailyTotal, error) {
	now := s.now()
	if q.Year == 0 {
		q.Year = now.Year()
	}
	if q.Month == 0 {
		q.Month = int(now.Month())
	}
	if q.Month < 1 || q.Month > 12 || q.Year < 1 || q.Year > 9999 {
		return nil, fmt.Errorf("%w: invalid year/month %d-%d", domain.ErrValidation, q.Year, q.Month)
	}

	var out []domain.DailyTotal
	err := s.store.Do(ctx, func(db *gorm.DB) error {
		var err error
		out, err = repository.NewLedgerRepository(db).DailyTotals(ctx, fmt.Sprintf("%04d-%02d", q.Year, q.Month))
		return err
	})
	return out, err
}

// Summarize totals entries overall, per staff member and per service name.
// Groups are ordered by revenue, highest first, then by key.
func Summarize(entries []domain.LedgerEntry) *domain.LedgerSummary {
	out := &domain.LedgerSummary{
		ByStaff:   []domain.StaffRevenue{},
		ByService: []domain.ServiceRevenue{},
	}

	staffIdx := map[string]int{}
	serviceIdx := map[string]int{}
	for _, e := range entries {
		out.TotalRevenue += e.TotalPrice
		out.TotalCount++

		i, ok := staffIdx[e.StaffID]
		if !ok {
			i = len(out.ByStaff)
			staffIdx[e.StaffID] = i
			out.ByStaff = append(out.ByStaff, domain.StaffRevenue{StaffID: e.StaffID, StaffName: e.StaffName})
		}
		out.ByStaff[i].Revenue += e.TotalPrice
		out.ByStaff[i].Count++

		for _, svc := range e.Services {
			j, ok := serviceIdx[svc.Name]
			if !ok {
				j = len(out.ByService)
				serviceIdx[svc.Name] = j
				out.ByService = append(out.ByService, domain.ServiceRevenue{ServiceName: svc.Name})
			}
			out.ByService[j].Revenue += svc.Price
			out.ByService[j].Count++
		}
	}

	sort.SliceStable(out.ByStaff, func(a, b int) bool {
		if out.ByStaff[a].Revenue != out.ByStaff[b].Revenue {
			return out.ByStaff[a].Revenue > out.ByStaff[b].Revenue
		}
		return out.ByStaff[a].StaffID < out.ByStaff[b].StaffID
	})
	sort.SliceStable(out.ByService, func(a, b int) bool {
		if out.ByService[a].Revenue != out.ByService[b].Revenue {
			return out.ByService[a].Revenue > out.ByService[b].Revenue
		}
		return out.ByService[a].ServiceName < out.ByService[b].ServiceName
	})
	return out
}
