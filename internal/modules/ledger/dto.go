package ledger

import (
	"fmt"
	"time"

	"timehair/internal/domain"
	"timehair/internal/repository"
)

// Filter is the query of List and Summary. Date wins over the inclusive
// StartDate/EndDate range.
type Filter struct {
	Date      string `form:"date" json:"date,omitempty"`
	StartDate string `form:"startDate" json:"startDate,omitempty"`
	EndDate   string `form:"endDate" json:"endDate,omitempty"`
	StaffID   string `form:"staffId" json:"staffId,omitempty"`
}

type DailyQuery struct {
	Year  int `form:"year"`
	Month int `form:"month"`
}

func (f Filter) toRepository() (repository.LedgerFilter, error) {
	for name, v := range map[string]string{"date": f.Date, "startDate": f.StartDate, "endDate": f.EndDate} {
		if v == "" {
			continue
		}
		if _, err := time.Parse(repository.DateLayout, v); err != nil {
			return repository.LedgerFilter{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", domain.ErrValidation, name)
		}
	}
	if f.Date == "" && f.StartDate != "" && f.EndDate != "" && f.StartDate > f.EndDate {
		return repository.LedgerFilter{}, fmt.Errorf("%w: startDate is after endDate", domain.ErrValidation)
	}

	return repository.LedgerFilter{
		Date:      f.Date,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		StaffID:   f.StaffID,
	}, nil
}
