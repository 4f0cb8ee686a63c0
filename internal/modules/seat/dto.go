package seat

import "timehair/internal/domain"

type StartRequest struct {
	MemberID      *string                  `json:"memberId"`
	MemberName    string                   `json:"memberName"`
	StaffID       string                   `json:"staffId" validate:"required"`
	StaffName     string                   `json:"staffName"`
	Services      []domain.SelectedService `json:"services" validate:"min=1,dive"`
	TotalPrice    *int                     `json:"totalPrice" validate:"omitempty,gte=0"`
	ReservationID *string                  `json:"reservationId"`
}

type HoldRequest struct {
	Status string `json:"status" binding:"required"`
}

// CompletionResult is returned by CompleteService. Warnings lists the
// follow-up updates (stamp, reservation) that failed after the ledger entry
// was committed.
type CompletionResult struct {
	Entry    *domain.LedgerEntry `json:"ledger"`
	Warnings []string            `json:"warnings"`
}
