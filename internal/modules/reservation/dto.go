package reservation

import (
	"time"

	"timehair/internal/domain"
)

type ReservationRequest struct {
	MemberID          *string                  `json:"memberId"`
	MemberName        string                   `json:"memberName"`
	MemberPhone       *string                  `json:"memberPhone"`
	SeatID            *int                     `json:"seatId" validate:"omitempty,gt=0"`
	StaffID           string                   `json:"staffId" validate:"required"`
	StaffName         string                   `json:"staffName"`
	Services          []domain.SelectedService `json:"services" validate:"min=1,dive"`
	TotalPrice        *int                     `json:"totalPrice" validate:"omitempty,gte=0"`
	ReservedAt        time.Time                `json:"reservedAt"`
	EstimatedDuration int                      `json:"estimatedDuration" validate:"gte=0"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListQuery mirrors GET /reservations. Date wins over All.
type ListQuery struct {
	Status string `form:"status"`
	Date   string `form:"date"`
	All    bool   `form:"all"`
}
