package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type ReservationStatus int

const (
	ReservationScheduled ReservationStatus = iota
	ReservationInProgress
	ReservationCompleted
	ReservationCancelled
)

var reservationStatusNames = map[ReservationStatus]string{
	ReservationScheduled:  "scheduled",
	ReservationInProgress: "in_progress",
	ReservationCompleted:  "completed",
	ReservationCancelled:  "cancelled",
}

func (s ReservationStatus) String() string {
	if name, ok := reservationStatusNames[s]; ok {
		return name
	}
	return reservationStatusNames[ReservationScheduled]
}

func ParseReservationStatus(v string) (ReservationStatus, bool) {
	for status, name := range reservationStatusNames {
		if name == v {
			return status, true
		}
	}
	return ReservationScheduled, false
}

func (s ReservationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ReservationStatus) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	parsed, ok := ParseReservationStatus(v)
	if !ok {
		return fmt.Errorf("%w: unknown reservation status %q", ErrValidation, v)
	}
	*s = parsed
	return nil
}

type Reservation struct {
	ID                string            `json:"id"`
	MemberID          *string           `json:"memberId,omitempty"`
	MemberName        string            `json:"memberName"`
	MemberPhone       *string           `json:"memberPhone,omitempty"`
	SeatID            *int              `json:"seatId,omitempty"`
	StaffID           string            `json:"staffId"`
	StaffName         string            `json:"staffName"`
	Services          []SelectedService `json:"services"`
	TotalPrice        int               `json:"totalPrice"`
	ReservedAt        time.Time         `json:"reservedAt"`
	EstimatedDuration int               `json:"estimatedDuration"` // minutes
	Status            ReservationStatus `json:"status"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}
